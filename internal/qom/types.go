package qom

// Tagged-union types for the JCR SQL-2 Query Object Model (QOM).
//
// The external contract this package implements is summarized in JCR
// Content Repository spec §6.7 and in this repo's SPEC_FULL.md §3 and §6.
// Every node is a small struct satisfying a marker interface (Source,
// Constraint, JoinCondition, DynamicOperand, StaticOperand), so the
// generator can do exhaustive type-switch case analysis instead of a
// visitor with one method per type.

// JoinType is one of the three join kinds a Join's Type field may hold.
type JoinType int

const (
	JoinTypeInner JoinType = iota
	JoinTypeLeftOuter
	JoinTypeRightOuter
)

func (t JoinType) String() string {
	switch t {
	case JoinTypeInner:
		return "INNER"
	case JoinTypeLeftOuter:
		return "LEFT OUTER"
	case JoinTypeRightOuter:
		return "RIGHT OUTER"
	default:
		return "INNER"
	}
}

// Operator is one of the seven comparison operators a Comparison may use.
type Operator int

const (
	OpEqualTo Operator = iota
	OpNotEqualTo
	OpLessThan
	OpLessThanOrEqualTo
	OpGreaterThan
	OpGreaterThanOrEqualTo
	OpLike
)

func (o Operator) String() string {
	switch o {
	case OpEqualTo:
		return "="
	case OpNotEqualTo:
		return "<>"
	case OpLessThan:
		return "<"
	case OpLessThanOrEqualTo:
		return "<="
	case OpGreaterThan:
		return ">"
	case OpGreaterThanOrEqualTo:
		return ">="
	case OpLike:
		return "LIKE"
	default:
		return "?"
	}
}

// Query is the top-level 4-tuple described in spec.md §3: a query has a
// Source, an optional Constraint, zero or more Orderings, and zero or more
// Columns (an empty Columns slice means "all columns", i.e. `SELECT *`).
type Query struct {
	Source     Source
	Constraint Constraint // nil if there was no WHERE clause
	Orderings  []Ordering
	Columns    []Column
}

// ---- Source ----

// Source is either a Selector or a Join.
type Source interface {
	isSource()
}

// Selector names a single node-type binding, optionally aliased.
type Selector struct {
	NodeType string
	Alias    string // "" if no alias was given
}

func (Selector) isSource() {}

// Join combines two sources under a join condition.
type Join struct {
	Left      Source
	Right     Source
	Type      JoinType
	Condition JoinCondition
}

func (Join) isSource() {}

// ---- JoinCondition ----

// JoinCondition is one of the four join condition kinds.
type JoinCondition interface {
	isJoinCondition()
}

// EquiJoinCondition is `selA.propA = selB.propB`.
type EquiJoinCondition struct {
	SelectorA, PropertyA string
	SelectorB, PropertyB string
}

func (EquiJoinCondition) isJoinCondition() {}

// SameNodeJoinCondition is `ISSAMENODE(selA, selB [, path])`.
type SameNodeJoinCondition struct {
	SelectorA, SelectorB string
	Path                 string // "" if not given
}

func (SameNodeJoinCondition) isJoinCondition() {}

// ChildNodeJoinCondition is `ISCHILDNODE(child, parent)`.
type ChildNodeJoinCondition struct {
	ChildSelector, ParentSelector string
}

func (ChildNodeJoinCondition) isJoinCondition() {}

// DescendantNodeJoinCondition is `ISDESCENDANTNODE(descendant, ancestor)`.
type DescendantNodeJoinCondition struct {
	DescendantSelector, AncestorSelector string
}

func (DescendantNodeJoinCondition) isJoinCondition() {}

// ---- Constraint ----

// Constraint is one of the boolean/comparison/location constraint kinds.
type Constraint interface {
	isConstraint()
}

// And is a conjunction of two constraints.
type And struct {
	Constraint1, Constraint2 Constraint
}

func (And) isConstraint() {}

// Or is a disjunction of two constraints.
type Or struct {
	Constraint1, Constraint2 Constraint
}

func (Or) isConstraint() {}

// Not negates a constraint. `IS NULL` is represented as Not(PropertyExistence).
type Not struct {
	Constraint Constraint
}

func (Not) isConstraint() {}

// Comparison compares a dynamic operand to a static one. Per spec.md §3
// invariant 3, Operand1 is always dynamic and Operand2 is always static —
// the grammar forbids the reverse, so this is not re-checked at runtime.
type Comparison struct {
	Operand1 DynamicOperand
	Operator Operator
	Operand2 StaticOperand
}

func (Comparison) isConstraint() {}

// PropertyExistence is `[sel.]prop IS NOT NULL`.
type PropertyExistence struct {
	Selector string // "" if unqualified
	Property string
}

func (PropertyExistence) isConstraint() {}

// FullTextSearch is `CONTAINS([sel.]prop, expr)`. Property == "" denotes
// the `CONTAINS(*, expr)` "all properties" form.
type FullTextSearch struct {
	Selector       string
	Property       string // "" for "*"
	SearchExpression StaticOperand
}

func (FullTextSearch) isConstraint() {}

// SameNode is `ISSAMENODE([sel,] path)`.
type SameNode struct {
	Selector string // "" if not given
	Path     string
}

func (SameNode) isConstraint() {}

// ChildNode is `ISCHILDNODE([sel,] path)`.
type ChildNode struct {
	Selector string
	Path     string
}

func (ChildNode) isConstraint() {}

// DescendantNode is `ISDESCENDANTNODE([sel,] path)`.
type DescendantNode struct {
	Selector string
	Path     string
}

func (DescendantNode) isConstraint() {}

// ---- DynamicOperand ----

// DynamicOperand is one of the seven dynamic operand kinds.
type DynamicOperand interface {
	isDynamicOperand()
}

// PropertyValue is `[sel.]prop`.
type PropertyValue struct {
	Selector string
	Property string
}

func (PropertyValue) isDynamicOperand() {}

// Length is `LENGTH(propertyValue)`.
type Length struct {
	PropertyValue PropertyValue
}

func (Length) isDynamicOperand() {}

// NodeName is `NAME([sel])`.
type NodeName struct {
	Selector string
}

func (NodeName) isDynamicOperand() {}

// NodeLocalName is `LOCALNAME([sel])`.
type NodeLocalName struct {
	Selector string
}

func (NodeLocalName) isDynamicOperand() {}

// FullTextSearchScore is `SCORE([sel])`.
type FullTextSearchScore struct {
	Selector string
}

func (FullTextSearchScore) isDynamicOperand() {}

// LowerCase is `LOWER(operand)`.
type LowerCase struct {
	Operand DynamicOperand
}

func (LowerCase) isDynamicOperand() {}

// UpperCase is `UPPER(operand)`.
type UpperCase struct {
	Operand DynamicOperand
}

func (UpperCase) isDynamicOperand() {}

// ---- StaticOperand ----

// StaticOperand is either a Literal or a BindVariable.
type StaticOperand interface {
	isStaticOperand()
}

// Literal is a literal value, optionally CAST to a named type.
type Literal struct {
	Value string
	Type  string // "" unless the literal was written as CAST('value' AS type)
}

func (Literal) isStaticOperand() {}

// BindVariable is a named placeholder, `$name`.
type BindVariable struct {
	Name string
}

func (BindVariable) isStaticOperand() {}

// ---- Ordering & Column ----

// Ordering pairs a dynamic operand with a direction. Per spec.md §3
// invariant 4, the zero value (Descending == false) is ascending.
type Ordering struct {
	Operand    DynamicOperand
	Descending bool
}

// Column is `[sel.]prop [AS columnName]`. Property == "" with a non-empty
// Selector denotes `sel.*` (spec.md §3 invariant 5).
type Column struct {
	Selector   string
	Property   string
	ColumnName string
}
