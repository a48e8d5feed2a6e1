package qom

// Factory is the capability set the Parser uses to build QOM nodes (per
// spec.md §6: "External Interfaces"). A real JCR implementation would hand
// the parser its own QueryObjectModelFactory; this repo's DefaultFactory
// simply allocates the tagged structs in this package, which is enough for
// a standalone translator that owns both ends of the contract.
//
// The Generator does not need a Factory: it only reads an already-built
// Query tree, it never constructs one.
type Factory interface {
	Selector(nodeType, alias string) Source
	Join(left, right Source, joinType JoinType, condition JoinCondition) Source

	EquiJoinCondition(selA, propA, selB, propB string) JoinCondition
	SameNodeJoinCondition(selA, selB, path string) JoinCondition
	ChildNodeJoinCondition(child, parent string) JoinCondition
	DescendantNodeJoinCondition(descendant, ancestor string) JoinCondition

	PropertyValue(selector, property string) DynamicOperand
	Length(pv PropertyValue) DynamicOperand
	NodeName(selector string) DynamicOperand
	NodeLocalName(selector string) DynamicOperand
	FullTextSearchScore(selector string) DynamicOperand
	LowerCase(op DynamicOperand) DynamicOperand
	UpperCase(op DynamicOperand) DynamicOperand

	Literal(value string) StaticOperand
	CastLiteral(value, typ string) StaticOperand
	BindVariable(name string) StaticOperand

	Comparison(op1 DynamicOperand, operator Operator, op2 StaticOperand) Constraint
	PropertyExistence(selector, property string) Constraint
	FullTextSearch(selector, property string, expr StaticOperand) Constraint
	SameNode(selector, path string) Constraint
	ChildNode(selector, path string) Constraint
	DescendantNode(selector, path string) Constraint
	And(c1, c2 Constraint) Constraint
	Or(c1, c2 Constraint) Constraint
	Not(c Constraint) Constraint

	Ascending(op DynamicOperand) Ordering
	Descending(op DynamicOperand) Ordering

	Column(selector, property, columnName string) Column

	CreateQuery(source Source, constraint Constraint, orderings []Ordering, columns []Column) *Query
}

// DefaultFactory is the zero-value Factory implementation: it builds the
// tagged structs declared in types.go directly, with no validation against
// a live repository (per spec.md §3 invariant 1, that validation is
// explicitly not this core's job).
type DefaultFactory struct{}

func (DefaultFactory) Selector(nodeType, alias string) Source {
	return Selector{NodeType: nodeType, Alias: alias}
}

func (DefaultFactory) Join(left, right Source, joinType JoinType, condition JoinCondition) Source {
	return Join{Left: left, Right: right, Type: joinType, Condition: condition}
}

func (DefaultFactory) EquiJoinCondition(selA, propA, selB, propB string) JoinCondition {
	return EquiJoinCondition{SelectorA: selA, PropertyA: propA, SelectorB: selB, PropertyB: propB}
}

func (DefaultFactory) SameNodeJoinCondition(selA, selB, path string) JoinCondition {
	return SameNodeJoinCondition{SelectorA: selA, SelectorB: selB, Path: path}
}

func (DefaultFactory) ChildNodeJoinCondition(child, parent string) JoinCondition {
	return ChildNodeJoinCondition{ChildSelector: child, ParentSelector: parent}
}

func (DefaultFactory) DescendantNodeJoinCondition(descendant, ancestor string) JoinCondition {
	return DescendantNodeJoinCondition{DescendantSelector: descendant, AncestorSelector: ancestor}
}

func (DefaultFactory) PropertyValue(selector, property string) DynamicOperand {
	return PropertyValue{Selector: selector, Property: property}
}

func (DefaultFactory) Length(pv PropertyValue) DynamicOperand {
	return Length{PropertyValue: pv}
}

func (DefaultFactory) NodeName(selector string) DynamicOperand {
	return NodeName{Selector: selector}
}

func (DefaultFactory) NodeLocalName(selector string) DynamicOperand {
	return NodeLocalName{Selector: selector}
}

func (DefaultFactory) FullTextSearchScore(selector string) DynamicOperand {
	return FullTextSearchScore{Selector: selector}
}

func (DefaultFactory) LowerCase(op DynamicOperand) DynamicOperand {
	return LowerCase{Operand: op}
}

func (DefaultFactory) UpperCase(op DynamicOperand) DynamicOperand {
	return UpperCase{Operand: op}
}

func (DefaultFactory) Literal(value string) StaticOperand {
	return Literal{Value: value}
}

func (DefaultFactory) CastLiteral(value, typ string) StaticOperand {
	return Literal{Value: value, Type: typ}
}

func (DefaultFactory) BindVariable(name string) StaticOperand {
	return BindVariable{Name: name}
}

func (DefaultFactory) Comparison(op1 DynamicOperand, operator Operator, op2 StaticOperand) Constraint {
	return Comparison{Operand1: op1, Operator: operator, Operand2: op2}
}

func (DefaultFactory) PropertyExistence(selector, property string) Constraint {
	return PropertyExistence{Selector: selector, Property: property}
}

func (DefaultFactory) FullTextSearch(selector, property string, expr StaticOperand) Constraint {
	return FullTextSearch{Selector: selector, Property: property, SearchExpression: expr}
}

func (DefaultFactory) SameNode(selector, path string) Constraint {
	return SameNode{Selector: selector, Path: path}
}

func (DefaultFactory) ChildNode(selector, path string) Constraint {
	return ChildNode{Selector: selector, Path: path}
}

func (DefaultFactory) DescendantNode(selector, path string) Constraint {
	return DescendantNode{Selector: selector, Path: path}
}

func (DefaultFactory) And(c1, c2 Constraint) Constraint {
	return And{Constraint1: c1, Constraint2: c2}
}

func (DefaultFactory) Or(c1, c2 Constraint) Constraint {
	return Or{Constraint1: c1, Constraint2: c2}
}

func (DefaultFactory) Not(c Constraint) Constraint {
	return Not{Constraint: c}
}

func (DefaultFactory) Ascending(op DynamicOperand) Ordering {
	return Ordering{Operand: op, Descending: false}
}

func (DefaultFactory) Descending(op DynamicOperand) Ordering {
	return Ordering{Operand: op, Descending: true}
}

func (DefaultFactory) Column(selector, property, columnName string) Column {
	return Column{Selector: selector, Property: property, ColumnName: columnName}
}

func (DefaultFactory) CreateQuery(source Source, constraint Constraint, orderings []Ordering, columns []Column) *Query {
	return &Query{Source: source, Constraint: constraint, Orderings: orderings, Columns: columns}
}
