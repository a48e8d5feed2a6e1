package jql2

// Generator renders a *qom.Query back to JQL2 text, the inverse of Parser
// (spec.md §4.C "Generator"). It is a stateless reader of an already-built
// tree: unlike the Parser it takes no qom.Factory, only exhaustive
// type-switches over the tagged-union interfaces declared in internal/qom.

import (
	"fmt"
	"strings"

	"github.com/jcr-go/jql2/internal/qom"
)

func generate(q *qom.Query) (string, error) {
	if q == nil || q.Source == nil {
		return "", fmt.Errorf("jql2: generate: query has no source")
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	cols, err := genColumns(q.Columns)
	if err != nil {
		return "", err
	}
	b.WriteString(cols)

	b.WriteString(" FROM ")
	src, err := genSource(q.Source)
	if err != nil {
		return "", err
	}
	b.WriteString(src)

	if q.Constraint != nil {
		c, err := genConstraint(q.Constraint)
		if err != nil {
			return "", err
		}
		b.WriteString(" WHERE ")
		b.WriteString(c)
	}

	if len(q.Orderings) > 0 {
		ord, err := genOrderings(q.Orderings)
		if err != nil {
			return "", err
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(ord)
	}

	return b.String(), nil
}

// ---- Columns, Column ----

func genColumns(cols []qom.Column) (string, error) {
	if len(cols) == 0 {
		return "*", nil
	}
	parts := make([]string, len(cols))
	for i, c := range cols {
		s, err := genColumn(c)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}

func genColumn(c qom.Column) (string, error) {
	if c.Property == "" {
		if c.Selector == "" {
			return "", fmt.Errorf("jql2: generate: column has neither selector nor property")
		}
		return c.Selector + ".*", nil
	}
	pv := genPropertyValueParts(c.Selector, c.Property)
	if c.ColumnName != "" {
		return pv + " AS " + c.ColumnName, nil
	}
	return pv, nil
}

// genPropertyValueParts implements the PropertyValue emission rule
// (spec.md §4.C): each component is bracket-wrapped iff it contains a `:`
// namespace delimiter, joined with `.`.
func genPropertyValueParts(selector, property string) string {
	var parts []string
	if selector != "" {
		name := selector
		if needsNamespaceBrackets(name) {
			name = bracket(name)
		}
		parts = append(parts, name)
	}
	name := property
	if needsNamespaceBrackets(name) {
		name = bracket(name)
	}
	parts = append(parts, name)
	return strings.Join(parts, ".")
}

// ---- Source, Selector, Join ----

func genSource(s qom.Source) (string, error) {
	switch v := s.(type) {
	case qom.Selector:
		return genSelector(v), nil
	case qom.Join:
		left, err := genSource(v.Left)
		if err != nil {
			return "", err
		}
		right, err := genSource(v.Right)
		if err != nil {
			return "", err
		}
		cond, err := genJoinCondition(v.Condition)
		if err != nil {
			return "", err
		}
		prefix := ""
		switch v.Type {
		case qom.JoinTypeLeftOuter:
			prefix = "LEFT OUTER "
		case qom.JoinTypeRightOuter:
			prefix = "RIGHT OUTER "
		}
		return fmt.Sprintf("%s %sJOIN %s ON %s", left, prefix, right, cond), nil
	default:
		return "", fmt.Errorf("jql2: generate: unknown source type %T", s)
	}
}

func genSelector(v qom.Selector) string {
	name := v.NodeType
	if needsBrackets(name) {
		name = bracket(name)
	}
	if v.Alias != "" {
		return name + " AS " + v.Alias
	}
	return name
}

func genJoinCondition(c qom.JoinCondition) (string, error) {
	switch v := c.(type) {
	case qom.EquiJoinCondition:
		a := genPropertyValueParts(v.SelectorA, v.PropertyA)
		b := genPropertyValueParts(v.SelectorB, v.PropertyB)
		return a + "=" + b, nil
	case qom.SameNodeJoinCondition:
		if v.Path != "" {
			return fmt.Sprintf("ISSAMENODE(%s, %s, %s)", v.SelectorA, v.SelectorB, genPath(v.Path)), nil
		}
		return fmt.Sprintf("ISSAMENODE(%s, %s)", v.SelectorA, v.SelectorB), nil
	case qom.ChildNodeJoinCondition:
		return fmt.Sprintf("ISCHILDNODE(%s, %s)", v.ChildSelector, v.ParentSelector), nil
	case qom.DescendantNodeJoinCondition:
		return fmt.Sprintf("ISDESCENDANTNODE(%s, %s)", v.DescendantSelector, v.AncestorSelector), nil
	default:
		return "", fmt.Errorf("jql2: generate: unknown join condition type %T", c)
	}
}

// genPath implements the Path emission rule (spec.md §4.C, §4.D
// needsQuotes): a path containing a space or `.` is double-quoted before
// being bracket-wrapped; an already-bracketed path passes through verbatim.
func genPath(path string) string {
	if strings.HasPrefix(path, "[") && strings.HasSuffix(path, "]") {
		return path
	}
	inner := path
	if needsQuotes(path) {
		inner = `"` + path + `"`
	}
	return bracket(inner)
}

// ---- Constraint ----

func genConstraint(c qom.Constraint) (string, error) {
	switch v := c.(type) {
	case qom.And:
		l, err := genConstraint(v.Constraint1)
		if err != nil {
			return "", err
		}
		r, err := genConstraint(v.Constraint2)
		if err != nil {
			return "", err
		}
		return l + " AND " + r, nil

	case qom.Or:
		l, err := genConstraint(v.Constraint1)
		if err != nil {
			return "", err
		}
		r, err := genConstraint(v.Constraint2)
		if err != nil {
			return "", err
		}
		return l + " OR " + r, nil

	case qom.Not:
		inner, err := genConstraint(v.Constraint)
		if err != nil {
			return "", err
		}
		return "NOT (" + inner + ")", nil

	case qom.Comparison:
		op1, err := genDynamicOperand(v.Operand1)
		if err != nil {
			return "", err
		}
		op2, err := genStaticOperand(v.Operand2)
		if err != nil {
			return "", err
		}
		if v.Operator == qom.OpLike {
			return op1 + " LIKE " + op2, nil
		}
		return op1 + v.Operator.String() + op2, nil

	case qom.PropertyExistence:
		return genPropertyValueParts(v.Selector, v.Property) + " IS NOT NULL", nil

	case qom.FullTextSearch:
		prop := v.Property
		if prop == "" {
			prop = "*"
		}
		ident := prop
		if v.Selector != "" {
			ident = v.Selector + "." + prop
		}
		expr, err := genStaticOperand(v.SearchExpression)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("CONTAINS(%s, %s)", ident, expr), nil

	case qom.SameNode:
		if v.Selector != "" {
			return fmt.Sprintf("ISSAMENODE(%s, %s)", v.Selector, genPath(v.Path)), nil
		}
		return fmt.Sprintf("ISSAMENODE(%s)", genPath(v.Path)), nil

	case qom.ChildNode:
		if v.Selector != "" {
			return fmt.Sprintf("ISCHILDNODE(%s, %s)", v.Selector, genPath(v.Path)), nil
		}
		return fmt.Sprintf("ISCHILDNODE(%s)", genPath(v.Path)), nil

	case qom.DescendantNode:
		if v.Selector != "" {
			return fmt.Sprintf("ISDESCENDANTNODE(%s, %s)", v.Selector, genPath(v.Path)), nil
		}
		return fmt.Sprintf("ISDESCENDANTNODE(%s)", genPath(v.Path)), nil

	default:
		return "", fmt.Errorf("jql2: generate: unknown constraint type %T", c)
	}
}

// ---- DynamicOperand, StaticOperand ----

func genDynamicOperand(op qom.DynamicOperand) (string, error) {
	switch v := op.(type) {
	case qom.PropertyValue:
		return genPropertyValueParts(v.Selector, v.Property), nil
	case qom.Length:
		return "LENGTH(" + genPropertyValueParts(v.PropertyValue.Selector, v.PropertyValue.Property) + ")", nil
	case qom.NodeName:
		return "NAME(" + v.Selector + ")", nil
	case qom.NodeLocalName:
		return "LOCALNAME(" + v.Selector + ")", nil
	case qom.FullTextSearchScore:
		return "SCORE(" + v.Selector + ")", nil
	case qom.LowerCase:
		inner, err := genDynamicOperand(v.Operand)
		if err != nil {
			return "", err
		}
		return "LOWER(" + inner + ")", nil
	case qom.UpperCase:
		inner, err := genDynamicOperand(v.Operand)
		if err != nil {
			return "", err
		}
		return "UPPER(" + inner + ")", nil
	default:
		return "", fmt.Errorf("jql2: generate: unknown dynamic operand type %T", op)
	}
}

func genStaticOperand(op qom.StaticOperand) (string, error) {
	switch v := op.(type) {
	case qom.Literal:
		if v.Type != "" {
			return fmt.Sprintf("CAST('%s' AS %s)", v.Value, v.Type), nil
		}
		return "'" + v.Value + "'", nil
	case qom.BindVariable:
		return "$" + v.Name, nil
	default:
		return "", fmt.Errorf("jql2: generate: unknown static operand type %T", op)
	}
}

// ---- Ordering ----

func genOrderings(ords []qom.Ordering) (string, error) {
	parts := make([]string, len(ords))
	for i, o := range ords {
		op, err := genDynamicOperand(o.Operand)
		if err != nil {
			return "", err
		}
		if o.Descending {
			parts[i] = op + " DESC"
		} else {
			parts[i] = op
		}
	}
	return strings.Join(parts, ", "), nil
}
