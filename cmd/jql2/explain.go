package main

// Support for `jql2 --explain --vars vars.json`: substitute bind variable
// values supplied as a JSON object into a parsed query before regenerating
// it, so a user can preview what the server will actually receive. This is
// a display-only decoration pass over the QOM tree (SPEC_FULL.md §9) — it
// never touches query execution, which remains out of scope.

import (
	"regexp"
	"strings"

	"github.com/valyala/fastjson"

	"github.com/jcr-go/jql2/internal/ansipainter"
	"github.com/jcr-go/jql2/internal/jsonutils"
	"github.com/jcr-go/jql2/internal/qom"
)

// substituteBindVariables returns a copy of q with every qom.BindVariable
// resolvable against vars replaced by the qom.Literal of its looked-up
// value. BindVariables with no matching entry in vars are left untouched.
func substituteBindVariables(q *qom.Query, vars *fastjson.Value) *qom.Query {
	if vars == nil {
		return q
	}
	return &qom.Query{
		Source:     q.Source, // Sources never contain bind variables.
		Constraint: substConstraint(q.Constraint, vars),
		Orderings:  q.Orderings, // Orderings never contain bind variables.
		Columns:    q.Columns,
	}
}

func substConstraint(c qom.Constraint, vars *fastjson.Value) qom.Constraint {
	switch v := c.(type) {
	case nil:
		return nil
	case qom.And:
		return qom.And{Constraint1: substConstraint(v.Constraint1, vars), Constraint2: substConstraint(v.Constraint2, vars)}
	case qom.Or:
		return qom.Or{Constraint1: substConstraint(v.Constraint1, vars), Constraint2: substConstraint(v.Constraint2, vars)}
	case qom.Not:
		return qom.Not{Constraint: substConstraint(v.Constraint, vars)}
	case qom.Comparison:
		return qom.Comparison{Operand1: v.Operand1, Operator: v.Operator, Operand2: substStaticOperand(v.Operand2, vars)}
	case qom.FullTextSearch:
		return qom.FullTextSearch{Selector: v.Selector, Property: v.Property, SearchExpression: substStaticOperand(v.SearchExpression, vars)}
	default:
		// PropertyExistence, SameNode, ChildNode, DescendantNode: no
		// StaticOperand to substitute into.
		return c
	}
}

func substStaticOperand(op qom.StaticOperand, vars *fastjson.Value) qom.StaticOperand {
	bv, ok := op.(qom.BindVariable)
	if !ok {
		return op
	}
	val := jsonutils.ExtractValue(vars, bv.Name)
	if val == nil {
		return op
	}
	return qom.Literal{Value: literalText(val)}
}

// unusedVarNames reports the top-level keys still left in vars after
// substituteBindVariables has extracted every name the query actually
// referenced — vars supplied with --vars that don't correspond to any
// $name in the query.
func unusedVarNames(vars *fastjson.Value) []string {
	if vars == nil {
		return nil
	}
	o := vars.GetObject()
	if o == nil {
		return nil
	}
	var names []string
	o.Visit(func(key []byte, v *fastjson.Value) {
		names = append(names, string(key))
	})
	return names
}

// literalText renders a fastjson scalar the way it would appear inside a
// JQL2 string literal: unquoted for numbers and booleans, as-is for
// strings (the Generator re-quotes it).
func literalText(val *fastjson.Value) string {
	switch val.Type() {
	case fastjson.TypeString:
		return string(val.GetStringBytes())
	default:
		return val.String()
	}
}

// highlightRe tokenizes a canonicalized JQL2 string for `--color` output.
// It is deliberately a display-only lexer, independent of the Parser's own
// Scanner, since its only job is picking an ansipainter role per token.
var highlightRe = regexp.MustCompile(
	`(?i)(?P<keyword>\b(?:SELECT|FROM|WHERE|AND|OR|NOT|ORDER|BY|ASC|DESC|AS|JOIN|INNER|LEFT|RIGHT|OUTER|ON|IS|NULL|LIKE|CONTAINS|CAST|ISSAMENODE|ISCHILDNODE|ISDESCENDANTNODE|LENGTH|NAME|LOCALNAME|SCORE|LOWER|UPPER)\b)` +
		`|(?P<bracketedName>\[[^\]]*\])` +
		`|(?P<literal>'(?:[^']|'')*')` +
		`|(?P<bindVariable>\$[A-Za-z_][A-Za-z0-9_]*)` +
		`|(?P<operator><=|>=|<>|[=<>])`,
)

// highlight paints keywords, bracketed names, quoted literals, bind
// variables, and comparison operators in a canonicalized query string.
func highlight(query string, painter *ansipainter.ANSIPainter) string {
	names := highlightRe.SubexpNames()
	var b strings.Builder
	last := 0
	for _, loc := range highlightRe.FindAllStringSubmatchIndex(query, -1) {
		start, end := loc[0], loc[1]
		b.WriteString(query[last:start])
		role := ""
		for i, name := range names {
			if name != "" && loc[2*i] != -1 {
				role = name
			}
		}
		painter.Paint(&b, role)
		b.WriteString(query[start:end])
		painter.Reset(&b)
		last = end
	}
	b.WriteString(query[last:])
	return b.String()
}
