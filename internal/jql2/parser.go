package jql2

// Recursive-descent Parser over the Scanner's lookahead deque, implementing
// the grammar productions in spec.md §4.B. Unlike the teacher's
// internal/kqlog parser — which builds an operator-precedence stack
// (stacks.go, rpn.go) to give AND a tighter binding than OR — this grammar
// deliberately has no precedence distinction between AND and OR: a
// Constraint is one primary, optionally followed by AND/OR and a recursive
// Constraint, right-associatively. See DESIGN.md ("Deliberate divergence
// from the teacher's parsing technique") for why the precedence-stack
// approach was examined and rejected.

import (
	"strings"

	"github.com/jcr-go/jql2/internal/qom"
)

type parser struct {
	kql string
	sc  *scanner
	f   qom.Factory
}

func newParser(source string, f qom.Factory) *parser {
	return &parser{kql: source, sc: newScanner(source), f: f}
}

// parseQuery implements the top-level Query production (spec.md §4.B): the
// four clauses FROM/SELECT/WHERE/ORDER BY may appear in any order, each at
// most once. The first unrecognized keyword (including EOF) ends the
// clause loop; the accumulated state is then validated.
func (p *parser) parseQuery() (*qom.Query, error) {
	var source qom.Source
	var constraint qom.Constraint
	var orderings []qom.Ordering
	var columns []qom.Column
	var seenFrom, seenSelect, seenWhere, seenOrder bool

clauses:
	for {
		tok := p.sc.lookup(0)
		if tok.isEOF() {
			break
		}
		switch strings.ToLower(tok.val) {
		case "from":
			if seenFrom {
				return nil, &SyntaxError{Source: p.kql, Pos: tok.pos, Token: tok.val, Expected: "at most one FROM clause"}
			}
			seenFrom = true
			p.sc.fetch()
			src, err := p.parseSource()
			if err != nil {
				return nil, err
			}
			source = src

		case "select":
			if seenSelect {
				return nil, &SyntaxError{Source: p.kql, Pos: tok.pos, Token: tok.val, Expected: "at most one SELECT clause"}
			}
			seenSelect = true
			p.sc.fetch()
			cols, err := p.parseColumns()
			if err != nil {
				return nil, err
			}
			columns = cols

		case "where":
			if seenWhere {
				return nil, &SyntaxError{Source: p.kql, Pos: tok.pos, Token: tok.val, Expected: "at most one WHERE clause"}
			}
			seenWhere = true
			p.sc.fetch()
			c, err := p.parseConstraint()
			if err != nil {
				return nil, err
			}
			constraint = c

		case "order":
			if seenOrder {
				return nil, &SyntaxError{Source: p.kql, Pos: tok.pos, Token: tok.val, Expected: "at most one ORDER BY clause"}
			}
			seenOrder = true
			p.sc.fetch()
			if _, err := p.sc.expect(p.kql, "by"); err != nil {
				return nil, err
			}
			ords, err := p.parseOrderings()
			if err != nil {
				return nil, err
			}
			orderings = ords

		default:
			break clauses
		}
	}

	if source == nil {
		return nil, &InvalidQuery{Source: p.kql}
	}
	return p.f.CreateQuery(source, constraint, orderings, columns), nil
}

// ---- Source, Selector, Join ----

func (p *parser) parseSource() (qom.Source, error) {
	left, err := p.parseSelector()
	if err != nil {
		return nil, err
	}
	var source qom.Source = left
	for {
		tok := p.sc.lookup(0)
		switch strings.ToLower(tok.val) {
		case "join", "inner", "left", "right":
		default:
			return source, nil
		}
		joinType, err := p.parseJoinType()
		if err != nil {
			return nil, err
		}
		right, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		cond, err := p.parseJoinCondition()
		if err != nil {
			return nil, err
		}
		source = p.f.Join(source, right, joinType, cond)
	}
}

func (p *parser) parseSelector() (qom.Selector, error) {
	tok := p.sc.fetch()
	if tok.isEOF() {
		return qom.Selector{}, &SyntaxError{Source: p.kql, Pos: tok.pos, Token: "", Expected: "a selector"}
	}
	nodeType := stripBrackets(tok.val)
	alias := ""
	if tokenIs(p.sc.lookup(0).val, "as") {
		p.sc.fetch()
		aliasTok := p.sc.fetch()
		alias = stripBrackets(aliasTok.val)
	}
	sel := p.f.Selector(nodeType, alias)
	return sel.(qom.Selector), nil
}

func (p *parser) parseJoinType() (qom.JoinType, error) {
	tok := p.sc.fetch()
	switch strings.ToLower(tok.val) {
	case "join":
		return qom.JoinTypeInner, nil
	case "inner":
		if _, err := p.sc.expect(p.kql, "join"); err != nil {
			return 0, err
		}
		return qom.JoinTypeInner, nil
	case "left":
		if err := p.sc.expectAll(p.kql, []string{"outer", "join"}); err != nil {
			return 0, err
		}
		return qom.JoinTypeLeftOuter, nil
	case "right":
		if err := p.sc.expectAll(p.kql, []string{"outer", "join"}); err != nil {
			return 0, err
		}
		return qom.JoinTypeRightOuter, nil
	default:
		return 0, &SyntaxError{Source: p.kql, Pos: tok.pos, Token: tok.val, Expected: "a join type"}
	}
}

func (p *parser) parseJoinCondition() (qom.JoinCondition, error) {
	if _, err := p.sc.expect(p.kql, "on"); err != nil {
		return nil, err
	}
	tok := p.sc.lookup(0)
	switch strings.ToLower(tok.val) {
	case "issamenode":
		p.sc.fetch()
		if _, err := p.sc.expect(p.kql, "("); err != nil {
			return nil, err
		}
		selA, err := p.parseSelectorNameArg()
		if err != nil {
			return nil, err
		}
		if _, err := p.sc.expect(p.kql, ","); err != nil {
			return nil, err
		}
		selB, err := p.parseSelectorNameArg()
		if err != nil {
			return nil, err
		}
		path := ""
		if tokenIs(p.sc.lookup(0).val, ",") {
			p.sc.fetch()
			pathTok := p.sc.fetch()
			path = parsePathValue(pathTok.val)
		}
		if _, err := p.sc.expect(p.kql, ")"); err != nil {
			return nil, err
		}
		return p.f.SameNodeJoinCondition(selA, selB, path), nil

	case "ischildnode":
		p.sc.fetch()
		if _, err := p.sc.expect(p.kql, "("); err != nil {
			return nil, err
		}
		child, err := p.parseSelectorNameArg()
		if err != nil {
			return nil, err
		}
		if _, err := p.sc.expect(p.kql, ","); err != nil {
			return nil, err
		}
		parent, err := p.parseSelectorNameArg()
		if err != nil {
			return nil, err
		}
		if _, err := p.sc.expect(p.kql, ")"); err != nil {
			return nil, err
		}
		return p.f.ChildNodeJoinCondition(child, parent), nil

	case "isdescendantnode":
		p.sc.fetch()
		if _, err := p.sc.expect(p.kql, "("); err != nil {
			return nil, err
		}
		descendant, err := p.parseSelectorNameArg()
		if err != nil {
			return nil, err
		}
		if _, err := p.sc.expect(p.kql, ","); err != nil {
			return nil, err
		}
		ancestor, err := p.parseSelectorNameArg()
		if err != nil {
			return nil, err
		}
		if _, err := p.sc.expect(p.kql, ")"); err != nil {
			return nil, err
		}
		return p.f.DescendantNodeJoinCondition(descendant, ancestor), nil

	default:
		selA, propA, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.sc.expect(p.kql, "="); err != nil {
			return nil, err
		}
		selB, propB, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		return p.f.EquiJoinCondition(selA, propA, selB, propB), nil
	}
}

// parseSelectorNameArg reads a bare selector name argument, bracket-stripped
// like any other Identifier (spec.md §4.C; SPEC_FULL.md §10 resolves the
// teacher-observed asymmetry by always stripping here too).
func (p *parser) parseSelectorNameArg() (string, error) {
	tok := p.sc.fetch()
	if tok.isEOF() {
		return "", &SyntaxError{Source: p.kql, Pos: tok.pos, Token: "", Expected: "a selector name"}
	}
	return stripBrackets(tok.val), nil
}

// ---- Identifier (spec.md §4.C) ----

// parseIdentifier reads `prop` or `sel.prop`, bracket-stripping each part.
func (p *parser) parseIdentifier() (selector, property string, err error) {
	tok1 := p.sc.fetch()
	if tok1.isEOF() {
		return "", "", &SyntaxError{Source: p.kql, Pos: tok1.pos, Token: "", Expected: "an identifier"}
	}
	first := stripBrackets(tok1.val)
	if tokenIs(p.sc.lookup(0).val, ".") {
		p.sc.fetch()
		tok2 := p.sc.fetch()
		if tok2.isEOF() {
			return "", "", &SyntaxError{Source: p.kql, Pos: tok2.pos, Token: "", Expected: "a property name"}
		}
		return first, stripBrackets(tok2.val), nil
	}
	return "", first, nil
}

// ---- Constraint (spec.md §4.B) ----

func (p *parser) parseConstraint() (qom.Constraint, error) {
	primary, err := p.parsePrimaryConstraint()
	if err != nil {
		return nil, err
	}
	tok := p.sc.lookup(0)
	switch strings.ToLower(tok.val) {
	case "and":
		p.sc.fetch()
		rhs, err := p.parseConstraint()
		if err != nil {
			return nil, err
		}
		return p.f.And(primary, rhs), nil
	case "or":
		p.sc.fetch()
		rhs, err := p.parseConstraint()
		if err != nil {
			return nil, err
		}
		return p.f.Or(primary, rhs), nil
	default:
		return primary, nil
	}
}

var dynamicOperandKeywords = map[string]bool{
	"length": true, "name": true, "localname": true,
	"score": true, "lower": true, "upper": true,
}

func (p *parser) parsePrimaryConstraint() (qom.Constraint, error) {
	tok := p.sc.lookup(0)
	switch strings.ToLower(tok.val) {
	case "not":
		p.sc.fetch()
		inner, err := p.parsePrimaryConstraint()
		if err != nil {
			return nil, err
		}
		return p.f.Not(inner), nil

	case "(":
		p.sc.fetch()
		c, err := p.parseConstraint()
		if err != nil {
			return nil, err
		}
		if _, err := p.sc.expect(p.kql, ")"); err != nil {
			return nil, err
		}
		return c, nil

	case "contains":
		p.sc.fetch()
		if _, err := p.sc.expect(p.kql, "("); err != nil {
			return nil, err
		}
		selector, property, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if property == "*" {
			property = ""
		}
		if _, err := p.sc.expect(p.kql, ","); err != nil {
			return nil, err
		}
		expr, err := p.parseStaticOperand()
		if err != nil {
			return nil, err
		}
		if _, err := p.sc.expect(p.kql, ")"); err != nil {
			return nil, err
		}
		return p.f.FullTextSearch(selector, property, expr), nil

	case "issamenode", "ischildnode", "isdescendantnode":
		return p.parseLocationConstraint()

	default:
		kw := strings.ToLower(tok.val)
		if dynamicOperandKeywords[kw] && tokenIs(p.sc.lookup(1).val, "(") {
			// A function-call dynamic operand can never be the left side of
			// PropertyExistence, so this is unambiguously a Comparison.
			dyn, err := p.parseDynamicOperand()
			if err != nil {
				return nil, err
			}
			return p.parseComparisonTail(dyn)
		}
		return p.parsePropertyConstraint()
	}
}

func (p *parser) parseLocationConstraint() (qom.Constraint, error) {
	kw := strings.ToLower(p.sc.fetch().val)
	if _, err := p.sc.expect(p.kql, "("); err != nil {
		return nil, err
	}
	var selector string
	if !tokenIs(p.sc.lookup(1).val, ")") {
		sel, err := p.parseSelectorNameArg()
		if err != nil {
			return nil, err
		}
		selector = sel
		if _, err := p.sc.expect(p.kql, ","); err != nil {
			return nil, err
		}
	}
	pathTok := p.sc.fetch()
	if pathTok.isEOF() {
		return nil, &SyntaxError{Source: p.kql, Pos: pathTok.pos, Token: "", Expected: "a path"}
	}
	path := parsePathValue(pathTok.val)
	if _, err := p.sc.expect(p.kql, ")"); err != nil {
		return nil, err
	}
	switch kw {
	case "issamenode":
		return p.f.SameNode(selector, path), nil
	case "ischildnode":
		return p.f.ChildNode(selector, path), nil
	default:
		return p.f.DescendantNode(selector, path), nil
	}
}

// parsePropertyConstraint disambiguates PropertyExistence from Comparison by
// looking ahead past the identifier for IS (spec.md §4.B): one token ahead
// for a bare property, three ahead for `sel.prop`.
func (p *parser) parsePropertyConstraint() (qom.Constraint, error) {
	isAt := 1
	if tokenIs(p.sc.lookup(1).val, ".") {
		isAt = 3
	}
	if tokenIs(p.sc.lookup(isAt).val, "is") {
		selector, property, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.sc.expect(p.kql, "is"); err != nil {
			return nil, err
		}
		if tokenIs(p.sc.lookup(0).val, "not") {
			p.sc.fetch()
			if _, err := p.sc.expect(p.kql, "null"); err != nil {
				return nil, err
			}
			return p.f.PropertyExistence(selector, property), nil
		}
		if _, err := p.sc.expect(p.kql, "null"); err != nil {
			return nil, err
		}
		return p.f.Not(p.f.PropertyExistence(selector, property)), nil
	}

	selector, property, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	dyn := p.f.PropertyValue(selector, property)
	return p.parseComparisonTail(dyn)
}

func (p *parser) parseComparisonTail(dyn qom.DynamicOperand) (qom.Constraint, error) {
	opTok := p.sc.fetch()
	op, ok := lookupOperator(opTok.val)
	if !ok {
		return nil, &SyntaxError{Source: p.kql, Pos: opTok.pos, Token: opTok.val, Expected: "a comparison operator"}
	}
	static, err := p.parseStaticOperand()
	if err != nil {
		return nil, err
	}
	return p.f.Comparison(dyn, op, static), nil
}

// ---- DynamicOperand (spec.md §4.B) ----

func (p *parser) parseDynamicOperand() (qom.DynamicOperand, error) {
	tok := p.sc.lookup(0)
	kw := strings.ToLower(tok.val)
	if !dynamicOperandKeywords[kw] || !tokenIs(p.sc.lookup(1).val, "(") {
		// Not a function call form — including a bare property spelled the
		// same as a function keyword, e.g. a property literally named
		// "score" used unqualified in ORDER BY (spec.md §8 scenario 5).
		selector, property, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		return p.f.PropertyValue(selector, property), nil
	}
	switch kw {
	case "length":
		p.sc.fetch()
		if _, err := p.sc.expect(p.kql, "("); err != nil {
			return nil, err
		}
		selector, property, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.sc.expect(p.kql, ")"); err != nil {
			return nil, err
		}
		return p.f.Length(qom.PropertyValue{Selector: selector, Property: property}), nil

	case "name":
		p.sc.fetch()
		sel, err := p.parseOptionalSelectorArg()
		if err != nil {
			return nil, err
		}
		return p.f.NodeName(sel), nil

	case "localname":
		p.sc.fetch()
		sel, err := p.parseOptionalSelectorArg()
		if err != nil {
			return nil, err
		}
		return p.f.NodeLocalName(sel), nil

	case "score":
		p.sc.fetch()
		sel, err := p.parseOptionalSelectorArg()
		if err != nil {
			return nil, err
		}
		return p.f.FullTextSearchScore(sel), nil

	case "lower":
		p.sc.fetch()
		if _, err := p.sc.expect(p.kql, "("); err != nil {
			return nil, err
		}
		inner, err := p.parseDynamicOperand()
		if err != nil {
			return nil, err
		}
		if _, err := p.sc.expect(p.kql, ")"); err != nil {
			return nil, err
		}
		return p.f.LowerCase(inner), nil

	case "upper":
		p.sc.fetch()
		if _, err := p.sc.expect(p.kql, "("); err != nil {
			return nil, err
		}
		inner, err := p.parseDynamicOperand()
		if err != nil {
			return nil, err
		}
		if _, err := p.sc.expect(p.kql, ")"); err != nil {
			return nil, err
		}
		return p.f.UpperCase(inner), nil
	}
	panic("unreachable: kw is a dynamicOperandKeywords key")
}

// parseOptionalSelectorArg reads NAME/LOCALNAME/SCORE's `(` [selector] `)`
// argument, where an empty argument list denotes the default selector
// (spec.md §4.B, §9).
func (p *parser) parseOptionalSelectorArg() (string, error) {
	if _, err := p.sc.expect(p.kql, "("); err != nil {
		return "", err
	}
	selector := ""
	if !tokenIs(p.sc.lookup(0).val, ")") {
		tok := p.sc.fetch()
		selector = stripBrackets(tok.val)
	}
	if _, err := p.sc.expect(p.kql, ")"); err != nil {
		return "", err
	}
	return selector, nil
}

// ---- StaticOperand, Literal (spec.md §4.B) ----

func (p *parser) parseStaticOperand() (qom.StaticOperand, error) {
	tok := p.sc.lookup(0)
	if tokenIs(tok.val, "$") {
		// `$` is its own single-character punctuation token (spec.md §4.A
		// rule 4); the bind variable's name is the token that follows it,
		// not a suffix of this one.
		p.sc.fetch()
		nameTok := p.sc.fetch()
		if nameTok.isEOF() {
			return nil, &SyntaxError{Source: p.kql, Pos: nameTok.pos, Token: "", Expected: "a bind variable name"}
		}
		return p.f.BindVariable(nameTok.val), nil
	}
	if tokenIs(tok.val, "cast") {
		return p.parseCastLiteral()
	}
	val, err := p.parseLiteralValue()
	if err != nil {
		return nil, err
	}
	return p.f.Literal(val), nil
}

func (p *parser) parseCastLiteral() (qom.StaticOperand, error) {
	p.sc.fetch() // CAST
	if _, err := p.sc.expect(p.kql, "("); err != nil {
		return nil, err
	}
	val, err := p.parseLiteralValue()
	if err != nil {
		return nil, err
	}
	if _, err := p.sc.expect(p.kql, "as"); err != nil {
		return nil, err
	}
	typTok := p.sc.fetch()
	if typTok.isEOF() {
		return nil, &SyntaxError{Source: p.kql, Pos: typTok.pos, Token: "", Expected: "a CAST type name"}
	}
	if _, err := p.sc.expect(p.kql, ")"); err != nil {
		return nil, err
	}
	return p.f.CastLiteral(val, typTok.val), nil
}

// parseLiteralValue implements the Literal production (spec.md §4.B):
// an unquoted token is taken verbatim; a quoted token is, in the usual
// case, already complete as scanned (scanOne scans to the matching quote
// in one pass — spec.md §4.A rule 2). The loop below also covers the
// degenerate case of a scanner that split a quoted value across more than
// one lookahead token: it keeps concatenating (with no separator — see
// SPEC_FULL.md §10) until the accumulated text's last byte is the closing
// quote, and reports a SyntaxError if end-of-input arrives first.
func (p *parser) parseLiteralValue() (string, error) {
	tok := p.sc.fetch()
	if tok.isEOF() {
		return "", &SyntaxError{Source: p.kql, Pos: tok.pos, Token: "", Expected: "a literal"}
	}
	if !(strings.HasPrefix(tok.val, "'") || strings.HasPrefix(tok.val, "\"")) {
		return tok.val, nil
	}
	quote := tok.val[0]
	acc := tok.val
	for !(len(acc) >= 2 && acc[len(acc)-1] == quote) {
		next := p.sc.lookup(0)
		if next.isEOF() {
			return "", &SyntaxError{Source: p.kql, Pos: tok.pos, Token: "", Expected: "a closing quote"}
		}
		acc += p.sc.fetch().val
	}
	return acc[1 : len(acc)-1], nil
}

// parsePathValue reads a Path argument: bracket-stripped if wrapped in
// `[...]`, then quote-stripped if what remains is a quoted literal (so the
// Generator's `["/a b"]` form reads back as `/a b`), taken verbatim
// otherwise (spec.md §4.B "Path").
func parsePathValue(tok string) string {
	v := stripBrackets(tok)
	if len(v) >= 2 && (v[0] == '\'' || v[0] == '"') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// ---- Ordering (spec.md §4.B) ----

func (p *parser) parseOrderings() ([]qom.Ordering, error) {
	var result []qom.Ordering
	for {
		ord, err := p.parseOrdering()
		if err != nil {
			return nil, err
		}
		result = append(result, ord)
		if tokenIs(p.sc.lookup(0).val, ",") {
			p.sc.fetch()
			continue
		}
		return result, nil
	}
}

func (p *parser) parseOrdering() (qom.Ordering, error) {
	dyn, err := p.parseDynamicOperand()
	if err != nil {
		return qom.Ordering{}, err
	}
	switch strings.ToLower(p.sc.lookup(0).val) {
	case "asc":
		p.sc.fetch()
		return p.f.Ascending(dyn), nil
	case "desc":
		p.sc.fetch()
		return p.f.Descending(dyn), nil
	default:
		// No direction keyword: ascending, per spec.md §3 invariant 4.
		return p.f.Ascending(dyn), nil
	}
}

// ---- Columns, Column (spec.md §4.B) ----

func (p *parser) parseColumns() ([]qom.Column, error) {
	if tokenIs(p.sc.lookup(0).val, "*") {
		p.sc.fetch()
		return nil, nil
	}
	var cols []qom.Column
	for {
		col, err := p.parseColumn()
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
		if tokenIs(p.sc.lookup(0).val, ",") {
			p.sc.fetch()
			continue
		}
		return cols, nil
	}
}

func (p *parser) parseColumn() (qom.Column, error) {
	selector, property, err := p.parseIdentifier()
	if err != nil {
		return qom.Column{}, err
	}
	if property == "*" {
		property = ""
	}
	columnName := ""
	if tokenIs(p.sc.lookup(0).val, "as") {
		p.sc.fetch()
		nameTok := p.sc.fetch()
		if nameTok.isEOF() {
			return qom.Column{}, &SyntaxError{Source: p.kql, Pos: nameTok.pos, Token: "", Expected: "a column name"}
		}
		columnName = stripBrackets(nameTok.val)
	}
	return p.f.Column(selector, property, columnName), nil
}
