package jql2

import (
	"strings"

	"github.com/jcr-go/jql2/internal/qom"
)

// keywords is the case-insensitive set of JQL2 reserved words, queried
// through isKeyword (spec.md §4.D). The Parser's own dispatch compares
// tokens against literal keyword strings rather than this table.
// Selectors, property names, etc. may still
// collide lexically with these; the grammar position, not the spelling,
// decides whether a word is treated as a keyword.
var keywords = map[string]bool{
	"select": true, "from": true, "where": true, "order": true, "by": true,
	"as": true, "join": true, "inner": true, "left": true, "right": true,
	"outer": true, "on": true, "and": true, "or": true, "not": true,
	"is": true, "null": true, "asc": true, "desc": true, "contains": true,
	"issamenode": true, "ischildnode": true, "isdescendantnode": true,
	"length": true, "name": true, "localname": true, "score": true,
	"lower": true, "upper": true, "like": true, "cast": true,
}

func isKeyword(tok string) bool {
	return keywords[strings.ToLower(tok)]
}

// operatorFromToken maps an operator token (spec.md §4.B "Operator") to its
// qom.Operator constant. tokenFromOperator is its inverse; the Generator
// itself renders operators with qom.Operator.String().
var operatorFromToken = map[string]qom.Operator{
	"=":    qom.OpEqualTo,
	"<>":   qom.OpNotEqualTo,
	"<":    qom.OpLessThan,
	"<=":   qom.OpLessThanOrEqualTo,
	">":    qom.OpGreaterThan,
	">=":   qom.OpGreaterThanOrEqualTo,
	"like": qom.OpLike,
}

var tokenFromOperator = func() map[qom.Operator]string {
	m := make(map[qom.Operator]string, len(operatorFromToken))
	for tok, op := range operatorFromToken {
		m[op] = tok
	}
	// LIKE is rendered upper-case regardless of how it was spelled in the
	// source, matching the Generator's canonical-casing rule for keywords.
	m[qom.OpLike] = "LIKE"
	return m
}()

// lookupOperator resolves a scanned operator token to a qom.Operator,
// reporting ok == false for anything not in the table (spec.md §4.D).
func lookupOperator(tok string) (qom.Operator, bool) {
	op, ok := operatorFromToken[strings.ToLower(tok)]
	return op, ok
}

// stripBrackets strips exactly one outermost `[` / `]` pair, if both are
// present (spec.md §4.C). A token with only one of the two delimiters is
// returned unchanged — see SPEC_FULL.md §10 for why this implementation
// requires both ends rather than guessing at the intended half-bracketed
// semantics.
func stripBrackets(tok string) string {
	if len(tok) >= 2 && tok[0] == '[' && tok[len(tok)-1] == ']' {
		return tok[1 : len(tok)-1]
	}
	return tok
}

// needsBrackets reports whether name must be wrapped in `[...]` when
// generating JQL2: true iff it is not already bracketed, whether or not it
// contains the JCR namespace delimiter `:` (spec.md §4.D).
func needsBrackets(name string) bool {
	if strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]") {
		return false
	}
	return true
}

// needsNamespaceBrackets is the narrower rule the Generator actually uses
// for PropertyValue components (spec.md §4.C "Generator" PropertyValue
// rule): wrap iff the identifier contains a namespace delimiter. Unlike
// needsBrackets, an identifier with no colon is left bare even though it
// isn't already bracketed, since JQL2 allows unquoted simple names.
func needsNamespaceBrackets(name string) bool {
	return strings.ContainsRune(name, ':')
}

// needsQuotes reports whether a path must be double-quoted inside its
// bracket wrapping: true iff it contains a space or a `.` and is not
// already bracketed (spec.md §4.D).
func needsQuotes(path string) bool {
	if strings.HasPrefix(path, "[") && strings.HasSuffix(path, "]") {
		return false
	}
	return strings.ContainsRune(path, ' ') || strings.ContainsRune(path, '.')
}

// bracket wraps s in `[...]`.
func bracket(s string) string {
	return "[" + s + "]"
}
