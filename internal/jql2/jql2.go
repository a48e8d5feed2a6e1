// Package jql2 parses JCR SQL-2 (JQL2) query strings into a Query Object
// Model tree and generates JQL2 text back out of one.
//
// Usage:
//     q, err := jql2.Parse("SELECT * FROM [nt:base] WHERE jcr:title = 'x'", qom.DefaultFactory{})
//     if err != nil {
//         panic(err.Error())
//     }
//     out, err := jql2.Generate(q)
package jql2

import "github.com/jcr-go/jql2/internal/qom"

// Parse parses a JQL2 source string into a Query Object Model tree, using f
// to construct every node. It returns a *SyntaxError for a malformed query
// and an *InvalidQuery if the query is well-formed but has no FROM clause
// (spec.md §6, §7).
func Parse(source string, f qom.Factory) (*qom.Query, error) {
	return newParser(source, f).parseQuery()
}

// Generate renders a Query Object Model tree back to JQL2 text (spec.md
// §6). It is the inverse of Parse: parse(generate(q)) reproduces q, and
// generate is idempotent on its own output (spec.md §8).
func Generate(q *qom.Query) (string, error) {
	return generate(q)
}
