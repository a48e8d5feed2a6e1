package jql2

import (
	"fmt"
	"strings"
)

// SyntaxError is raised by the Scanner/Parser when a token does not match
// the expected set, a quoted literal is unterminated, an operator is
// unknown, an ordering direction is invalid, or a required sub-production
// is missing. It carries the offending token, what was expected, and the
// full source string for a caret-pointer diagnostic (spec.md §7).
type SyntaxError struct {
	Source   string // the full JQL2 source being parsed
	Pos      int    // byte offset of the offending token
	Token    string // the offending token's text ("" at end-of-input)
	Expected string // human-readable description of what was expected
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "jql2: syntax error: %s", e.Expected)
	if e.Token != "" {
		fmt.Fprintf(&b, "; got %q", e.Token)
	} else {
		b.WriteString("; got end of input")
	}
	fmt.Fprintf(&b, "\n    %s\n    %s^", e.Source, strings.Repeat(".", e.Pos))
	return b.String()
}

// InvalidQuery is raised by the top-level Parse when the input parses but
// lacks a Source, i.e. there was no FROM clause (spec.md §7).
type InvalidQuery struct {
	Source string
}

func (e *InvalidQuery) Error() string {
	return fmt.Sprintf("jql2: invalid query: missing FROM clause\n    %s", e.Source)
}
