package jql2

import (
	"testing"

	"github.com/jcr-go/jql2/internal/qom"
)

type generateTestCase struct {
	name string
	q    *qom.Query
	want string
}

var generateTestCases = []generateTestCase{
	{
		"bare selector, no constraint, no orderings",
		&qom.Query{Source: qom.Selector{NodeType: "nt:base"}},
		"SELECT * FROM [nt:base]",
	},
	{
		"namespaced property comparison wraps only the namespaced component",
		&qom.Query{
			Source: qom.Selector{NodeType: "nt:unstructured", Alias: "a"},
			Constraint: qom.Comparison{
				Operand1: qom.PropertyValue{Selector: "a", Property: "jcr:title"},
				Operator: qom.OpEqualTo,
				Operand2: qom.Literal{Value: "x"},
			},
		},
		"SELECT * FROM [nt:unstructured] AS a WHERE a.[jcr:title]='x'",
	},
	{
		"LIKE operator keeps surrounding spaces",
		&qom.Query{
			Source: qom.Selector{NodeType: "nt:file"},
			Constraint: qom.Comparison{
				Operand1: qom.PropertyValue{Property: "title"},
				Operator: qom.OpLike,
				Operand2: qom.Literal{Value: "foo%"},
			},
		},
		"SELECT * FROM [nt:file] WHERE title LIKE 'foo%'",
	},
	{
		"inner join renders a bare JOIN with no INNER prefix",
		&qom.Query{
			Source: qom.Join{
				Left:      qom.Selector{NodeType: "nt:file", Alias: "a"},
				Right:     qom.Selector{NodeType: "nt:resource", Alias: "b"},
				Type:      qom.JoinTypeInner,
				Condition: qom.ChildNodeJoinCondition{ChildSelector: "b", ParentSelector: "a"},
			},
		},
		"SELECT * FROM [nt:file] AS a JOIN [nt:resource] AS b ON ISCHILDNODE(b, a)",
	},
	{
		"left outer join",
		&qom.Query{
			Source: qom.Join{
				Left:      qom.Selector{NodeType: "a"},
				Right:     qom.Selector{NodeType: "b"},
				Type:      qom.JoinTypeLeftOuter,
				Condition: qom.EquiJoinCondition{SelectorA: "a", PropertyA: "id", SelectorB: "b", PropertyB: "id"},
			},
		},
		"SELECT * FROM [a] LEFT OUTER JOIN [b] ON a.id=b.id",
	},
	{
		"Not always parenthesizes its inner constraint",
		&qom.Query{
			Source:     qom.Selector{NodeType: "nt:base"},
			Constraint: qom.Not{Constraint: qom.PropertyExistence{Property: "title"}},
		},
		"SELECT * FROM [nt:base] WHERE NOT (title IS NOT NULL)",
	},
	{
		"descendant-node path with internal space is quoted then bracketed",
		&qom.Query{
			Source:     qom.Selector{NodeType: "nt:base"},
			Constraint: qom.DescendantNode{Path: "/content/a b"},
		},
		`SELECT * FROM [nt:base] WHERE ISDESCENDANTNODE(["/content/a b"])`,
	},
	{
		"column with alias",
		&qom.Query{
			Source:  qom.Selector{NodeType: "nt:base", Alias: "a"},
			Columns: []qom.Column{{Selector: "a", Property: "jcr:title", ColumnName: "t"}},
		},
		"SELECT a.[jcr:title] AS t FROM [nt:base] AS a",
	},
	{
		"selector-star column",
		&qom.Query{
			Source:  qom.Selector{NodeType: "nt:base", Alias: "a"},
			Columns: []qom.Column{{Selector: "a"}},
		},
		"SELECT a.* FROM [nt:base] AS a",
	},
	{
		"orderings with explicit DESC and implicit ASC",
		&qom.Query{
			Source: qom.Selector{NodeType: "nt:base"},
			Orderings: []qom.Ordering{
				{Operand: qom.LowerCase{Operand: qom.NodeName{}}, Descending: true},
				{Operand: qom.PropertyValue{Property: "score"}},
			},
		},
		"SELECT * FROM [nt:base] ORDER BY LOWER(NAME()) DESC, score",
	},
	{
		"CAST literal",
		&qom.Query{
			Source: qom.Selector{NodeType: "nt:base"},
			Constraint: qom.Comparison{
				Operand1: qom.PropertyValue{Property: "a"},
				Operator: qom.OpEqualTo,
				Operand2: qom.Literal{Value: "42", Type: "LONG"},
			},
		},
		"SELECT * FROM [nt:base] WHERE a=CAST('42' AS LONG)",
	},
	{
		"bind variable",
		&qom.Query{
			Source: qom.Selector{NodeType: "nt:base"},
			Constraint: qom.Comparison{
				Operand1: qom.PropertyValue{Property: "x"},
				Operator: qom.OpEqualTo,
				Operand2: qom.BindVariable{Name: "param"},
			},
		},
		"SELECT * FROM [nt:base] WHERE x=$param",
	},
}

func TestGenerate(t *testing.T) {
	for _, tc := range generateTestCases {
		got, err := Generate(tc.q)
		if err != nil {
			t.Errorf("%s: Generate() error: %s", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s:\ngot:  %s\nwant: %s", tc.name, got, tc.want)
		}
	}
}

func TestGenerateRejectsQueryWithoutSource(t *testing.T) {
	_, err := Generate(&qom.Query{})
	if err == nil {
		t.Error("Generate(query with nil Source) returned nil error, want an error")
	}
}

func TestGenerateRejectsMalformedColumn(t *testing.T) {
	_, err := Generate(&qom.Query{
		Source:  qom.Selector{NodeType: "nt:base"},
		Columns: []qom.Column{{}},
	})
	if err == nil {
		t.Error("Generate(column with neither selector nor property) returned nil error, want an error")
	}
}
