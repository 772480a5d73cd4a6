package parser_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/scriptlex/rbparse/internal/diag"
	"github.com/scriptlex/rbparse/internal/parser"
)

// TestParseGolden runs a representative slice of the grammar through the
// parser and snapshots its dumped syntax tree, using a fixture-driven
// snapshot harness with no semantic-analyzer or interpreter pieces,
// since no such runtime exists in this module.
func TestParseGolden(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"assignment", "x = 1 + 2 * 3\n"},
		{"if_elsif_else", "if a\n  1\nelsif b\n  2\nelse\n  3\nend\n"},
		{"method_def", "def greet(name, greeting: \"hi\")\n  \"#{greeting}, #{name}!\"\nend\n"},
		{"class_with_rescue", "class Foo < Bar\n  def run\n    risky\n  rescue StandardError => e\n    handle(e)\n  end\nend\n"},
		{"case_in_pattern", "case value\nin [Integer => n, *rest]\n  n\nin {name:, age:}\n  name\nelse\n  nil\nend\n"},
		{"block_and_lambda", "items.map { |x| x * 2 }\nadder = ->(a, b) { a + b }\n"},
		{"multi_assign", "a, b, *rest = compute\n"},
		{"string_interpolation", "\"hello #{name.upcase}, you have #@count messages\"\n"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			program, _, err := parser.Parse([]byte(c.source), parser.WithFilename(c.name))
			if err != nil {
				t.Fatalf("unexpected parse error: %s", err.Error())
			}
			var buf bytes.Buffer
			diag.DumpAST(&buf, program)
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_ast", c.name), buf.String())
		})
	}
}
