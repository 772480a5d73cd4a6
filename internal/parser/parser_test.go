package parser_test

import (
	"testing"

	"github.com/scriptlex/rbparse/internal/ast"
	"github.com/scriptlex/rbparse/internal/parser"
	"github.com/scriptlex/rbparse/internal/token"
)

func mustParse(t *testing.T, src string) ast.Node {
	t.Helper()
	program, _, err := parser.Parse([]byte(src))
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %s", src, err.Error())
	}
	return program
}

func firstStmt(t *testing.T, program ast.Node) ast.Node {
	t.Helper()
	prog, ok := program.(*ast.Program)
	if !ok || len(prog.Statements) == 0 {
		t.Fatalf("expected a non-empty Program, got %#v", program)
	}
	return prog.Statements[0]
}

func TestParseSimpleAssignment(t *testing.T) {
	stmt := firstStmt(t, mustParse(t, "x = 1 + 2\n"))
	assign, ok := stmt.(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", stmt)
	}
	if _, ok := assign.Target.(*ast.Ident); !ok {
		t.Fatalf("expected Ident target, got %T", assign.Target)
	}
	if _, ok := assign.Value.(*ast.BinaryOp); !ok {
		t.Fatalf("expected BinaryOp value, got %T", assign.Value)
	}
}

func TestParseMethodDef(t *testing.T) {
	stmt := firstStmt(t, mustParse(t, "def greet(name)\n  name\nend\n"))
	def, ok := stmt.(*ast.MethodDef)
	if !ok {
		t.Fatalf("expected *ast.MethodDef, got %T", stmt)
	}
	if def.Name != "greet" {
		t.Fatalf("expected name greet, got %q", def.Name)
	}
	if def.Params == nil || len(def.Params.Params) != 1 {
		t.Fatalf("expected 1 param, got %#v", def.Params)
	}
}

func TestParseEndlessMethodDef(t *testing.T) {
	stmt := firstStmt(t, mustParse(t, "def square(x) = x * x\n"))
	def, ok := stmt.(*ast.MethodDef)
	if !ok {
		t.Fatalf("expected *ast.MethodDef, got %T", stmt)
	}
	if def.EqTok == (token.Span{}) {
		t.Fatalf("expected EqTok to be set for an endless method def")
	}
	body, ok := def.Body.(*ast.Statements)
	if !ok || len(body.Body) != 1 {
		t.Fatalf("expected a single-statement Statements body, got %#v", def.Body)
	}
	if _, ok := body.Body[0].(*ast.BinaryOp); !ok {
		t.Fatalf("expected a BinaryOp body, got %T", body.Body[0])
	}
}

func TestParseClassWithRescue(t *testing.T) {
	src := "class Worker\n  def run\n    risky\n  rescue StandardError => e\n    handle(e)\n  end\nend\n"
	stmt := firstStmt(t, mustParse(t, src))
	class, ok := stmt.(*ast.ClassDef)
	if !ok {
		t.Fatalf("expected *ast.ClassDef, got %T", stmt)
	}
	body, ok := class.Body.(*ast.Statements)
	if !ok || len(body.Body) == 0 {
		t.Fatalf("expected a non-empty class body, got %#v", class.Body)
	}
	def, ok := body.Body[0].(*ast.MethodDef)
	if !ok {
		t.Fatalf("expected *ast.MethodDef in class body, got %T", body.Body[0])
	}
	begin, ok := def.Body.(*ast.Begin)
	if !ok {
		t.Fatalf("expected def body rescued as *ast.Begin, got %T", def.Body)
	}
	if len(begin.Rescues) != 1 {
		t.Fatalf("expected 1 rescue clause, got %d", len(begin.Rescues))
	}
}

func TestParseCaseInPattern(t *testing.T) {
	src := "case value\nin [Integer => n, *rest]\n  n\nin {name:, age:}\n  name\nend\n"
	stmt := firstStmt(t, mustParse(t, src))
	c, ok := stmt.(*ast.Case)
	if !ok {
		t.Fatalf("expected *ast.Case, got %T", stmt)
	}
	if len(c.Patterns) != 2 {
		t.Fatalf("expected 2 in-clauses, got %d", len(c.Patterns))
	}
	if _, ok := c.Patterns[0].Pattern.(*ast.ArrayPattern); !ok {
		t.Fatalf("expected ArrayPattern for first clause, got %T", c.Patterns[0].Pattern)
	}
	if _, ok := c.Patterns[1].Pattern.(*ast.HashPattern); !ok {
		t.Fatalf("expected HashPattern for second clause, got %T", c.Patterns[1].Pattern)
	}
}

func TestParseMultiAssign(t *testing.T) {
	stmt := firstStmt(t, mustParse(t, "a, b, *rest = compute\n"))
	multi, ok := stmt.(*ast.MultiAssign)
	if !ok {
		t.Fatalf("expected *ast.MultiAssign, got %T", stmt)
	}
	if len(multi.Targets) != 3 {
		t.Fatalf("expected 3 targets, got %d", len(multi.Targets))
	}
	if _, ok := multi.Targets[2].(*ast.SplatArg); !ok {
		t.Fatalf("expected last target to be a splat, got %T", multi.Targets[2])
	}
}

func TestParseBlockAndLambda(t *testing.T) {
	stmt := firstStmt(t, mustParse(t, "items.map { |x| x * 2 }\n"))
	send, ok := stmt.(*ast.Send)
	if !ok {
		t.Fatalf("expected *ast.Send, got %T", stmt)
	}
	if send.Block == nil {
		t.Fatalf("expected a block attached to the send")
	}
}

func TestParseNumberedBlockParam(t *testing.T) {
	stmt := firstStmt(t, mustParse(t, "items.map { _1 * 2 }\n"))
	send, ok := stmt.(*ast.Send)
	if !ok {
		t.Fatalf("expected *ast.Send, got %T", stmt)
	}
	if send.Block == nil {
		t.Fatalf("expected a block attached to the send")
	}
}

func TestDuplicateHashKeyWarning(t *testing.T) {
	program, warnings, err := parser.Parse([]byte("h = { a: 1, a: 2 }\n"))
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err.Error())
	}
	if program == nil {
		t.Fatalf("expected a program")
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d (%v)", len(warnings), warnings)
	}
	if warnings[0].Severity != parser.SeverityWarning {
		t.Fatalf("expected SeverityWarning, got %v", warnings[0].Severity)
	}
}

func TestNoDuplicateWarningForDynamicKeys(t *testing.T) {
	_, warnings, err := parser.Parse([]byte("h = { a => 1, compute_key => 2 }\n"))
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err.Error())
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings for non-literal keys, got %v", warnings)
	}
}

func TestParseErrorReportsExpectedToken(t *testing.T) {
	_, _, err := parser.Parse([]byte("def foo(\n"))
	if err == nil {
		t.Fatalf("expected a parse error for an unterminated param list")
	}
}

func TestParseRescueMultipleTypesAndBareRescue(t *testing.T) {
	src := "begin\n  risky\nrescue TypeA, TypeB => e\n  handle(e)\nrescue => e\n  handle(e)\nend\n"
	stmt := firstStmt(t, mustParse(t, src))
	begin, ok := stmt.(*ast.Begin)
	if !ok {
		t.Fatalf("expected *ast.Begin, got %T", stmt)
	}
	if len(begin.Rescues) != 2 {
		t.Fatalf("expected 2 rescue clauses, got %d", len(begin.Rescues))
	}
	if len(begin.Rescues[0].Types) != 2 {
		t.Fatalf("expected 2 exception types in first rescue, got %d", len(begin.Rescues[0].Types))
	}
	if begin.Rescues[0].Name == nil {
		t.Fatalf("expected the first rescue to bind => e")
	}
	if len(begin.Rescues[1].Types) != 0 {
		t.Fatalf("expected a bare rescue with no exception types, got %d", len(begin.Rescues[1].Types))
	}
	if begin.Rescues[1].Name == nil {
		t.Fatalf("expected the bare rescue to still bind => e")
	}
}

func TestParseCommandCallWithArrayLiteralArg(t *testing.T) {
	stmt := firstStmt(t, mustParse(t, "puts [1, 2]\n"))
	send, ok := stmt.(*ast.Send)
	if !ok {
		t.Fatalf("expected *ast.Send, got %T", stmt)
	}
	if send.Name != "puts" {
		t.Fatalf("expected send name puts, got %q", send.Name)
	}
	if len(send.Args) != 1 {
		t.Fatalf("expected 1 argument, got %d", len(send.Args))
	}
	arr, ok := send.Args[0].(*ast.ArrayLiteral)
	if !ok || len(arr.Elements) != 2 {
		t.Fatalf("expected a 2-element array literal argument, got %#v", send.Args[0])
	}
}

func TestParseIndexStillWinsWithNoWhitespace(t *testing.T) {
	stmt := firstStmt(t, mustParse(t, "items[0]\n"))
	if _, ok := stmt.(*ast.Index); !ok {
		t.Fatalf("expected a tight-bracket reference to parse as *ast.Index, got %T", stmt)
	}
}
