package parser

import (
	"testing"

	"github.com/profiles/metaes/internal/ast"
	"github.com/profiles/metaes/internal/lexer"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	return prog
}

func TestParseVariableDeclarationAndBinaryExpression(t *testing.T) {
	prog := parseProgram(t, "let x = 1 + 2 * 3;")
	if len(prog.Body) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Body))
	}
	decl, ok := prog.Body[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("got %T, want *ast.VariableDeclaration", prog.Body[0])
	}
	if decl.DeclKind != "let" || len(decl.Declarations) != 1 {
		t.Fatalf("got %+v, want one let declarator", decl)
	}
	bin, ok := decl.Declarations[0].Init.(*ast.BinaryExpression)
	if !ok || bin.Operator != "+" {
		t.Fatalf("got %+v, want a top-level + expression", decl.Declarations[0].Init)
	}
	// precedence: 2 * 3 binds tighter, so the right side of + is itself a BinaryExpression.
	if _, ok := bin.Right.(*ast.BinaryExpression); !ok {
		t.Fatalf("got %T on the right of +, want *ast.BinaryExpression for 2 * 3", bin.Right)
	}
}

func TestParseIfStatementWithElse(t *testing.T) {
	prog := parseProgram(t, "if (x > 0) { y = 1 } else { y = 2 }")
	ifStmt, ok := prog.Body[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("got %T, want *ast.IfStatement", prog.Body[0])
	}
	if _, ok := ifStmt.Test.(*ast.BinaryExpression); !ok {
		t.Fatalf("got %T, want a BinaryExpression test", ifStmt.Test)
	}
	if ifStmt.Alternate == nil {
		t.Fatalf("expected an else branch")
	}
}

func TestParseFunctionDeclarationAndCall(t *testing.T) {
	prog := parseProgram(t, "function add(a, b) { return a + b } add(1, 2);")
	if len(prog.Body) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.Body))
	}
	fn, ok := prog.Body[0].(*ast.FunctionNode)
	if !ok || fn.Name == nil || fn.Name.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("got %+v, want a named function add with 2 params", prog.Body[0])
	}

	exprStmt, ok := prog.Body[1].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("got %T, want *ast.ExpressionStatement", prog.Body[1])
	}
	call, ok := exprStmt.Expression.(*ast.CallExpression)
	if !ok || len(call.Arguments) != 2 {
		t.Fatalf("got %+v, want a 2-argument call", exprStmt.Expression)
	}
}

func TestParseMemberAndAssignmentExpressions(t *testing.T) {
	prog := parseProgram(t, "obj.items[0] = 42;")
	exprStmt := prog.Body[0].(*ast.ExpressionStatement)
	assign, ok := exprStmt.Expression.(*ast.AssignmentExpression)
	if !ok || assign.Operator != "=" {
		t.Fatalf("got %+v, want a = assignment", exprStmt.Expression)
	}
	member, ok := assign.Target.(*ast.MemberExpression)
	if !ok || !member.Computed {
		t.Fatalf("got %+v, want a computed member target", assign.Target)
	}
}

func TestParseCollectsErrorOnMissingClosingParen(t *testing.T) {
	p := New(lexer.New("(1 + 2"))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected a parse error for an unclosed paren")
	}
}
