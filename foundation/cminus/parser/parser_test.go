// File: parser_test.go
// Title: C-minus Parser Unit Tests
// Description: Tests for tree shapes of every production, operator
//              precedence and associativity, error reporting and recovery.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial comprehensive test suite

package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/msto63/cminus/foundation/cminus/ast"
	"github.com/msto63/cminus/foundation/cminus/diag"
	"github.com/msto63/cminus/foundation/cminus/scanner"
	"github.com/msto63/cminus/foundation/cminus/token"
	mdwerror "github.com/msto63/cminus/foundation/core/error"
)

func parse(t *testing.T, src string) (*ast.Program, ErrorList, *Parser) {
	t.Helper()
	p := New(scanner.New(strings.NewReader(src), scanner.Options{}), Options{})
	prog, errs := p.Parse()
	if prog == nil {
		t.Fatal("Parse() returned nil program")
	}
	if !p.Consumed() {
		t.Fatal("Parse() did not consume the input")
	}
	return prog, errs, p
}

func parseClean(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, errs, _ := parse(t, src)
	if errs != nil {
		t.Fatalf("Expected no errors for %q, got %v", src, errs)
	}
	return prog
}

// body parses "void main(void) { <stmts> }" and returns the compound items
func body(t *testing.T, stmts string) []ast.Node {
	t.Helper()
	prog := parseClean(t, "void main(void) { "+stmts+" }")
	fn, ok := prog.Decls[0].(*ast.Function)
	if !ok {
		t.Fatalf("Expected *ast.Function, got %T", prog.Decls[0])
	}
	return fn.Body.Items
}

// expr parses "x = <src>;" inside a function and returns the right side
func expr(t *testing.T, src string) ast.Expr {
	t.Helper()
	items := body(t, "x = "+src+";")
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	assign, ok := items[0].(*ast.Assign)
	if !ok {
		t.Fatalf("Expected *ast.Assign, got %T", items[0])
	}
	return assign.Value
}

// render prints an expression in fully parenthesized form
func render(e ast.Node) string {
	switch n := e.(type) {
	case nil:
		return "<nil>"
	case *ast.Identifier:
		return n.Name
	case *ast.Const:
		return strings.TrimPrefix(n.String(), "Const: ")
	case *ast.BinaryOp:
		return "(" + render(n.Left) + " " + n.Op.Symbol() + " " + render(n.Right) + ")"
	case *ast.ArrayElement:
		return n.Name.Name + "[" + render(n.Index) + "]"
	case *ast.Call:
		var args []string
		if n.Args != nil {
			for _, a := range n.Args.Args {
				args = append(args, render(a))
			}
		}
		return n.Name.Name + "(" + strings.Join(args, ", ") + ")"
	case *ast.Assign:
		return "(" + render(n.Target) + " = " + render(n.Value) + ")"
	default:
		return "?" + e.SubKind().String()
	}
}

func TestParse_VarDecl(t *testing.T) {
	prog := parseClean(t, "int x;")

	if len(prog.Decls) != 1 {
		t.Fatalf("Expected 1 declaration, got %d", len(prog.Decls))
	}
	decl, ok := prog.Decls[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("Expected *ast.VarDecl, got %T", prog.Decls[0])
	}
	if _, ok := decl.Type.(*ast.IntType); !ok {
		t.Errorf("Expected IntType, got %T", decl.Type)
	}
	id, ok := decl.Name.(*ast.Identifier)
	if !ok || id.Name != "x" {
		t.Errorf("Expected Identifier x, got %#v", decl.Name)
	}
}

func TestParse_Function(t *testing.T) {
	prog := parseClean(t, "int f(void){ return 0; }")

	fn, ok := prog.Decls[0].(*ast.Function)
	if !ok {
		t.Fatalf("Expected *ast.Function, got %T", prog.Decls[0])
	}
	if _, ok := fn.Type.(*ast.IntType); !ok {
		t.Errorf("Expected IntType, got %T", fn.Type)
	}
	if fn.Name == nil || fn.Name.Name != "f" {
		t.Errorf("Expected name f, got %v", fn.Name)
	}
	if fn.Params == nil || len(fn.Params.Params) != 1 {
		t.Fatalf("Expected one param, got %v", fn.Params)
	}
	param := fn.Params.Params[0]
	if _, ok := param.Type.(*ast.VoidType); !ok || param.Name != nil {
		t.Errorf("Expected lone void param, got %#v", param)
	}
	if fn.Body == nil || len(fn.Body.Items) != 1 {
		t.Fatalf("Expected one body item, got %v", fn.Body)
	}
	ret, ok := fn.Body.Items[0].(*ast.Return)
	if !ok {
		t.Fatalf("Expected *ast.Return, got %T", fn.Body.Items[0])
	}
	if c, ok := ret.Value.(*ast.Const); !ok || c.Value != 0 {
		t.Errorf("Expected Const 0, got %#v", ret.Value)
	}
}

func TestParse_AssignPrecedence(t *testing.T) {
	items := body(t, "x = y + 2 * 3;")
	assign, ok := items[0].(*ast.Assign)
	if !ok {
		t.Fatalf("Expected *ast.Assign, got %T", items[0])
	}
	if id, ok := assign.Target.(*ast.Identifier); !ok || id.Name != "x" {
		t.Errorf("Expected target x, got %#v", assign.Target)
	}
	plus, ok := assign.Value.(*ast.BinaryOp)
	if !ok || plus.Op != token.Plus {
		t.Fatalf("Expected + at the top, got %#v", assign.Value)
	}
	if id, ok := plus.Left.(*ast.Identifier); !ok || id.Name != "y" {
		t.Errorf("Expected left y, got %#v", plus.Left)
	}
	times, ok := plus.Right.(*ast.BinaryOp)
	if !ok || times.Op != token.Times {
		t.Fatalf("Expected * on the right, got %#v", plus.Right)
	}
	if render(times) != "(2 * 3)" {
		t.Errorf("Expected (2 * 3), got %s", render(times))
	}
}

func TestParse_ArrayDecl(t *testing.T) {
	prog := parseClean(t, "int a[10];")

	decl, ok := prog.Decls[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("Expected *ast.VarDecl, got %T", prog.Decls[0])
	}
	arr, ok := decl.Name.(*ast.ArrayDecl)
	if !ok {
		t.Fatalf("Expected *ast.ArrayDecl, got %T", decl.Name)
	}
	if arr.Name == nil || arr.Name.Name != "a" {
		t.Errorf("Expected name a, got %v", arr.Name)
	}
	if arr.Size == nil || arr.Size.Value != 10 {
		t.Errorf("Expected size 10, got %v", arr.Size)
	}
}

func TestParse_ArrayDeclWithoutType(t *testing.T) {
	prog, errs, _ := parse(t, "a[10];")

	if len(errs) != 2 {
		t.Fatalf("Expected 2 errors, got %d: %v", len(errs), errs)
	}
	if errs[0].Message != MsgUnexpectedType {
		t.Errorf("Expected %q first, got %q", MsgUnexpectedType, errs[0].Message)
	}
	decl, ok := prog.Decls[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("Expected *ast.VarDecl, got %T", prog.Decls[0])
	}
	arr, ok := decl.Name.(*ast.ArrayDecl)
	if !ok || arr.Size == nil || arr.Size.Value != 10 {
		t.Errorf("Expected ArrayDecl of size 10, got %#v", decl.Name)
	}
}

func TestParse_MissingIdentifierReportsOnce(t *testing.T) {
	_, errs, p := parse(t, "int ;")

	if len(errs) != 1 {
		t.Fatalf("Expected exactly 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Token.Kind != token.Semi || errs[0].Line != 1 {
		t.Errorf("Expected error at ';' on line 1, got %v", errs[0])
	}
	if !p.Consumed() {
		t.Error("Expected parser to reach EOF")
	}
}

func TestParse_Associativity(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a * b * c", "((a * b) * c)"},
		{"a / b * c", "((a / b) * c)"},
		{"a - b - c", "((a - b) - c)"},
		{"a - b + c", "((a - b) + c)"},
		{"a * b + c", "((a * b) + c)"},
		{"a + b * c", "(a + (b * c))"},
		{"a + b * c - d", "((a + (b * c)) - d)"},
		{"a + b < c * d", "((a + b) < (c * d))"},
		{"a <= b", "(a <= b)"},
		{"a ~= b + 1", "(a ~= (b + 1))"},
		{"(a + b) * c", "((a + b) * c)"},
		{"2 * (a + b)", "(2 * (a + b))"},
		{"1 + 2 + 3", "((1 + 2) + 3)"},
		{"y = z = 1", "(y = (z = 1))"},
		{"v[i + 1] * 2", "(v[(i + 1)] * 2)"},
		{"v[v[0]]", "v[v[0]]"},
		{"f(a, b + 1, g())", "f(a, (b + 1), g())"},
		{"f(x) - 1", "(f(x) - 1)"},
		{"a * f(1) / b[2]", "((a * f(1)) / b[2])"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := render(expr(t, tt.src)); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParse_Statements(t *testing.T) {
	items := body(t, `
		int i;
		int v[5];
		i = 0;
		while (i < 5) {
			v[i] = i * i;
			i = i + 1;
		}
		if (v[2] == 4) output(v[2]); else output(0);
		if (i) ;
		;
		return;
	`)

	kinds := []ast.SubKind{ast.KindVarDecl, ast.KindVarDecl, ast.KindAssign, ast.KindWhile, ast.KindIf, ast.KindIf, ast.KindReturn}
	if len(items) != len(kinds) {
		t.Fatalf("Expected %d items, got %d", len(kinds), len(items))
	}
	for i, k := range kinds {
		if items[i].SubKind() != k {
			t.Errorf("item[%d]: Expected %v, got %v", i, k, items[i].SubKind())
		}
	}

	loop := items[3].(*ast.While)
	if render(loop.Cond) != "(i < 5)" {
		t.Errorf("Expected (i < 5), got %s", render(loop.Cond))
	}
	if inner, ok := loop.Body.(*ast.Compound); !ok || len(inner.Items) != 2 {
		t.Errorf("Expected compound body with 2 items, got %#v", loop.Body)
	}

	branch := items[4].(*ast.If)
	if render(branch.Cond) != "(v[2] == 4)" {
		t.Errorf("Expected (v[2] == 4), got %s", render(branch.Cond))
	}
	if render(branch.Then) != "output(v[2])" || render(branch.Else) != "output(0)" {
		t.Errorf("Unexpected branches %s / %s", render(branch.Then), render(branch.Else))
	}

	empty := items[5].(*ast.If)
	if empty.Then != nil || empty.Else != nil {
		t.Errorf("Expected empty branches, got %v / %v", empty.Then, empty.Else)
	}

	if ret := items[6].(*ast.Return); ret.Value != nil {
		t.Errorf("Expected bare return, got %v", ret.Value)
	}
}

func TestParse_Params(t *testing.T) {
	prog := parseClean(t, "int sum(int a[], int n) { return a[0] + n; } void g(void x) { }")

	sum := prog.Decls[0].(*ast.Function)
	params := sum.Params.Params
	if len(params) != 2 {
		t.Fatalf("Expected 2 params, got %d", len(params))
	}
	if params[0].Name.Name != "a" || !params[0].IsArray {
		t.Errorf("Expected array param a, got %#v", params[0])
	}
	if params[1].Name.Name != "n" || params[1].IsArray {
		t.Errorf("Expected scalar param n, got %#v", params[1])
	}

	g := prog.Decls[1].(*ast.Function)
	if len(g.Params.Params) != 1 || g.Params.Params[0].Name == nil || g.Params.Params[0].Name.Name != "x" {
		t.Errorf("Expected void x param, got %#v", g.Params.Params)
	}
	if _, ok := g.Type.(*ast.VoidType); !ok {
		t.Errorf("Expected void return type, got %T", g.Type)
	}
}

func TestParse_EmptyCallHasNilArgs(t *testing.T) {
	items := body(t, "f();")
	call, ok := items[0].(*ast.Call)
	if !ok {
		t.Fatalf("Expected *ast.Call, got %T", items[0])
	}
	if call.Args != nil {
		t.Errorf("Expected nil ArgList, got %#v", call.Args)
	}
}

func TestParse_LocalDeclTerminators(t *testing.T) {
	items := body(t, "int a, b; int c)")

	kinds := []ast.SubKind{ast.KindVarDecl, ast.KindIdentifier, ast.KindVarDecl}
	if len(items) != len(kinds) {
		t.Fatalf("Expected %d items, got %d", len(kinds), len(items))
	}
	for i, k := range kinds {
		if items[i].SubKind() != k {
			t.Errorf("item[%d]: Expected %v, got %v", i, k, items[i].SubKind())
		}
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, src := range []string{"", "   \n\t", "/* only a comment */\n"} {
		prog, errs, _ := parse(t, src)
		if len(prog.Decls) != 0 || errs != nil {
			t.Errorf("Expected empty clean program for %q, got %d decls, %v", src, len(prog.Decls), errs)
		}
	}
}

func TestParse_Recovery(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantErrors int
		wantDecls  int
	}{
		{"stray token at top level", "} int x;", 5, 1},
		{"missing semicolon", "int x int y;", 3, 1},
		{"unterminated body", "void f(void) { x = 1;", 1, 1},
		{"bad statement token", "void f(void) { else; x = 1; }", 1, 1},
		{"error token in expression", "void f(void) { x = ~ 1; }", 2, 1},
		{"missing condition paren", "void f(void) { if x) y = 1; }", 1, 1},
		{"garbage only", "@ @ @", 6, 0},
		{"unterminated comment", "int x; /* never closed", 0, 1},
		{"constant out of range", "int a[99999999999999999999999];", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, errs, _ := parse(t, tt.src)
			if len(errs) != tt.wantErrors {
				t.Errorf("Expected %d errors, got %d: %v", tt.wantErrors, len(errs), errs)
			}
			if len(prog.Decls) != tt.wantDecls {
				t.Errorf("Expected %d declarations, got %d", tt.wantDecls, len(prog.Decls))
			}
		})
	}
}

func TestParse_SinkAndErrorList(t *testing.T) {
	var out bytes.Buffer
	listing := diag.NewListing(&out, diag.DefaultFlags())

	sc := scanner.New(strings.NewReader("int ;\n"), scanner.Options{Sink: listing})
	p := New(sc, Options{Sink: listing})
	_, errs := p.Parse()
	if err := listing.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	want := "\n>>> Syntax error at line 1: unexpected token -> ;\n"
	if out.String() != want {
		t.Errorf("Expected %q, got %q", want, out.String())
	}

	err := errs.Err()
	if !mdwerror.HasCode(err, mdwerror.CodeSyntax) {
		t.Errorf("Expected SYNTAX code, got %v", mdwerror.GetCode(err))
	}
	if !strings.Contains(errs.Error(), "line 1:5") {
		t.Errorf("Expected position in message, got %q", errs.Error())
	}
	if ErrorList(nil).Err() != nil {
		t.Error("Expected nil error for empty list")
	}
}
