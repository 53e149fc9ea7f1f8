package ast_test

import (
	"strings"
	"testing"

	"rash/internal/ast"
)

func TestTypeIsAllowed(t *testing.T) {
	f64 := &ast.Type{Kind: ast.TypeUnsupported, Spelling: "f64"}
	tests := []struct {
		name string
		typ  *ast.Type
		want bool
	}{
		{"void", ast.VoidType, true},
		{"u32", ast.U32Type, true},
		{"option str", &ast.Type{Kind: ast.TypeOption, Inner: ast.StrType}, true},
		{"result ok", &ast.Type{Kind: ast.TypeResult, Inner: ast.U32Type, Err: ast.StrType}, true},
		{"unsupported leaf", f64, false},
		{"option of unsupported", &ast.Type{Kind: ast.TypeOption, Inner: f64}, false},
		{"result bad ok side", &ast.Type{Kind: ast.TypeResult, Inner: f64, Err: ast.StrType}, false},
		{"result bad err side", &ast.Type{Kind: ast.TypeResult, Inner: ast.StrType, Err: f64}, false},
		{"nested option", &ast.Type{Kind: ast.TypeOption, Inner: &ast.Type{Kind: ast.TypeOption, Inner: f64}}, false},
	}
	for _, tt := range tests {
		if got := tt.typ.IsAllowed(); got != tt.want {
			t.Errorf("%s: IsAllowed() = %v, want %v", tt.name, got, tt.want)
		}
		if d := tt.typ.Disallowed(); (d == nil) != tt.want {
			t.Errorf("%s: Disallowed() = %v", tt.name, d)
		}
	}
}

func nestNot(depth int) *ast.Expr {
	e := ast.NewBool(true)
	for range depth {
		e = ast.NewUnary(ast.UnaryNot, e)
	}
	return e
}

func TestNestingDepth(t *testing.T) {
	tests := []struct {
		name string
		expr *ast.Expr
		want int
	}{
		{"literal", ast.NewU32(1), 0},
		{"variable", ast.NewVar("x"), 0},
		{"binary", ast.NewBinary(ast.BinAdd, ast.NewU32(1), ast.NewU32(2)), 1},
		{"call without args", ast.NewCall("f"), 1},
		{"lopsided", ast.NewBinary(ast.BinAdd, nestNot(3), ast.NewU32(2)), 4},
		{"thirty", nestNot(30), 30},
	}
	for _, tt := range tests {
		if got := tt.expr.NestingDepth(); got != tt.want {
			t.Errorf("%s: depth %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestWalkVisitsPatternsAndNestedBlocks(t *testing.T) {
	match := &ast.Stmt{Kind: ast.StmtMatch, Data: &ast.MatchData{
		Scrutinee: ast.NewVar("x"),
		Arms: []ast.MatchArm{
			{Pattern: &ast.Pattern{Kind: ast.PatLiteral, Literal: &ast.LiteralData{Kind: ast.LitStr, Str: "a"}},
				Body: ast.NewBlock(ast.NewExprStmt(ast.NewMacro("println", "in arm")))},
			{Pattern: &ast.Pattern{Kind: ast.PatWildcard}, Body: ast.NewBlock()},
		},
	}}
	prog := ast.NewProgram(ast.NewFunction("main", nil, nil,
		ast.NewLet("x", ast.NewStr("a")),
		match,
	))
	var strs []string
	patterns := 0
	ast.Walk(prog, ast.Visitor{
		Expr: func(_ *ast.Function, e *ast.Expr) {
			if e.IsStringLiteral() {
				strs = append(strs, e.Literal().Str)
			}
		},
		Pattern: func(*ast.Function, *ast.Pattern) { patterns++ },
	})
	if strings.Join(strs, ",") != "a" || patterns != 2 {
		t.Fatalf("strs=%v patterns=%d", strs, patterns)
	}
}

func TestDump(t *testing.T) {
	prog := ast.NewProgram(
		ast.NewFunction("add", []ast.Param{{Name: "a", Type: ast.U32Type}, {Name: "b", Type: ast.U32Type}}, ast.U32Type,
			ast.NewExprStmt(ast.NewBinary(ast.BinAdd, ast.NewVar("a"), ast.NewVar("b")))),
		ast.NewFunction("main", nil, nil,
			ast.NewWhile(ast.NewBool(true), ast.NewBlock(ast.NewBreak()), nil),
			ast.NewIf(ast.NewBool(false), ast.NewBlock(), nil)),
	)
	want := `program entry=main
fn add(a: u32, b: u32) -> u32
  expr (a + b)
fn main() -> ()
  while true
    break
  if false
    <empty>
`
	if got := ast.DumpString(prog); got != want {
		t.Fatalf("dump mismatch:\n%s", got)
	}
}
