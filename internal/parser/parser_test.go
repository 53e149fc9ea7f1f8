package parser_test

import (
	"errors"
	"strings"
	"testing"

	"rash/internal/ast"
	"rash/internal/diag"
	"rash/internal/parser"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, _, err := parser.ParseSource("test.rs", []byte(src))
	if err != nil {
		t.Fatalf("parse failed: %v\nsource:\n%s", err, src)
	}
	return prog
}

func parseErr(t *testing.T, src string) *parser.Error {
	t.Helper()
	_, _, err := parser.ParseSource("test.rs", []byte(src))
	if err == nil {
		t.Fatalf("expected parse error for:\n%s", src)
	}
	var pe *parser.Error
	if !errors.As(err, &pe) {
		t.Fatalf("expected *parser.Error, got %T", err)
	}
	return pe
}

func TestParseFunctionsAndTypes(t *testing.T) {
	prog := mustParse(t, `
fn main() {}
pub fn add(a: u32, b: u32) -> u32 { a + b }
fn greet(who: &str) -> String { who }
fn maybe(x: Option<u32>) -> Result<u32, String> { x }
fn bad(x: f64) {}
fn nested(x: Option<Vec<u32>>) {}
`)
	if prog.EntryPoint != "main" || len(prog.Functions) != 6 {
		t.Fatalf("entry=%q fns=%d", prog.EntryPoint, len(prog.Functions))
	}
	add := prog.Lookup("add")
	if len(add.Params) != 2 || add.ReturnType.Kind != ast.TypeU32 {
		t.Fatalf("unexpected add signature: %+v", add)
	}
	if got := prog.Lookup("greet").Params[0].Type.Kind; got != ast.TypeStr {
		t.Fatalf("&str parsed as %v", got)
	}
	if got := prog.Lookup("maybe").ReturnType.String(); got != "Result<u32, &str>" {
		t.Fatalf("result type %q", got)
	}
	bad := prog.Lookup("bad").Params[0].Type
	if bad.Kind != ast.TypeUnsupported || bad.Spelling != "f64" {
		t.Fatalf("f64 parsed as %+v", bad)
	}
	nested := prog.Lookup("nested").Params[0].Type
	if nested.IsAllowed() || nested.Disallowed().Spelling != "Vec<u32>" {
		t.Fatalf("Option<Vec<u32>> should carry a disallowed leaf, got %s", nested)
	}
}

func TestParseStatements(t *testing.T) {
	prog := mustParse(t, `
fn main() {
    let x: u32 = 1;
    let mut s = "a";
    s = "b";
    s += "c";
    if x > 0 { } else if x == 0 { } else { }
    for i in 0..3 { continue; }
    #[max_iterations(10)]
    while true { break; }
    loop { break }
    match x { 1 => println!("one"), 2 => { }, _ => {} }
    return;
}`)
	body := prog.Entry().Body.Stmts
	kinds := make([]string, 0, len(body))
	for _, s := range body {
		kinds = append(kinds, s.Kind.String())
	}
	want := "Let,Let,Let,Let,If,For,While,While,Match,Return"
	if strings.Join(kinds, ",") != want {
		t.Fatalf("got %s\nwant %s", strings.Join(kinds, ","), want)
	}
	if !body[2].Let().Reassign || body[1].Let().Mutable != true {
		t.Fatal("reassignment/mutability flags not set")
	}
	compound := body[3].Let().Value
	if compound.Kind != ast.ExprBinary || compound.Binary().Op != ast.BinAdd {
		t.Fatalf("+= should desugar to Binary(+), got %s", ast.ExprString(compound))
	}
	elseIf := body[4].If().Else
	if len(elseIf.Stmts) != 1 || elseIf.Stmts[0].Kind != ast.StmtIf {
		t.Fatal("else if should nest an If in the else block")
	}
	w := body[6].While()
	if w.MaxIterations == nil || *w.MaxIterations != 10 {
		t.Fatal("max_iterations not attached to while")
	}
	if !body[7].While().Cond.IsBoolLiteral(true) {
		t.Fatal("loop should desugar to while true")
	}
	if n := len(body[8].Match().Arms); n != 3 {
		t.Fatalf("match arms = %d", n)
	}
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"a - b - c", "((a - b) - c)"},
		{"a < b && c || !d", "(((a < b) && c) || !d)"},
		{"-x % 2 == 0", "((-x % 2) == 0)"},
		{"0..=n", "0..=n"},
		{`f(1, "x")`, `f(1, "x")`},
		{`std::process::exit(1)`, `std::process::exit(1)`},
		{`s.to_string()`, `s.to_string()`},
		{`&name`, `name`},
		{`xs[0]`, `xs[0]`},
		{`[1, 2, 3]`, `[1, 2, 3]`},
		{`r?`, `r?`},
		{`println!("{} {}", a, b)`, `println!("{} {}", a, b)`},
	}
	for _, tt := range tests {
		prog := mustParse(t, "fn main() { let v = "+tt.src+"; }")
		got := ast.ExprString(prog.Entry().Body.Stmts[0].Let().Value)
		if got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.src, got, tt.want)
		}
	}
}

func TestParseNormalizesStringLiterals(t *testing.T) {
	// "e" + combining acute accent becomes the precomposed form
	prog := mustParse(t, "fn main() { let s = \"e\u0301\"; }")
	if got := prog.Entry().Body.Stmts[0].Let().Value.Literal().Str; got != "\u00e9" {
		t.Fatalf("literal not NFC-normalised: %q", got)
	}
}

func TestEntryPointAttribute(t *testing.T) {
	prog := mustParse(t, "#[rash::main]\nfn start() {}\nfn helper() {}")
	if prog.EntryPoint != "start" {
		t.Fatalf("entry = %q", prog.EntryPoint)
	}
	pe := parseErr(t, "#[rash::main]\nfn a() {}\n#[rash::main]\nfn b() {}")
	if pe.Code != diag.SynBadAttribute {
		t.Fatalf("got %s", pe.Code.ID())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"struct item", "struct S {}", diag.SynFeatureNotAllowed},
		{"top level let", "let x = 1;", diag.SynUnexpectedTopLevel},
		{"unknown macro", `fn main() { vec!(1); }`, diag.SynMacroNotAllowed},
		{"closure", `fn main() { let f = |x| x; }`, diag.SynFeatureNotAllowed},
		{"unsafe block", `fn main() { unsafe { } }`, diag.SynFeatureNotAllowed},
		{"missing semicolon", `fn main() { let x = 1 }`, diag.SynExpectSemicolon},
		{"unclosed block", `fn main() {`, diag.SynUnclosedDelimiter},
		{"generic fn", `fn id<T>(x: T) -> T { x }`, diag.SynFeatureNotAllowed},
		{"bad loop attribute", "fn main() { #[inline] while true {} }", diag.SynBadAttribute},
		{"bad bound", "fn main() { #[max_iterations(x)] while true {} }", diag.SynBadAttribute},
		{"u32 overflow", `fn main() { let x = 4294967296; }`, diag.LexBadNumber},
		{"lexer error wins", `fn main() { let x = "open; }`, diag.LexUnterminatedString},
		{"if expression", `fn main() { let x = if a { 1 } else { 2 }; }`, diag.SynFeatureNotAllowed},
		{"assign to call", `fn main() { f() = 1; }`, diag.SynUnexpectedToken},
		{"bad pattern", `fn main() { match x { => {} } }`, diag.SynBadPattern},
		{"match guard", `fn main() { match x { y if y > 1 => {} } }`, diag.SynFeatureNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe := parseErr(t, tt.src)
			if pe.Code != tt.code {
				t.Fatalf("got %s (%s), want %s", pe.Code.ID(), pe.Msg, tt.code.ID())
			}
			if d := pe.Diagnostic(); d.Severity != diag.SevError || d.Code != tt.code {
				t.Fatalf("diagnostic mismatch: %+v", d)
			}
		})
	}
}

func TestParserDepthGuard(t *testing.T) {
	src := "fn main() { let x = " + strings.Repeat("(", 400) + "1" + strings.Repeat(")", 400) + "; }"
	pe := parseErr(t, src)
	if pe.Code != diag.SynNestingTooDeep {
		t.Fatalf("got %s", pe.Code.ID())
	}
}

func TestParseForwardsDiagnostics(t *testing.T) {
	bag := diag.NewBag(0)
	_, err := parseWithReporter("fn main() { let = 1; }", bag)
	if err == nil || bag.Len() != 1 || bag.Items()[0].Code != diag.SynExpectIdentifier {
		t.Fatalf("err=%v diags=%+v", err, bag.Items())
	}
}
