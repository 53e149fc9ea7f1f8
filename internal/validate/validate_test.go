package validate_test

import (
	"errors"
	"strings"
	"testing"

	"rash/internal/ast"
	"rash/internal/config"
	"rash/internal/diag"
	"rash/internal/parser"
	"rash/internal/validate"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, _, err := parser.ParseSource("test.rs", []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return prog
}

func validateErr(t *testing.T, prog *ast.Program, level config.ValidationLevel) *validate.Error {
	t.Helper()
	err := validate.Program(prog, level)
	if err == nil {
		return nil
	}
	var ve *validate.Error
	if !errors.As(err, &ve) {
		t.Fatalf("expected *validate.Error, got %T: %v", err, err)
	}
	return ve
}

func TestValidProgramPasses(t *testing.T) {
	prog := parse(t, `
fn main() {
    let name = "world";
    let n: u32 = add(1, 2);
    println!("Hello {}, n={}", name, n);
    if n > 2 { greet(name); } else { }
    for i in 0..3 { println!("{}", i); }
    #[max_iterations(10)]
    while true { break; }
    match n { 3 => { println!("three"); }, _ => {} }
    let first = arg(1);
    let home = env("HOME");
    mkdir("-p", "/tmp/demo");
    exit(0);
}
fn add(a: u32, b: u32) -> u32 { a + b }
fn greet(who: &str) { println!("hi {}", who); }
`)
	for _, level := range []config.ValidationLevel{config.ValidationNone, config.ValidationMinimal, config.ValidationStrict, config.ValidationParanoid} {
		if err := validate.Program(prog, level); err != nil {
			t.Fatalf("level %s: unexpected error: %v", level, err)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
		msg  string
	}{
		{"missing entry", `fn helper() {}`, diag.ValMissingEntryPoint, `"main"`},
		{"entry params", `fn main(x: u32) {}`, diag.ValEntryPointSignature, "parameters"},
		{"duplicate fn", "fn main() {}\nfn f() {}\nfn f() {}", diag.ValDuplicateFunction, "already defined"},
		{"duplicate param", "fn main() {}\nfn f(a: u32, a: u32) {}", diag.ValDuplicateParam, `"a"`},
		{"direct recursion", "fn main() { f(); }\nfn f() { f(); }", diag.ValRecursion, "f -> f"},
		{"mutual recursion", "fn main() { a(); }\nfn a() { b(); }\nfn b() { a(); }", diag.ValRecursion, "a -> b -> a"},
		{"undefined call", `fn main() { launch_missiles(); }`, diag.ValUndefinedFunction, "launch_missiles"},
		{"float param", "fn main() {}\nfn f(x: f64) {}", diag.ValDisallowedType, "f64"},
		{"nested vec", "fn main() {}\nfn f() -> Option<Vec<u32>> { 1 }", diag.ValDisallowedType, "Vec<u32>"},
		{"let type", `fn main() { let x: i64 = 1; }`, diag.ValDisallowedType, "i64"},
		{"function named printf", "fn main() { println!(\"hi\"); }\nfn printf() {}", diag.ValCommandName, "builtin"},
		{"function named like a command", "fn main() {}\nfn mkdir() {}", diag.ValCommandName, "allowed command"},
		{"function named exit", "fn main() {}\nfn exit() {}", diag.ValCommandName, "special builtin"},
		{"function named done", "fn main() {}\nfn done() {}", diag.ValCommandName, "reserved word"},
		{"function named after a builtin", "fn main() {}\nfn arg_count() {}", diag.ValCommandName, "rash builtin"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ve := validateErr(t, parse(t, tc.src), config.ValidationMinimal)
			if ve == nil {
				t.Fatalf("expected %s", tc.code.ID())
			}
			if ve.Code != tc.code {
				t.Fatalf("code = %s, want %s (%v)", ve.Code.ID(), tc.code.ID(), ve)
			}
			if !strings.Contains(ve.Error(), tc.msg) {
				t.Fatalf("error %q does not mention %q", ve.Error(), tc.msg)
			}
		})
	}
}

func TestIdentifier(t *testing.T) {
	good := []string{"x", "_tmp", "name2", "HOME_DIR", "a_b_c"}
	for _, name := range good {
		if err := validate.Identifier(name); err != nil {
			t.Errorf("Identifier(%q) = %v", name, err)
		}
	}
	bad := []string{"", "a$b", "a`b", "a\\b", "a\x00b", "2x", "héllo", "a-b", "a b"}
	for _, name := range bad {
		if err := validate.Identifier(name); err == nil {
			t.Errorf("Identifier(%q) accepted", name)
		}
	}
}

func TestBindingSitesShareIdentifierCheck(t *testing.T) {
	sites := map[string]*ast.Program{
		"function": ast.NewProgram(ast.NewFunction("main", nil, nil), ast.NewFunction("bad$", nil, nil)),
		"param": ast.NewProgram(ast.NewFunction("main", nil, nil),
			ast.NewFunction("f", []ast.Param{{Name: "p`", Type: ast.U32Type}}, nil)),
		"let": ast.NewProgram(ast.NewFunction("main", nil, nil,
			ast.NewLet("x\\y", ast.NewU32(1)))),
		"for": ast.NewProgram(ast.NewFunction("main", nil, nil,
			ast.NewFor("i$", ast.NewRange(ast.NewU32(0), ast.NewU32(2), false), ast.NewBlock()))),
	}
	for site, prog := range sites {
		ve := validateErr(t, prog, config.ValidationMinimal)
		if ve == nil || ve.Code != diag.ValBadIdentifier {
			t.Errorf("%s: expected %s, got %v", site, diag.ValBadIdentifier.ID(), ve)
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

func TestNestingDepthBoundary(t *testing.T) {
	ok := ast.NewProgram(ast.NewFunction("main", nil, nil, ast.NewLet("x", nestNot(30))))
	if err := validate.Program(ok, config.ValidationMinimal); err != nil {
		t.Fatalf("depth 30 rejected: %v", err)
	}

	deep := ast.NewProgram(ast.NewFunction("main", nil, nil, ast.NewLet("x", nestNot(31))))
	ve := validateErr(t, deep, config.ValidationMinimal)
	if ve == nil || ve.Code != diag.ValNestingTooDeep {
		t.Fatalf("depth 31: got %v", ve)
	}
	if !strings.Contains(ve.Msg, "30") {
		t.Fatalf("message %q does not cite the limit", ve.Msg)
	}
}

func TestNestingCheckedBeforeLiterals(t *testing.T) {
	e := ast.NewStr("a\x00b")
	for range 31 {
		e = ast.NewCall("echo", e)
	}
	prog := ast.NewProgram(ast.NewFunction("main", nil, nil, ast.NewExprStmt(e)))
	ve := validateErr(t, prog, config.ValidationMinimal)
	if ve == nil || ve.Code != diag.ValNestingTooDeep {
		t.Fatalf("got %v", ve)
	}
}

func TestNulInLiteral(t *testing.T) {
	progs := []*ast.Program{
		ast.NewProgram(ast.NewFunction("main", nil, nil, ast.NewLet("x", ast.NewStr("a\x00b")))),
		ast.NewProgram(ast.NewFunction("main", nil, nil,
			ast.NewExprStmt(ast.NewMacro("println", "bad\x00{}", ast.NewU32(1))))),
	}
	for i, prog := range progs {
		ve := validateErr(t, prog, config.ValidationMinimal)
		if ve == nil || ve.Code != diag.ValNulInLiteral {
			t.Errorf("program %d: got %v", i, ve)
		}
	}
}

func TestStrictLevel(t *testing.T) {
	shadow := parse(t, `fn main() { let IFS = "x"; }`)
	if err := validate.Program(shadow, config.ValidationMinimal); err != nil {
		t.Fatalf("minimal rejected shadowing: %v", err)
	}
	ve := validateErr(t, shadow, config.ValidationStrict)
	if ve == nil || ve.Code != diag.ValShellReservedName {
		t.Fatalf("strict: got %v", ve)
	}

	noValue := parse(t, "fn main() { f(); }\nfn f() -> u32 { println!(\"x\"); }")
	if err := validate.Program(noValue, config.ValidationMinimal); err != nil {
		t.Fatalf("minimal rejected missing value: %v", err)
	}
	ve = validateErr(t, noValue, config.ValidationStrict)
	if ve == nil || ve.Code != diag.ValMissingReturnValue {
		t.Fatalf("strict: got %v", ve)
	}

	branches := parse(t, `
fn main() { pick(1); }
fn pick(n: u32) -> &str {
    if n > 0 { "pos" } else { return "zero"; }
}
`)
	if err := validate.Program(branches, config.ValidationStrict); err != nil {
		t.Fatalf("strict rejected valued branches: %v", err)
	}
}

func TestParanoidLoopBounds(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{`fn main() { while true { break; } }`, false},
		{`fn main() { #[max_iterations(5)] while true { break; } }`, true},
		{`fn main() { for i in 0..10 { } }`, true},
		{`fn main() { let n = 3; for i in 0..n { } }`, false},
		{`fn main() { let n = 3; #[max_iterations(3)] for i in 0..n { } }`, true},
	}
	for _, tc := range cases {
		prog := parse(t, tc.src)
		if err := validate.Program(prog, config.ValidationStrict); err != nil {
			t.Fatalf("strict rejected %s: %v", tc.src, err)
		}
		ve := validateErr(t, prog, config.ValidationParanoid)
		if tc.want && ve != nil {
			t.Errorf("%s: unexpected %v", tc.src, ve)
		}
		if !tc.want && (ve == nil || ve.Code != diag.ValUnboundedLoop) {
			t.Errorf("%s: expected unbounded loop error, got %v", tc.src, ve)
		}
	}
}

func TestErrorDiagnostic(t *testing.T) {
	ve := validateErr(t, parse(t, `fn main() { nope(); }`), config.ValidationMinimal)
	var d diag.Diagnosable = ve
	got := d.Diagnostic()
	if got.Code != diag.ValUndefinedFunction || got.Severity != diag.SevError {
		t.Fatalf("diagnostic = %+v", got)
	}
	if !strings.HasPrefix(ve.Error(), "VAL3007: ") {
		t.Fatalf("error text %q", ve.Error())
	}
}
