package ir_test

import (
	"errors"
	"strings"
	"testing"

	"rash/internal/ast"
	"rash/internal/diag"
	"rash/internal/ir"
	"rash/internal/parser"
)

func lower(t *testing.T, src string, opts ir.Options) *ir.Module {
	t.Helper()
	prog, _, err := parser.ParseSource("test.rs", []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	mod, err := ir.Lower(prog, opts)
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	return mod
}

func lowerErr(t *testing.T, src string) *ir.LoweringError {
	t.Helper()
	prog, _, err := parser.ParseSource("test.rs", []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = ir.Lower(prog, ir.Options{})
	var le *ir.LoweringError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoweringError, got %v", err)
	}
	return le
}

func bodyNodes(fn *ir.FunctionNode) []*ir.Node {
	if fn.Body.Kind == ir.NodeSequence {
		return fn.Body.Sequence().Nodes
	}
	return []*ir.Node{fn.Body}
}

func lastNode(t *testing.T, mod *ir.Module, fn string) *ir.Node {
	t.Helper()
	f := mod.Lookup(fn)
	if f == nil {
		t.Fatalf("function %s not lowered", fn)
	}
	nodes := bodyNodes(f)
	return nodes[len(nodes)-1]
}

const operandPrelude = `fn main() {
    let a: u32 = arg_count();
    let b: u32 = arg_count();
    let s = arg(1);
    let t = arg(2);
    let p = a > 0;
    let q = b > 0;
    let r = %s;
}`

// resultOf returns the value bound to r: the Let value, or the condition of
// the If that a boolean binding lowers to.
func resultOf(t *testing.T, expr string) *ir.Value {
	t.Helper()
	mod := lower(t, strings.Replace(operandPrelude, "%s", expr, 1), ir.Options{})
	n := lastNode(t, mod, "main")
	switch n.Kind {
	case ir.NodeLet:
		return n.Let().Value
	case ir.NodeIf:
		return n.If().Cond
	}
	t.Fatalf("unexpected node %s", n.Kind)
	return nil
}

func TestBinaryOperatorArms(t *testing.T) {
	cases := []struct {
		op   ast.BinaryOp
		expr string
		want string
	}{
		{ast.BinAdd, "a + b", "(+ $a $b)"},
		{ast.BinAdd, "s + t", "concat($s, $t)"},
		{ast.BinSub, "a - b", "(- $a $b)"},
		{ast.BinMul, "a * b", "(* $a $b)"},
		{ast.BinDiv, "a / b", "(/ $a $b)"},
		{ast.BinMod, "a % b", "(% $a $b)"},
		{ast.BinEq, "a == b", "(== num $a $b)"},
		{ast.BinEq, "s == t", "(== str $s $t)"},
		{ast.BinNe, "s != t", "(!= str $s $t)"},
		{ast.BinLt, "a < b", "(< num $a $b)"},
		{ast.BinLe, "a <= b", "(<= num $a $b)"},
		{ast.BinGt, "a > b", "(> num $a $b)"},
		{ast.BinGe, "a >= b", "(>= num $a $b)"},
		{ast.BinAnd, "p && q", "(&& $p $q)"},
		{ast.BinOr, "p || q", "(|| $p $q)"},
	}
	covered := map[ast.BinaryOp]bool{}
	for _, tc := range cases {
		got := ir.ValueString(resultOf(t, tc.expr))
		if got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.expr, got, tc.want)
		}
		covered[tc.op] = true
	}
	for _, op := range ast.BinaryOps {
		if !covered[op] {
			t.Errorf("operator %s has no lowering case", op)
		}
	}
}

func TestArithmeticAndConcatKinds(t *testing.T) {
	if v := resultOf(t, "a + b"); v.Kind != ir.ValArithmetic || v.Arithmetic().Op != ir.ArithAdd {
		t.Fatalf("numeric + lowered to %s", v.Kind)
	}
	if v := resultOf(t, "s + t"); v.Kind != ir.ValConcat {
		t.Fatalf("string + lowered to %s", v.Kind)
	}
	if v := resultOf(t, "!p"); v.Kind != ir.ValLogical || v.Logical().Op != ir.LogicNot {
		t.Fatalf("! lowered to %s", ir.ValueString(v))
	}
}

func TestLoweringErrors(t *testing.T) {
	cases := []struct {
		name string
		expr string
		code diag.Code
	}{
		{"string minus", "s - t", diag.LowUnsupportedOperator},
		{"string ordering", "s < t", diag.LowUnsupportedOperator},
		{"mixed add", "a + s", diag.LowTypeMismatch},
		{"mixed compare", "a == s", diag.LowTypeMismatch},
		{"logical on numbers", "a && p", diag.LowTypeMismatch},
		{"negation", "-a", diag.LowUnsupportedOperator},
		{"arg zero", "arg(0)", diag.LowBadArgPosition},
		{"arg non literal", "arg(a)", diag.LowBadBuiltinCall},
		{"env non literal", "env(s)", diag.LowBadBuiltinCall},
		{"undefined", "missing", diag.LowUndefinedVariable},
		{"array value", "[1, 2]", diag.LowUnsupportedExpr},
		{"range value", "0..3", diag.LowUnsupportedExpr},
		{"unknown method", "s.len()", diag.LowUnsupportedMethod},
		{"bad placeholder", `format!("{x}", a)`, diag.LowBadFormatString},
		{"placeholder count", `format!("{} {}", a)`, diag.LowBadFormatString},
		{"exit value", "exit(1)", diag.LowBadBuiltinCall},
		{"println value", `println!("x")`, diag.LowUnsupportedExpr},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			le := lowerErr(t, strings.Replace(operandPrelude, "%s", tc.expr, 1))
			if le.Code != tc.code {
				t.Fatalf("code = %s, want %s (%v)", le.Code.ID(), tc.code.ID(), le)
			}
		})
	}
}

func TestStatementErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"break outside loop", `fn main() { break; }`, diag.LowBreakOutsideLoop},
		{"tuple pattern", `fn main() { let a = 1; match a { (x, y) => {} } }`, diag.LowUnsupportedPattern},
		{"for over variable", `fn main() { let a = 1; for i in a { } }`, diag.LowUnsupportedExpr},
		{"bool condition", `fn main() { let a = 1; if a { } }`, diag.LowTypeMismatch},
		{"arity", "fn main() { f(1); }\nfn f(a: u32, b: u32) {}", diag.LowTypeMismatch},
		{"argument type", "fn main() { f(\"x\"); }\nfn f(a: u32) {}", diag.LowTypeMismatch},
		{"unused value", `fn main() { 1 + 2; }`, diag.LowUnsupportedStmt},
		{"bare return", "fn main() { f(); }\nfn f() -> u32 { return; }", diag.LowTypeMismatch},
		{"arg zero statement position", `fn main() { echo(arg(0)); }`, diag.LowBadArgPosition},
		{"string into u32 let", `fn main() { let n: u32 = arg(1); }`, diag.LowTypeMismatch},
		{"env into u32 let", `fn main() { let n: u32 = env("PORT"); }`, diag.LowTypeMismatch},
		{"reassign changes type", `fn main() { let mut n = 1; n = arg(1); }`, diag.LowTypeMismatch},
		{"assign undeclared", `fn main() { n = 1; }`, diag.LowUndefinedVariable},
		{"tail type", "fn main() { f(); }\nfn f() -> u32 { arg(1) }", diag.LowTypeMismatch},
		{"return type", "fn main() { f(); }\nfn f() -> u32 { return env(\"N\"); }", diag.LowTypeMismatch},
		{"option into u32 param", "fn main() { f(g()); }\nfn f(a: u32) {}\nfn g() -> Option<u32> { 1 }", diag.LowTypeMismatch},
		{"command output in arithmetic", "fn main() { let x = f() + 1; }\nfn f() -> u32 { 1 }", diag.LowUnsupportedExpr},
		{"command output as loop item", "fn main() { for i in [f(), 2] { } }\nfn f() -> u32 { 1 }", diag.LowUnsupportedExpr},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			le := lowerErr(t, tc.src)
			if le.Code != tc.code {
				t.Fatalf("code = %s, want %s (%v)", le.Code.ID(), tc.code.ID(), le)
			}
		})
	}
}

func TestReturnValueConvention(t *testing.T) {
	mod := lower(t, `
fn main() { let x = add(1, 2); }
fn add(a: u32, b: u32) -> u32 { a + b }
`, ir.Options{})

	tail := lastNode(t, mod, "add")
	if tail.Kind != ir.NodeEcho || tail.Echo().Value.Kind != ir.ValArithmetic {
		t.Fatalf("add does not end in an echo of arithmetic: %s", ir.DumpString(mod))
	}
	let := lastNode(t, mod, "main")
	if let.Kind != ir.NodeLet {
		t.Fatalf("main ends in %s", let.Kind)
	}
	if got := ir.ValueString(let.Let().Value); got != `$(exec add "1" "2" [pure])` {
		t.Fatalf("call site lowered to %s", got)
	}
}

func TestExplicitReturn(t *testing.T) {
	mod := lower(t, `
fn main() { pick(3); }
fn pick(n: u32) -> u32 {
    if n > 1 { return 1; }
    2
}
`, ir.Options{})
	nodes := bodyNodes(mod.Lookup("pick"))
	if len(nodes) != 2 || nodes[0].Kind != ir.NodeIf || nodes[1].Kind != ir.NodeEcho {
		t.Fatalf("unexpected body:\n%s", ir.DumpString(mod))
	}
	then := nodes[0].If().Then.Sequence().Nodes
	if len(then) != 2 || then[0].Kind != ir.NodeEcho || then[1].Kind != ir.NodeReturn {
		t.Fatalf("return did not lower to echo + return:\n%s", ir.DumpString(mod))
	}
}

func TestControlFlowShapes(t *testing.T) {
	mod := lower(t, `
fn main() {
    let n = arg_count();
    if n > 2 { } else { println!("small"); }
    while true { break; }
    for i in 0..3 { println!("{}", i); }
    for w in ["a", "b"] { println!("{}", w); }
    match n { 0 => { println!("none"); }, other => { println!("{}", other); } }
}
`, ir.Options{})
	nodes := bodyNodes(mod.Lookup("main"))
	if len(nodes) != 6 {
		t.Fatalf("got %d nodes:\n%s", len(nodes), ir.DumpString(mod))
	}
	if then := nodes[1].If().Then; then.Kind != ir.NodeNoop {
		t.Fatalf("empty then lowered to %s", then.Kind)
	}
	w := nodes[2].While()
	if w.Cond.Kind != ir.ValBool || !w.Cond.Bool().Value || w.Body.Kind != ir.NodeBreak {
		t.Fatalf("while true lowered to %s", ir.DumpString(mod))
	}
	r := nodes[3].For()
	if !r.IsRange() || r.Var != "i" || r.Counter != "_rash_main_0" || r.Inclusive {
		t.Fatalf("range loop = %+v", r)
	}
	arr := nodes[4].For()
	if arr.IsRange() || len(arr.Items) != 2 || arr.Counter != "_rash_main_1" {
		t.Fatalf("array loop = %+v", arr)
	}
	c := nodes[5].Case()
	if len(c.Arms) != 2 || c.Arms[0].Pattern.Literal != "0" || !c.Arms[1].Pattern.Wildcard {
		t.Fatalf("case = %+v", c)
	}
	bind := c.Arms[1].Body.Sequence().Nodes[0]
	if bind.Kind != ir.NodeLet || bind.Let().Name != "other" {
		t.Fatalf("binding arm does not start with a let: %s", ir.DumpString(mod))
	}
}

func TestMacrosAndBuiltins(t *testing.T) {
	mod := lower(t, `
fn main() {
    print!("a");
    eprintln!("oops {}", arg(1));
    let home = env("HOME");
    let all = args();
    exit(3);
}
`, ir.Options{})
	nodes := bodyNodes(mod.Lookup("main"))
	if e := nodes[0].Echo(); e.Newline || e.Stream != ir.Stdout {
		t.Fatalf("print! = %+v", e)
	}
	if e := nodes[1].Echo(); !e.Newline || e.Stream != ir.Stderr || ir.ValueString(e.Value) != `concat("oops ", arg(1))` {
		t.Fatalf("eprintln! = %s", ir.ValueString(e.Value))
	}
	if l := nodes[2].Let(); ir.ValueString(l.Value) != "env(HOME)" || !l.Effects.Has(ir.EffectReadsEnv) {
		t.Fatalf("env = %+v", l)
	}
	if got := ir.ValueString(nodes[3].Let().Value); got != "args()" {
		t.Fatalf("args = %s", got)
	}
	if nodes[4].Kind != ir.NodeExit || ir.ValueString(nodes[4].Exit().Code) != `"3"` {
		t.Fatalf("exit = %s", ir.DumpString(mod))
	}
}

func TestConstantFolding(t *testing.T) {
	src := `
fn main() {
    let x = 1 + 2 * 3;
    let s = "a" + "b";
    let f = format!("{}-{}", 7, "z");
    let big = 4294967295 + 1;
    if false { println!("never"); }
    let c = 2 > 1;
}
`
	mod := lower(t, src, ir.Options{Optimize: true})
	nodes := bodyNodes(mod.Lookup("main"))
	want := []string{`"7"`, `"ab"`, `"7-z"`, `(+ "4294967295" "1")`, "true"}
	if len(nodes) != len(want) {
		t.Fatalf("got %d nodes:\n%s", len(nodes), ir.DumpString(mod))
	}
	for i, w := range want {
		if got := ir.ValueString(nodes[i].Let().Value); got != w {
			t.Errorf("node %d = %s, want %s", i, got, w)
		}
	}

	plain := lower(t, src, ir.Options{})
	if n := len(bodyNodes(plain.Lookup("main"))); n != 6 {
		t.Fatalf("without optimize got %d nodes", n)
	}
}

func TestLogicalFoldingKeepsCommands(t *testing.T) {
	mod := lower(t, `
fn main() {
    let a = check() || true;
    let b = check() && false;
    let c = check() && true;
    let d = check() || false;
    let e = true || check();
}
fn check() -> bool { false }
`, ir.Options{Optimize: true})
	nodes := bodyNodes(mod.Lookup("main"))
	if len(nodes) != 5 {
		t.Fatalf("got %d nodes:\n%s", len(nodes), ir.DumpString(mod))
	}
	const call = "$(exec check [pure])"
	for i, want := range []string{"(|| " + call + " true)", "(&& " + call + " false)"} {
		if nodes[i].Kind != ir.NodeIf {
			t.Fatalf("node %d = %s, want if", i, nodes[i].Kind)
		}
		if got := ir.ValueString(nodes[i].If().Cond); got != want {
			t.Errorf("node %d condition = %s, want %s", i, got, want)
		}
	}
	for i := 2; i < 4; i++ {
		if got := ir.ValueString(nodes[i].Let().Value); got != call {
			t.Errorf("node %d = %s, want %s", i, got, call)
		}
	}
	if got := ir.ValueString(nodes[4].Let().Value); got != "true" {
		t.Errorf("constant left operand = %s", got)
	}
}

func TestShellNamesDoNotCollide(t *testing.T) {
	mod := lower(t, `
fn main() {
    let x = "outer";
    if arg_count() > 0 { let x = "inner"; println!("{}", x); }
    let n = 1;
    show(2);
    for x in ["a"] { println!("{}", x); }
    println!("{} {}", x, n);
}
fn show(n: u32) { let x = n; println!("{}", x); }
`, ir.Options{})
	nodes := bodyNodes(mod.Lookup("main"))
	if got := nodes[0].Let().Name; got != "x" {
		t.Fatalf("entry point binding renamed to %s", got)
	}
	inner := nodes[1].If().Then.Sequence().Nodes
	if got := inner[0].Let().Name; got != "x_1" {
		t.Fatalf("shadowing binding = %s", got)
	}
	if got := ir.ValueString(inner[1].Echo().Value); got != "$x_1" {
		t.Fatalf("shadowed read = %s", got)
	}
	if got := nodes[4].For().Var; got != "x_2" {
		t.Fatalf("loop variable = %s", got)
	}
	if got := ir.ValueString(nodes[5].Echo().Value); got != `concat($x, " ", $n)` {
		t.Fatalf("outer read after shadowing = %s", got)
	}

	show := mod.Lookup("show")
	if len(show.Params) != 1 || show.Params[0] != "n_1" {
		t.Fatalf("callee params = %v", show.Params)
	}
	if let := bodyNodes(show)[0].Let(); let.Name != "x_3" || ir.ValueString(let.Value) != "$n_1" {
		t.Fatalf("callee local = %s = %s", let.Name, ir.ValueString(let.Value))
	}
}

func TestNumericCommandOutputIsMarked(t *testing.T) {
	mod := lower(t, `
fn main() { let v = add(1, 2); let w = name(); }
fn add(a: u32, b: u32) -> u32 { a + b }
fn name() -> &str { "x" }
`, ir.Options{})
	nodes := bodyNodes(mod.Lookup("main"))
	if !nodes[0].Let().Numeric {
		t.Fatal("u32 command output is not checked")
	}
	if nodes[1].Let().Numeric {
		t.Fatal("string command output is checked as a number")
	}
	if got := mod.Lookup("add").Numeric; len(got) != 2 || !got[0] || !got[1] {
		t.Fatalf("add numeric params = %v", got)
	}
}

func TestEffects(t *testing.T) {
	mod := lower(t, `
fn main() { fetch(); mkdir("-p", "/tmp/x"); }
fn fetch() { curl("-fsSL", "https://example.com"); }
fn quiet() { echo("x"); }
`, ir.Options{})
	if !mod.Lookup("fetch").Effects.Has(ir.EffectNetwork) {
		t.Fatalf("fetch effects = %s", mod.Lookup("fetch").Effects)
	}
	main := mod.Lookup("main").Effects
	if !main.Has(ir.EffectNetwork) || !main.Has(ir.EffectFilesystem) {
		t.Fatalf("main effects = %s", main)
	}
	if !mod.Lookup("quiet").Effects.IsPure() {
		t.Fatalf("quiet effects = %s", mod.Lookup("quiet").Effects)
	}
	if !mod.Effects.Has(ir.EffectNetwork | ir.EffectFilesystem) {
		t.Fatalf("module effects = %s", mod.Effects)
	}
}

func TestLoweringIsDeterministic(t *testing.T) {
	src := `
fn main() {
    let n = arg_count();
    for i in 0..n { greet(arg(1)); }
    match n { 1 => { println!("one"); }, _ => {} }
}
fn greet(who: &str) { println!("hi {}", who); }
`
	first := ir.DumpString(lower(t, src, ir.Options{Optimize: true}))
	for range 10 {
		if got := ir.DumpString(lower(t, src, ir.Options{Optimize: true})); got != first {
			t.Fatalf("dump differs:\n%s\nvs\n%s", got, first)
		}
	}
}
