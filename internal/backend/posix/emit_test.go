package posix_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"rash/internal/backend/posix"
	"rash/internal/config"
	"rash/internal/diag"
	"rash/internal/ir"
	"rash/internal/parser"
)

func emit(t *testing.T, src string, optimize bool) string {
	t.Helper()
	prog, _, err := parser.ParseSource("test.rs", []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	mod, err := ir.Lower(prog, ir.Options{Optimize: optimize})
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	out, err := posix.Emit(mod, posix.Options{Dialect: config.DialectPosix, StrictMode: true})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	return out
}

type runResult struct {
	stdout string
	stderr string
	status uint8
}

func run(t *testing.T, script string, args ...string) runResult {
	t.Helper()
	file, err := syntax.NewParser().Parse(strings.NewReader(script), "script.sh")
	if err != nil {
		t.Fatalf("emitted script does not parse: %v\n%s", err, script)
	}
	var stdout, stderr bytes.Buffer
	r, err := interp.New(
		interp.StdIO(nil, &stdout, &stderr),
		interp.Params(append([]string{"--"}, args...)...),
	)
	if err != nil {
		t.Fatalf("interp: %v", err)
	}
	res := runResult{}
	if err := r.Run(context.Background(), file); err != nil {
		code, ok := interp.IsExitStatus(err)
		if !ok {
			t.Fatalf("run: %v\n%s", err, script)
		}
		res.status = code
	}
	res.stdout = stdout.String()
	res.stderr = stderr.String()
	return res
}

func TestPreamble(t *testing.T) {
	mod := &ir.Module{
		Functions: []*ir.Node{ir.NewFunction("main", nil, ir.NewNoop())},
		Entry:     "main",
	}
	strict, err := posix.Emit(mod, posix.Options{Dialect: config.DialectPosix, StrictMode: true})
	if err != nil {
		t.Fatal(err)
	}
	want := "#!/bin/sh\n# Generated by rash. Do not edit.\nset -euf\nIFS=' \t\n'\nexport LC_ALL=C\n\nmain() {\n    :\n}\n\nmain \"$@\"\n"
	if strict != want {
		t.Fatalf("strict output:\n%q\nwant\n%q", strict, want)
	}

	loose, err := posix.Emit(mod, posix.Options{Dialect: config.DialectBash})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(loose, "#!/bin/bash\n") || !strings.Contains(loose, "\nset -f\n") {
		t.Fatalf("loose output:\n%s", loose)
	}
	if strings.TrimPrefix(loose, "#!/bin/bash") != strings.TrimPrefix(strings.Replace(strict, "set -euf", "set -f", 1), "#!/bin/sh") {
		t.Fatalf("dialect changed more than the shebang")
	}
}

func TestShebangs(t *testing.T) {
	cases := map[config.Dialect]string{
		config.DialectPosix: "#!/bin/sh",
		config.DialectBash:  "#!/bin/bash",
		config.DialectDash:  "#!/bin/dash",
		config.DialectAsh:   "#!/bin/ash",
	}
	for d, want := range cases {
		if got := posix.Shebang(d); got != want {
			t.Errorf("Shebang(%s) = %q, want %q", d, got, want)
		}
	}
}

func TestEmittedShapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "call site capture",
			src: `fn main() { let x = add(1, 2); println!("{}", x); }
fn add(a: u32, b: u32) -> u32 { a + b }`,
			want: []string{`x="$(add 1 2)"`, `a="$1"`, `b="$2"`, `printf '%s\n' "$((a + b))"`, `printf '%s\n' "$x"`},
		},
		{
			name: "infinite loop",
			src:  `fn main() { loop { break; } }`,
			want: []string{"while true; do", "break", "done"},
		},
		{
			name: "empty branch",
			src:  `fn main() { let n = arg_count(); if n > 1 { } else { println!("x"); } }`,
			want: []string{`if [ "$n" -gt 1 ]; then` + "\n        :\n    else"},
		},
		{
			name: "positionals",
			src:  `fn main() { let a = arg(1); let j = arg(10); let n = arg_count(); let all = args(); }`,
			want: []string{`a="${1:-}"`, `j="${10:-}"`, `n="$#"`, `all="$*"`},
		},
		{
			name: "environment default",
			src:  `fn main() { let h = env("HOME"); println!("at {}", env("PWD")); }`,
			want: []string{`h="${HOME:-}"`, `printf '%s\n' "at ${PWD:-}"`},
		},
		{
			name: "number guard",
			src: `fn main() { let x = add(1, 2); }
fn add(a: u32, b: u32) -> u32 { a + b }`,
			want: []string{
				`x="$(add 1 2)"` + "\n    case \"$x\" in ''|*[!0-9]*) printf '%s\\n' 'rash: x is not a number' >&2; exit 1 ;; esac",
				`a="$1"` + "\n    case \"$a\" in",
			},
		},
		{
			name: "single quote escaping",
			src:  `fn main() { println!("it's a test"); }`,
			want: []string{`printf '%s\n' 'it'\''s a test'`},
		},
		{
			name: "bare safe words",
			src:  `fn main() { mkdir("-p", "/tmp/rash-demo"); }`,
			want: []string{"mkdir -p /tmp/rash-demo"},
		},
		{
			name: "string interpolation",
			src:  `fn main() { let who = arg(1); println!("hi {}, cost $5", who); }`,
			want: []string{`printf '%s\n' "hi ${who}, cost \$5"`},
		},
		{
			name: "stderr",
			src:  `fn main() { eprint!("warn"); }`,
			want: []string{`printf '%s' warn >&2`},
		},
		{
			name: "range loop",
			src:  `fn main() { for i in 0..=3 { println!("{}", i); } }`,
			want: []string{"_rash_main_0=0", `while [ "$_rash_main_0" -le 3 ]; do`, `i="$_rash_main_0"`, "_rash_main_0=$((_rash_main_0 + 1))"},
		},
		{
			name: "dynamic range end",
			src:  `fn main() { let n: u32 = arg_count(); for i in 0..n { println!("{}", i); } }`,
			want: []string{`_rash_main_0_end="$n"`, `while [ "$_rash_main_0" -lt "$_rash_main_0_end" ]; do`},
		},
		{
			name: "array loop",
			src:  `fn main() { for w in ["a b", "c"] { println!("{}", w); } }`,
			want: []string{"for w in 'a b' c; do"},
		},
		{
			name: "case",
			src:  `fn main() { let s = arg(1); match s { "x*" => { println!("star"); }, _ => { } } }`,
			want: []string{`case "$s" in`, "'x*')", "*)", ";;", "esac"},
		},
		{
			name: "logical grouping",
			src:  `fn main() { let n: u32 = arg_count(); if n > 1 && (n < 5 || n == 9) { println!("ok"); } }`,
			want: []string{`if [ "$n" -gt 1 ] && { [ "$n" -lt 5 ] || [ "$n" -eq 9 ]; }; then`},
		},
		{
			name: "exit",
			src:  `fn main() { exit(4); }`,
			want: []string{"exit 4"},
		},
		{
			name: "entry invocation",
			src:  `fn main() { }`,
			want: []string{"\nmain \"$@\"\n"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := emit(t, tt.src, false)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("missing %q in:\n%s", w, out)
				}
			}
		})
	}
}

func TestRunPrograms(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		args   []string
		stdout string
		stderr string
		status uint8
	}{
		{
			name:   "hello",
			src:    `fn main() { println!("hello"); }`,
			stdout: "hello\n",
		},
		{
			name: "function result",
			src: `fn main() { let x = add(2, 3); println!("{}", x); }
fn add(a: u32, b: u32) -> u32 { a + b }`,
			stdout: "5\n",
		},
		{
			name:   "range sum",
			src:    `fn main() { let mut total = 0; for i in 0..4 { total = total + i; } println!("{}", total); }`,
			stdout: "6\n",
		},
		{
			name:   "loop with break",
			src:    `fn main() { let mut i = 0; loop { i = i + 1; if i == 3 { break; } } println!("{}", i); }`,
			stdout: "3\n",
		},
		{
			name:   "match literal",
			src:    `fn main() { let n = 2; match n { 1 => { println!("one"); }, 2 => { println!("two"); }, _ => { println!("many"); } } }`,
			stdout: "two\n",
		},
		{
			name:   "empty then branch",
			src:    `fn main() { if 1 > 2 { } else { println!("else"); } }`,
			stdout: "else\n",
		},
		{
			name:   "arguments",
			src:    `fn main() { println!("{} {}", arg(1), arg_count()); }`,
			args:   []string{"a b", "c"},
			stdout: "a b 2\n",
		},
		{
			name:   "stderr and exit",
			src:    `fn main() { eprintln!("bad"); exit(3); }`,
			stderr: "bad\n",
			status: 3,
		},
		{
			name:   "array iteration",
			src:    `fn main() { for w in ["x y", "z"] { print!("[{}]", w); } }`,
			stdout: "[x y][z]",
		},
		{
			name: "explicit return",
			src: `fn main() { let v = pick(3); println!("{}", v); }
fn pick(n: u32) -> u32 { if n > 1 { return 10; } 20 }`,
			stdout: "10\n",
		},
		{
			name:   "shadowed binding",
			src:    `fn main() { let x = "outer"; if arg_count() == 0 { let x = "inner"; println!("{}", x); } println!("{}", x); }`,
			stdout: "inner\nouter\n",
		},
		{
			name: "callee parameter",
			src: `fn main() { let n = 1; bump(5); println!("{}", n); }
fn bump(n: u32) { let x = n + 1; println!("{}", x); }`,
			stdout: "6\n1\n",
		},
		{
			name:   "unset environment and missing argument",
			src:    `fn main() { let v = env("RASH_TEST_NEVER_SET"); println!("[{}][{}]", v, arg(3)); }`,
			args:   []string{"one"},
			stdout: "[][]\n",
		},
		{
			name: "function output that is not a number",
			src: `fn main() { let v = noisy(); println!("{}", v + 1); }
fn noisy() -> u32 { println!("a[$(echo pwned)]"); 1 }`,
			stderr: "rash: v is not a number\n",
			status: 1,
		},
		{
			name:   "literal stays literal",
			src:    `fn main() { println!("$(echo pwned) and $HOME"); }`,
			stdout: "$(echo pwned) and $HOME\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, emit(t, tt.src, false), tt.args...)
			if res.stdout != tt.stdout || res.stderr != tt.stderr || res.status != tt.status {
				t.Fatalf("got stdout=%q stderr=%q status=%d, want stdout=%q stderr=%q status=%d",
					res.stdout, res.stderr, res.status, tt.stdout, tt.stderr, tt.status)
			}
		})
	}
}

func TestLogicalConstantsKeepCommands(t *testing.T) {
	src := `fn main() {
    if failing() || true { println!("yes"); } else { println!("no"); }
    if ready() && false { println!("yes"); } else { println!("no"); }
}
fn failing() -> bool { eprintln!("ran"); false }
fn ready() -> bool { true }`
	for _, optimize := range []bool{false, true} {
		res := run(t, emit(t, src, optimize))
		if res.stdout != "yes\nno\n" || res.stderr != "ran\n" || res.status != 0 {
			t.Fatalf("optimize=%t: got stdout=%q stderr=%q status=%d", optimize, res.stdout, res.stderr, res.status)
		}
	}
}

func TestEmitErrors(t *testing.T) {
	badName := &ir.Module{
		Functions: []*ir.Node{ir.NewFunction("main", nil, ir.NewLet("bad-name", ir.Str("x"), ir.Pure))},
		Entry:     "main",
	}
	noEntry := &ir.Module{
		Functions: []*ir.Node{ir.NewFunction("helper", nil, ir.NewNoop())},
		Entry:     "main",
	}
	badArith := &ir.Module{
		Functions: []*ir.Node{ir.NewFunction("main", nil, ir.NewEcho(ir.Arith(ir.ArithAdd, ir.Str("1; rm"), ir.Num(1))))},
		Entry:     "main",
	}
	argArith := &ir.Module{
		Functions: []*ir.Node{ir.NewFunction("main", nil, ir.NewEcho(ir.Arith(ir.ArithAdd, ir.Arg(1), ir.Num(1))))},
		Entry:     "main",
	}
	envArith := &ir.Module{
		Functions: []*ir.Node{ir.NewFunction("main", nil, ir.NewEcho(ir.Arith(ir.ArithMul, ir.Num(2), ir.EnvVar("COUNT"))))},
		Entry:     "main",
	}
	substArith := &ir.Module{
		Functions: []*ir.Node{ir.NewFunction("main", nil, ir.NewEcho(ir.Arith(ir.ArithAdd, ir.CommandSubst(ir.NewExec("date")), ir.Num(1))))},
		Entry:     "main",
	}
	condWord := &ir.Module{
		Functions: []*ir.Node{ir.NewFunction("main", nil, ir.NewEcho(ir.Compare(ir.CmpEq, true, ir.Num(1), ir.Num(1))))},
		Entry:     "main",
	}
	badCommand := &ir.Module{
		Functions: []*ir.Node{ir.NewFunction("main", nil, ir.NewExec("reboot"))},
		Entry:     "main",
	}
	tests := []struct {
		name string
		mod  *ir.Module
		code diag.Code
	}{
		{"bad variable name", badName, diag.EmtBadName},
		{"missing entry", noEntry, diag.EmtBadName},
		{"non numeric arithmetic", badArith, diag.EmtBadArithmeticOperand},
		{"argument in arithmetic", argArith, diag.EmtBadArithmeticOperand},
		{"environment in arithmetic", envArith, diag.EmtBadArithmeticOperand},
		{"command output in arithmetic", substArith, diag.EmtBadArithmeticOperand},
		{"condition as word", condWord, diag.EmtUnsupportedValue},
		{"unknown command", badCommand, diag.EmtBadName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := posix.Emit(tt.mod, posix.Options{StrictMode: true})
			var ee *posix.EmitError
			if !errors.As(err, &ee) {
				t.Fatalf("expected EmitError, got %v", err)
			}
			if ee.Code != tt.code {
				t.Fatalf("code = %s, want %s", ee.Code.ID(), tt.code.ID())
			}
		})
	}
}
