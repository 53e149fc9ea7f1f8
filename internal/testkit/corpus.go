// Package testkit holds shared fixtures for the compiler's tests: a corpus
// of accepted programs with their expected output and structural checks on
// parsed trees.
package testkit

// Program is one corpus entry. Programs with Run set only use shell builtins
// and can be executed in-process; Stdout is what they print with Args.
type Program struct {
	Name   string
	Source string
	Args   []string
	Run    bool
	Stdout string
}

var corpus = []Program{
	{
		Name:   "hello",
		Source: `fn main() { println!("hello"); }`,
		Run:    true,
		Stdout: "hello\n",
	},
	{
		Name: "function_result",
		Source: `fn main() { let x = add(2, 3); println!("{}", x); }
fn add(a: u32, b: u32) -> u32 { a + b }`,
		Run:    true,
		Stdout: "5\n",
	},
	{
		Name:   "range_sum",
		Source: `fn main() { let mut total = 0; for i in 0..4 { total = total + i; } println!("{}", total); }`,
		Run:    true,
		Stdout: "6\n",
	},
	{
		Name:   "inclusive_range",
		Source: `fn main() { for i in 1..=3 { print!("{}", i); } }`,
		Run:    true,
		Stdout: "123",
	},
	{
		Name:   "loop_break",
		Source: `fn main() { let mut i = 0; loop { i = i + 1; if i == 3 { break; } } println!("{}", i); }`,
		Run:    true,
		Stdout: "3\n",
	},
	{
		Name: "match_literal",
		Source: `fn main() {
    let n = 2;
    match n {
        1 => { println!("one"); },
        2 => { println!("two"); },
        _ => { println!("many"); }
    }
}`,
		Run:    true,
		Stdout: "two\n",
	},
	{
		Name:   "match_binding",
		Source: `fn main() { let n = 7; match n { 1 => { println!("one"); }, other => { println!("got {}", other); } } }`,
		Run:    true,
		Stdout: "got 7\n",
	},
	{
		Name:   "empty_then",
		Source: `fn main() { let n = arg_count(); if n > 2 { } else { println!("small"); } }`,
		Run:    true,
		Stdout: "small\n",
	},
	{
		Name: "else_if_chain",
		Source: `fn main() {
    let n = 5;
    if n < 3 { println!("low"); } else if n < 6 { println!("mid"); } else { println!("high"); }
}`,
		Run:    true,
		Stdout: "mid\n",
	},
	{
		Name:   "arguments",
		Source: `fn main() { println!("{} {}", arg(1), arg_count()); }`,
		Args:   []string{"x y", "z"},
		Run:    true,
		Stdout: "x y 2\n",
	},
	{
		Name:   "stderr",
		Source: `fn main() { eprintln!("warn"); println!("done"); }`,
		Run:    true,
		Stdout: "done\n",
	},
	{
		Name:   "array_loop",
		Source: `fn main() { for w in ["a b", "c"] { print!("[{}]", w); } }`,
		Run:    true,
		Stdout: "[a b][c]",
	},
	{
		Name: "explicit_return",
		Source: `fn main() { let v = pick(3); println!("{}", v); }
fn pick(n: u32) -> u32 {
    if n > 1 { return 10; }
    20
}`,
		Run:    true,
		Stdout: "10\n",
	},
	{
		Name: "nested_calls",
		Source: `fn main() { let v = twice(inc(4)); println!("{}", v); }
fn inc(n: u32) -> u32 { n + 1 }
fn twice(n: u32) -> u32 { n * 2 }`,
		Run:    true,
		Stdout: "10\n",
	},
	{
		Name:   "string_concat",
		Source: `fn main() { let a = "foo"; let b = "bar"; let c = a + b; println!("{}", c); }`,
		Run:    true,
		Stdout: "foobar\n",
	},
	{
		Name:   "format_macro",
		Source: `fn main() { let name = "rash"; let msg = format!("hi {}", name); println!("{}", msg); }`,
		Run:    true,
		Stdout: "hi rash\n",
	},
	{
		Name: "bool_flag",
		Source: `fn main() {
    let verbose = arg_count() > 0;
    if verbose { println!("on"); } else { println!("off"); }
}`,
		Run:    true,
		Stdout: "off\n",
	},
	{
		Name:   "logical_and",
		Source: `fn main() { let n = 4; if n > 1 && n < 5 { println!("in"); } }`,
		Run:    true,
		Stdout: "in\n",
	},
	{
		Name:   "negation",
		Source: `fn main() { let n = 4; if !(n == 3) { println!("not three"); } }`,
		Run:    true,
		Stdout: "not three\n",
	},
	{
		Name:   "while_counter",
		Source: `fn main() { let mut i = 0; while i < 3 { print!("{}", i); i = i + 1; } }`,
		Run:    true,
		Stdout: "012",
	},
	{
		Name:   "continue",
		Source: `fn main() { for i in 0..5 { if i == 2 { continue; } print!("{}", i); } }`,
		Run:    true,
		Stdout: "0134",
	},
	{
		Name: "unit_function",
		Source: `fn main() { greet("team"); }
fn greet(who: &str) { println!("hello {}", who); }`,
		Run:    true,
		Stdout: "hello team\n",
	},
	{
		Name: "entry_attribute",
		Source: `#[rash::main]
fn start() { println!("started"); }`,
		Run:    true,
		Stdout: "started\n",
	},
	{
		Name:   "make_directory",
		Source: `fn main() { mkdir("-p", "/tmp/rash-demo"); }`,
	},
	{
		Name:   "read_env",
		Source: `fn main() { let home = env("HOME"); println!("{}", home); }`,
	},
	{
		Name: "install_steps",
		Source: `fn main() {
    let prefix = "/usr/local";
    let target = format!("{}/bin", prefix);
    mkdir("-p", target);
    touch(format!("{}/rash-installed", target));
    println!("installed to {}", target);
}`,
	},
}

// Corpus returns a copy of the shared program corpus.
func Corpus() []Program {
	return append([]Program(nil), corpus...)
}
