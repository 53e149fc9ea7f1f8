// Package posix renders shell IR as POSIX sh text.
package posix

import (
	"fmt"
	"strings"

	"rash/internal/config"
	"rash/internal/diag"
	"rash/internal/ir"
	"rash/internal/source"
)

// Options control emission. Dialect only selects the shebang; the body is
// plain POSIX sh for every target.
type Options struct {
	Dialect    config.Dialect
	StrictMode bool
}

// EmitError reports an IR node or value with no shell rendering.
type EmitError struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

func (e *EmitError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Span, e.Msg)
}

func emitErr(code diag.Code, sp source.Span, format string, args ...any) *EmitError {
	return &EmitError{Code: code, Span: sp, Msg: fmt.Sprintf(format, args...)}
}

const indentUnit = "    "

// Emitter accumulates script text.
type Emitter struct {
	mod    *ir.Module
	opts   Options
	buf    strings.Builder
	indent int
}

// Emit renders mod. Output depends only on mod and opts.
func Emit(mod *ir.Module, opts Options) (string, error) {
	e := &Emitter{mod: mod, opts: opts}
	e.emitPreamble()
	for _, fn := range mod.Functions {
		if err := e.emitFunction(fn); err != nil {
			return "", err
		}
		e.buf.WriteString("\n")
	}
	if !ir.IsShellName(mod.Entry) || mod.Lookup(mod.Entry) == nil {
		return "", emitErr(diag.EmtBadName, source.NoSpan, "entry function %q is not defined", mod.Entry)
	}
	fmt.Fprintf(&e.buf, "%s \"$@\"\n", mod.Entry)
	return e.buf.String(), nil
}

// Shebang returns the interpreter line for d.
func Shebang(d config.Dialect) string {
	switch d {
	case config.DialectPosix:
		return "#!/bin/sh"
	case config.DialectBash:
		return "#!/bin/bash"
	case config.DialectDash:
		return "#!/bin/dash"
	case config.DialectAsh:
		return "#!/bin/ash"
	}
	return "#!/bin/sh"
}

func (e *Emitter) emitPreamble() {
	e.buf.WriteString(Shebang(e.opts.Dialect))
	e.buf.WriteString("\n# Generated by rash. Do not edit.\n")
	if e.opts.StrictMode {
		e.buf.WriteString("set -euf\n")
	} else {
		e.buf.WriteString("set -f\n")
	}
	e.buf.WriteString("IFS=' \t\n'\n")
	e.buf.WriteString("export LC_ALL=C\n\n")
}

func (e *Emitter) line(format string, args ...any) {
	e.buf.WriteString(strings.Repeat(indentUnit, e.indent))
	fmt.Fprintf(&e.buf, format, args...)
	e.buf.WriteString("\n")
}

func (e *Emitter) emitFunction(n *ir.Node) error {
	if n.Kind != ir.NodeFunction {
		return emitErr(diag.EmtUnsupportedNode, n.Span, "expected a function node, found %s", n.Kind)
	}
	fn := n.Function()
	if !ir.IsShellName(fn.Name) {
		return emitErr(diag.EmtBadName, n.Span, "invalid function name %q", fn.Name)
	}
	e.line("%s() {", fn.Name)
	e.indent++
	for i, p := range fn.Params {
		if !ir.IsShellName(p) {
			return emitErr(diag.EmtBadName, n.Span, "invalid parameter name %q", p)
		}
		e.line("%s=%s", p, positional(i+1))
		if i < len(fn.Numeric) && fn.Numeric[i] {
			e.numberGuard(p)
		}
	}
	if err := e.emitNode(fn.Body); err != nil {
		return err
	}
	e.indent--
	e.line("}")
	return nil
}

// positional renders "$n", braced from 10 on.
func positional(n int) string {
	if n < 10 {
		return fmt.Sprintf(`"$%d"`, n)
	}
	return fmt.Sprintf(`"${%d}"`, n)
}

// emitBody renders a nested block one level deeper.
func (e *Emitter) emitBody(n *ir.Node) error {
	e.indent++
	defer func() { e.indent-- }()
	return e.emitNode(n)
}

func (e *Emitter) emitNode(n *ir.Node) error {
	switch n.Kind {
	case ir.NodeLet:
		return e.emitLet(n)
	case ir.NodeIf:
		return e.emitIf(n, "if")
	case ir.NodeSequence:
		for _, c := range n.Sequence().Nodes {
			if err := e.emitNode(c); err != nil {
				return err
			}
		}
		return nil
	case ir.NodeFunction:
		return emitErr(diag.EmtUnsupportedNode, n.Span, "nested function %q", n.Function().Name)
	case ir.NodeEcho:
		return e.emitEcho(n)
	case ir.NodeFor:
		return e.emitFor(n)
	case ir.NodeWhile:
		return e.emitWhile(n)
	case ir.NodeBreak:
		e.line("break")
		return nil
	case ir.NodeContinue:
		e.line("continue")
		return nil
	case ir.NodeCase:
		return e.emitCase(n)
	case ir.NodeExit:
		code, err := e.word(n.Exit().Code)
		if err != nil {
			return err
		}
		e.line("exit %s", code)
		return nil
	case ir.NodeExec:
		cmd, err := e.command(n.Exec(), n.Span)
		if err != nil {
			return err
		}
		e.line("%s", cmd)
		return nil
	case ir.NodeReturn:
		e.line("return 0")
		return nil
	case ir.NodeNoop:
		e.line(":")
		return nil
	}
	return emitErr(diag.EmtUnsupportedNode, n.Span, "node kind %s has no shell rendering", n.Kind)
}

func (e *Emitter) emitLet(n *ir.Node) error {
	d := n.Let()
	if !ir.IsShellName(d.Name) {
		return emitErr(diag.EmtBadName, n.Span, "invalid variable name %q", d.Name)
	}
	w, err := e.word(d.Value)
	if err != nil {
		return err
	}
	if w == `"$@"` {
		// an assignment keeps a single word
		w = `"$*"`
	}
	e.line("%s=%s", d.Name, w)
	if d.Numeric {
		e.numberGuard(d.Name)
	}
	return nil
}

// numberGuard stops the script unless name holds a decimal number; u32
// variables are expanded inside $(( )), which evaluates their text.
func (e *Emitter) numberGuard(name string) {
	e.line(`case "$%s" in ''|*[!0-9]*) printf '%%s\n' %s >&2; exit 1 ;; esac`,
		name, literal("rash: "+name+" is not a number"))
}

func (e *Emitter) emitIf(n *ir.Node, kw string) error {
	d := n.If()
	cond, err := e.condition(d.Cond)
	if err != nil {
		return err
	}
	e.line("%s %s; then", kw, cond)
	if err := e.emitBody(d.Then); err != nil {
		return err
	}
	switch {
	case d.Else == nil:
	case d.Else.Kind == ir.NodeIf:
		return e.emitIf(d.Else, "elif")
	default:
		e.line("else")
		if err := e.emitBody(d.Else); err != nil {
			return err
		}
	}
	e.line("fi")
	return nil
}

func (e *Emitter) emitEcho(n *ir.Node) error {
	d := n.Echo()
	w, err := e.word(d.Value)
	if err != nil {
		return err
	}
	format := `'%s'`
	if d.Newline {
		format = `'%s\n'`
	}
	redirect := ""
	if d.Stream == ir.Stderr {
		redirect = " >&2"
	}
	e.line("printf %s %s%s", format, w, redirect)
	return nil
}

func (e *Emitter) emitFor(n *ir.Node) error {
	d := n.For()
	if !ir.IsShellName(d.Var) || !ir.IsShellName(d.Counter) {
		return emitErr(diag.EmtBadName, n.Span, "invalid loop variable %q", d.Var)
	}
	if !d.IsRange() {
		if len(d.Items) == 0 {
			e.line(":")
			return nil
		}
		words := make([]string, 0, len(d.Items))
		for _, it := range d.Items {
			w, err := e.word(it)
			if err != nil {
				return err
			}
			words = append(words, w)
		}
		e.line("for %s in %s; do", d.Var, strings.Join(words, " "))
		if err := e.emitBody(d.Body); err != nil {
			return err
		}
		e.line("done")
		return nil
	}

	start, err := e.word(d.Start)
	if err != nil {
		return err
	}
	end, err := e.word(d.End)
	if err != nil {
		return err
	}
	if !d.End.IsConstant() {
		limit := d.Counter + "_end"
		e.line("%s=%s", limit, end)
		end = `"$` + limit + `"`
	}
	test := "-lt"
	if d.Inclusive {
		test = "-le"
	}
	e.line("%s=%s", d.Counter, start)
	e.line(`while [ "$%s" %s %s ]; do`, d.Counter, test, end)
	e.indent++
	if d.Var != d.Counter {
		e.line(`%s="$%s"`, d.Var, d.Counter)
	}
	e.line("%s=$((%s + 1))", d.Counter, d.Counter)
	if err := e.emitNode(d.Body); err != nil {
		return err
	}
	e.indent--
	e.line("done")
	return nil
}

func (e *Emitter) emitWhile(n *ir.Node) error {
	d := n.While()
	cond, err := e.condition(d.Cond)
	if err != nil {
		return err
	}
	e.line("while %s; do", cond)
	if err := e.emitBody(d.Body); err != nil {
		return err
	}
	e.line("done")
	return nil
}

func (e *Emitter) emitCase(n *ir.Node) error {
	d := n.Case()
	scrut, err := e.word(d.Scrutinee)
	if err != nil {
		return err
	}
	e.line("case %s in", scrut)
	e.indent++
	for _, arm := range d.Arms {
		pat := "*"
		if !arm.Pattern.Wildcard {
			pat = singleQuote(arm.Pattern.Literal)
		}
		e.line("%s)", pat)
		if err := e.emitBody(arm.Body); err != nil {
			return err
		}
		e.indent++
		e.line(";;")
		e.indent--
	}
	e.indent--
	e.line("esac")
	return nil
}

// command renders an Exec node as a simple command.
func (e *Emitter) command(x *ir.ExecNode, sp source.Span) (string, error) {
	if !ir.IsShellName(x.Command) {
		return "", emitErr(diag.EmtBadName, sp, "invalid command name %q", x.Command)
	}
	if !x.User && !ir.IsAllowedCommand(x.Command) {
		return "", emitErr(diag.EmtBadName, sp, "command %q is not allowed", x.Command)
	}
	parts := []string{x.Command}
	for _, a := range x.Args {
		w, err := e.word(a)
		if err != nil {
			return "", err
		}
		parts = append(parts, w)
	}
	return strings.Join(parts, " "), nil
}
