package ir

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Printer dumps a Module as an indented listing.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// Dump writes m to w.
func Dump(w io.Writer, m *Module) error {
	pr := &Printer{w: w}
	pr.printf("module entry=%s effects=%s\n", m.Entry, m.Effects)
	for _, fn := range m.Functions {
		pr.printNode(fn)
	}
	return pr.err
}

// DumpString is Dump into a string.
func DumpString(m *Module) string {
	var sb strings.Builder
	_ = Dump(&sb, m)
	return sb.String()
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s"+format, append([]any{strings.Repeat("  ", p.indent)}, args...)...)
}

func (p *Printer) nested(n *Node) {
	p.indent++
	p.printNode(n)
	p.indent--
}

func (p *Printer) printNode(n *Node) {
	switch n.Kind {
	case NodeLet:
		d := n.Let()
		num := ""
		if d.Numeric {
			num = " number"
		}
		p.printf("let %s = %s [%s]%s\n", d.Name, ValueString(d.Value), d.Effects, num)
	case NodeIf:
		d := n.If()
		p.printf("if %s\n", ValueString(d.Cond))
		p.nested(d.Then)
		if d.Else != nil {
			p.printf("else\n")
			p.nested(d.Else)
		}
	case NodeSequence:
		for _, c := range n.Sequence().Nodes {
			p.printNode(c)
		}
	case NodeFunction:
		d := n.Function()
		p.printf("fn %s(%s) [%s]\n", d.Name, strings.Join(d.Params, ", "), d.Effects)
		p.nested(d.Body)
	case NodeEcho:
		d := n.Echo()
		kw := "echo"
		if d.Stream == Stderr {
			kw = "echo>&2"
		}
		if !d.Newline {
			kw += " -n"
		}
		p.printf("%s %s\n", kw, ValueString(d.Value))
	case NodeFor:
		d := n.For()
		if d.IsRange() {
			op := ".."
			if d.Inclusive {
				op = "..="
			}
			p.printf("for %s in %s%s%s counter=%s%s\n", d.Var, ValueString(d.Start), op, ValueString(d.End), d.Counter, boundString(d.Bound))
		} else {
			items := make([]string, 0, len(d.Items))
			for _, it := range d.Items {
				items = append(items, ValueString(it))
			}
			p.printf("for %s in [%s]%s\n", d.Var, strings.Join(items, ", "), boundString(d.Bound))
		}
		p.nested(d.Body)
	case NodeWhile:
		d := n.While()
		p.printf("while %s%s\n", ValueString(d.Cond), boundString(d.Bound))
		p.nested(d.Body)
	case NodeBreak:
		p.printf("break\n")
	case NodeContinue:
		p.printf("continue\n")
	case NodeCase:
		d := n.Case()
		p.printf("case %s\n", ValueString(d.Scrutinee))
		p.indent++
		for _, arm := range d.Arms {
			if arm.Pattern.Wildcard {
				p.printf("*\n")
			} else {
				p.printf("%s\n", strconv.Quote(arm.Pattern.Literal))
			}
			p.nested(arm.Body)
		}
		p.indent--
	case NodeExit:
		p.printf("exit %s\n", ValueString(n.Exit().Code))
	case NodeExec:
		p.printf("%s\n", execString(n.Exec()))
	case NodeReturn:
		p.printf("return\n")
	case NodeNoop:
		p.printf("noop\n")
	default:
		p.printf("<%s>\n", n.Kind)
	}
}

func boundString(b *uint32) string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf(" max=%d", *b)
}

func execString(e *ExecNode) string {
	parts := []string{"exec", e.Command}
	for _, a := range e.Args {
		parts = append(parts, ValueString(a))
	}
	return strings.Join(parts, " ") + " [" + e.Effects.String() + "]"
}

// ValueString renders v in a compact prefix form.
func ValueString(v *Value) string {
	if v == nil {
		return "<nil>"
	}
	switch v.Kind {
	case ValString:
		return strconv.Quote(v.Str().Text)
	case ValBool:
		return strconv.FormatBool(v.Bool().Value)
	case ValVariable:
		if v.Variable().Env {
			return "env(" + v.Variable().Name + ")"
		}
		return "$" + v.Variable().Name
	case ValCommandSubst:
		return "$(" + execString(v.CommandSubst().Command.Exec()) + ")"
	case ValConcat:
		parts := make([]string, 0, len(v.Concat().Parts))
		for _, p := range v.Concat().Parts {
			parts = append(parts, ValueString(p))
		}
		return "concat(" + strings.Join(parts, ", ") + ")"
	case ValComparison:
		c := v.Comparison()
		kind := "str"
		if c.Numeric {
			kind = "num"
		}
		return fmt.Sprintf("(%s %s %s %s)", c.Op, kind, ValueString(c.Left), ValueString(c.Right))
	case ValArithmetic:
		a := v.Arithmetic()
		return fmt.Sprintf("(%s %s %s)", a.Op, ValueString(a.Left), ValueString(a.Right))
	case ValArg:
		if pos := v.Arg().Position; pos != nil {
			return fmt.Sprintf("arg(%d)", *pos)
		}
		return "args()"
	case ValArgCount:
		return "arg_count()"
	case ValLogical:
		lg := v.Logical()
		if lg.Op == LogicNot {
			return "(! " + ValueString(lg.Left) + ")"
		}
		return fmt.Sprintf("(%s %s %s)", lg.Op, ValueString(lg.Left), ValueString(lg.Right))
	}
	return "<" + v.Kind.String() + ">"
}
