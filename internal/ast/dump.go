package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Printer dumps a Program as an indented tree.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// Dump writes the tree of p to w.
func Dump(w io.Writer, p *Program) error {
	pr := &Printer{w: w}
	pr.printf("program entry=%s\n", p.EntryPoint)
	for _, fn := range p.Functions {
		pr.printFunction(fn)
	}
	return pr.err
}

// DumpString is Dump into a string.
func DumpString(p *Program) string {
	var sb strings.Builder
	_ = Dump(&sb, p)
	return sb.String()
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s"+format, append([]any{strings.Repeat("  ", p.indent)}, args...)...)
}

func (p *Printer) printFunction(fn *Function) {
	params := make([]string, 0, len(fn.Params))
	for _, prm := range fn.Params {
		params = append(params, prm.Name+": "+prm.Type.String())
	}
	p.printf("fn %s(%s) -> %s\n", fn.Name, strings.Join(params, ", "), fn.ReturnType.String())
	p.indent++
	p.printBlock(fn.Body)
	p.indent--
}

func (p *Printer) printBlock(b *Block) {
	if b.Empty() {
		p.printf("<empty>\n")
		return
	}
	for _, s := range b.Stmts {
		p.printStmt(s)
	}
}

func (p *Printer) printStmt(s *Stmt) {
	switch s.Kind {
	case StmtLet:
		d := s.Let()
		kw := "let"
		if d.Reassign {
			kw = "set"
		} else if d.Mutable {
			kw = "let mut"
		}
		if d.Type != nil {
			p.printf("%s %s: %s = %s\n", kw, d.Name, d.Type, ExprString(d.Value))
		} else {
			p.printf("%s %s = %s\n", kw, d.Name, ExprString(d.Value))
		}
	case StmtIf:
		d := s.If()
		p.printf("if %s\n", ExprString(d.Cond))
		p.nested(d.Then)
		if d.Else != nil {
			p.printf("else\n")
			p.nested(d.Else)
		}
	case StmtMatch:
		d := s.Match()
		p.printf("match %s\n", ExprString(d.Scrutinee))
		p.indent++
		for _, arm := range d.Arms {
			p.printf("%s =>\n", PatternString(arm.Pattern))
			p.nested(arm.Body)
		}
		p.indent--
	case StmtFor:
		d := s.For()
		p.printf("for %s in %s%s\n", PatternString(d.Pattern), ExprString(d.Iter), boundSuffix(d.MaxIterations))
		p.nested(d.Body)
	case StmtWhile:
		d := s.While()
		p.printf("while %s%s\n", ExprString(d.Cond), boundSuffix(d.MaxIterations))
		p.nested(d.Body)
	case StmtBreak:
		p.printf("break\n")
	case StmtContinue:
		p.printf("continue\n")
	case StmtReturn:
		if v := s.Return().Value; v != nil {
			p.printf("return %s\n", ExprString(v))
		} else {
			p.printf("return\n")
		}
	case StmtExpr:
		p.printf("expr %s\n", ExprString(s.ExprStmt().Expr))
	}
}

func (p *Printer) nested(b *Block) {
	p.indent++
	p.printBlock(b)
	p.indent--
}

func boundSuffix(n *uint32) string {
	if n == nil {
		return ""
	}
	return " [max_iterations=" + strconv.FormatUint(uint64(*n), 10) + "]"
}

// ExprString renders e in a compact, fully parenthesised form.
func ExprString(e *Expr) string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ExprLiteral:
		return literalString(e.Literal())
	case ExprVariable:
		return e.Variable().Name
	case ExprCall:
		c := e.Call()
		return c.Name + "(" + exprList(c.Args) + ")"
	case ExprBinary:
		b := e.Binary()
		return "(" + ExprString(b.Left) + " " + b.Op.String() + " " + ExprString(b.Right) + ")"
	case ExprUnary:
		u := e.Unary()
		return u.Op.String() + ExprString(u.Operand)
	case ExprMethodCall:
		m := e.MethodCall()
		return ExprString(m.Receiver) + "." + m.Method + "(" + exprList(m.Args) + ")"
	case ExprRange:
		r := e.Range()
		op := ".."
		if r.Inclusive {
			op = "..="
		}
		return ExprString(r.Start) + op + ExprString(r.End)
	case ExprArray:
		return "[" + exprList(e.Data.(*ArrayData).Elems) + "]"
	case ExprIndex:
		ix := e.Data.(*IndexData)
		return ExprString(ix.Object) + "[" + ExprString(ix.Index) + "]"
	case ExprTry:
		return ExprString(e.Data.(*TryData).Operand) + "?"
	case ExprBlock:
		return "{ " + strconv.Itoa(len(e.Data.(*BlockData).Block.Stmts)) + " stmts }"
	case ExprMacro:
		m := e.Macro()
		args := strconv.Quote(m.Format)
		if len(m.Args) > 0 {
			args += ", " + exprList(m.Args)
		}
		return m.Name + "!(" + args + ")"
	}
	return "<?>"
}

func exprList(es []*Expr) string {
	parts := make([]string, 0, len(es))
	for _, e := range es {
		parts = append(parts, ExprString(e))
	}
	return strings.Join(parts, ", ")
}

func literalString(l *LiteralData) string {
	switch l.Kind {
	case LitU32:
		return strconv.FormatUint(uint64(l.U32), 10)
	case LitBool:
		return strconv.FormatBool(l.Bool)
	case LitStr:
		return strconv.Quote(l.Str)
	}
	return "?"
}

// PatternString renders p in source-like form.
func PatternString(p *Pattern) string {
	if p == nil {
		return "<nil>"
	}
	switch p.Kind {
	case PatLiteral:
		return literalString(p.Literal)
	case PatVariable:
		return p.Name
	case PatWildcard:
		return "_"
	case PatTuple:
		parts := make([]string, 0, len(p.Elems))
		for _, e := range p.Elems {
			parts = append(parts, PatternString(e))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case PatStruct:
		parts := make([]string, 0, len(p.Fields))
		for _, f := range p.Fields {
			parts = append(parts, f.Name+": "+PatternString(f.Pattern))
		}
		return p.Name + " { " + strings.Join(parts, ", ") + " }"
	}
	return "<?>"
}
