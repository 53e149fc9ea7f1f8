package ast

// Visitor receives nodes during Walk. Nil callbacks are skipped.
type Visitor struct {
	Function func(fn *Function)
	Stmt     func(fn *Function, s *Stmt)
	Expr     func(fn *Function, e *Expr)
	Pattern  func(fn *Function, p *Pattern)
}

// Walk visits every node of p in source order, parents before children.
func Walk(p *Program, v Visitor) {
	for _, fn := range p.Functions {
		if v.Function != nil {
			v.Function(fn)
		}
		walkBlock(fn, fn.Body, v)
	}
}

func walkBlock(fn *Function, b *Block, v Visitor) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		walkStmt(fn, s, v)
	}
}

func walkStmt(fn *Function, s *Stmt, v Visitor) {
	if v.Stmt != nil {
		v.Stmt(fn, s)
	}
	switch s.Kind {
	case StmtFor:
		walkPattern(fn, s.For().Pattern, v)
		walkExpr(fn, s.For().Iter, v)
		walkBlock(fn, s.For().Body, v)
		return
	case StmtMatch:
		m := s.Match()
		walkExpr(fn, m.Scrutinee, v)
		for _, arm := range m.Arms {
			walkPattern(fn, arm.Pattern, v)
			walkBlock(fn, arm.Body, v)
		}
		return
	case StmtLet, StmtIf, StmtWhile, StmtBreak, StmtContinue, StmtReturn, StmtExpr:
	}
	for _, e := range s.Exprs() {
		walkExpr(fn, e, v)
	}
	for _, b := range s.Blocks() {
		walkBlock(fn, b, v)
	}
}

func walkExpr(fn *Function, e *Expr, v Visitor) {
	if e == nil {
		return
	}
	if v.Expr != nil {
		v.Expr(fn, e)
	}
	if e.Kind == ExprBlock {
		walkBlock(fn, e.Data.(*BlockData).Block, v)
		return
	}
	for _, c := range e.Children() {
		walkExpr(fn, c, v)
	}
}

func walkPattern(fn *Function, p *Pattern, v Visitor) {
	if p == nil {
		return
	}
	if v.Pattern != nil {
		v.Pattern(fn, p)
	}
	switch p.Kind {
	case PatTuple:
		for _, e := range p.Elems {
			walkPattern(fn, e, v)
		}
	case PatStruct:
		for _, f := range p.Fields {
			walkPattern(fn, f.Pattern, v)
		}
	case PatLiteral, PatVariable, PatWildcard:
	}
}
