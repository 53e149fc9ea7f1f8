package validate

import (
	"rash/internal/ast"
	"rash/internal/diag"
)

func (v *validator) checkReturnValues() *Error {
	for _, fn := range v.prog.Functions {
		if fn.ReturnType.IsVoid() {
			continue
		}
		if !producesValue(fn.Body) {
			sp := fn.NameSpan
			if fn.Body != nil {
				sp = fn.Body.Span
			}
			return errorf(diag.ValMissingReturnValue, sp, fnNode(fn),
				"function declared to return %s does not produce a value on every path", fn.ReturnType)
		}
	}
	return nil
}

// producesValue reports whether the block ends in a value on every path.
func producesValue(b *ast.Block) bool {
	if b.Empty() {
		return false
	}
	last := b.Stmts[len(b.Stmts)-1]
	switch last.Kind {
	case ast.StmtExpr:
		e := last.ExprStmt().Expr
		return e.Kind != ast.ExprMacro || e.Macro().Name == "format"
	case ast.StmtReturn:
		return last.Return().Value != nil
	case ast.StmtIf:
		d := last.If()
		return d.Else != nil && producesValue(d.Then) && producesValue(d.Else)
	case ast.StmtMatch:
		arms := last.Match().Arms
		if len(arms) == 0 {
			return false
		}
		for _, arm := range arms {
			if !producesValue(arm.Body) {
				return false
			}
		}
		return true
	case ast.StmtWhile:
		d := last.While()
		return d.Cond.IsBoolLiteral(true) && returnsValue(d.Body)
	case ast.StmtLet, ast.StmtFor, ast.StmtBreak, ast.StmtContinue:
		return false
	}
	return false
}

// returnsValue reports whether any statement in b is `return <value>`.
func returnsValue(b *ast.Block) bool {
	if b == nil {
		return false
	}
	for _, s := range b.Stmts {
		if s.Kind == ast.StmtReturn && s.Return().Value != nil {
			return true
		}
		for _, nested := range s.Blocks() {
			if returnsValue(nested) {
				return true
			}
		}
	}
	return false
}

func (v *validator) checkLoopBounds() *Error {
	var out *Error
	ast.Walk(v.prog, ast.Visitor{
		Stmt: func(fn *ast.Function, s *ast.Stmt) {
			if out != nil {
				return
			}
			switch s.Kind {
			case ast.StmtWhile:
				if s.While().MaxIterations == nil {
					out = errorf(diag.ValUnboundedLoop, s.Span, fnNode(fn),
						"while loop needs #[max_iterations(N)] at paranoid validation")
				}
			case ast.StmtFor:
				d := s.For()
				if d.MaxIterations == nil && !isStaticIter(d.Iter) {
					out = errorf(diag.ValUnboundedLoop, d.Iter.Span, fnNode(fn),
						"for loop must iterate over a constant range or array, or carry #[max_iterations(N)]")
				}
			case ast.StmtLet, ast.StmtIf, ast.StmtMatch, ast.StmtBreak, ast.StmtContinue, ast.StmtReturn, ast.StmtExpr:
			}
		},
	})
	return out
}

func isStaticIter(e *ast.Expr) bool {
	switch e.Kind {
	case ast.ExprRange:
		r := e.Range()
		return isU32Literal(r.Start) && isU32Literal(r.End)
	case ast.ExprArray:
		return true
	}
	return false
}

func isU32Literal(e *ast.Expr) bool {
	return e != nil && e.Kind == ast.ExprLiteral && e.Literal().Kind == ast.LitU32
}
