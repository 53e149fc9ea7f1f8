package safety

import "rash/internal/ast"

// CheckProgram scans every string literal of prog in source order: literal
// expressions, macro format strings and match-pattern literals. The first
// failure is returned as *InjectionError.
func CheckProgram(prog *ast.Program) error {
	var out error
	ast.Walk(prog, ast.Visitor{
		Expr: func(_ *ast.Function, e *ast.Expr) {
			if out != nil {
				return
			}
			switch e.Kind {
			case ast.ExprLiteral:
				if lit := e.Literal(); lit.Kind == ast.LitStr {
					out = CheckLiteralAt(lit.Str, e.Span)
				}
			case ast.ExprMacro:
				out = CheckLiteralAt(e.Macro().Format, e.Span)
			}
		},
		Pattern: func(_ *ast.Function, p *ast.Pattern) {
			if out != nil || p.Kind != ast.PatLiteral {
				return
			}
			if p.Literal.Kind == ast.LitStr {
				out = CheckLiteralAt(p.Literal.Str, p.Span)
			}
		},
	})
	return out
}
