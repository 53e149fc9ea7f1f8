package ir

import "rash/internal/ast"

// functionEffects is the union of effects of everything name may run,
// callees included. A call cycle yields EffectUnknown for the cycle edge.
func (l *lowerer) functionEffects(name string, visiting map[string]bool) EffectSet {
	if eff, ok := l.fnEffects[name]; ok {
		return eff
	}
	fn := l.prog.Lookup(name)
	if fn == nil {
		return EffectUnknown
	}
	if visiting[name] {
		return EffectUnknown
	}
	visiting[name] = true
	defer delete(visiting, name)

	eff := Pure
	ast.Walk(&ast.Program{Functions: []*ast.Function{fn}}, ast.Visitor{
		Expr: func(_ *ast.Function, e *ast.Expr) {
			if e.Kind != ast.ExprCall {
				return
			}
			callee := e.Call().Name
			switch LookupBuiltin(callee) {
			case BuiltinEnv:
				eff |= EffectReadsEnv
			case BuiltinArg, BuiltinArgs, BuiltinArgCount, BuiltinExit:
			case NotBuiltin:
				if l.prog.Lookup(callee) != nil {
					eff |= l.functionEffects(callee, visiting)
				} else {
					eff |= CommandEffects(callee)
				}
			}
		},
	})
	l.fnEffects[name] = eff
	return eff
}
