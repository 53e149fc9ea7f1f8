package ir

import (
	"rash/internal/ast"
	"rash/internal/diag"
)

// lowerWord lowers e to a value that can stand as a single shell word.
// Conditions cannot: they only exist as tests.
func (l *lowerer) lowerWord(e *ast.Expr) (*Value, valueType, error) {
	v, t, err := l.lowerValue(e)
	if err != nil {
		return nil, tyUnknown, err
	}
	if v.IsCondition() {
		return nil, tyUnknown, lowerErr(diag.LowUnsupportedExpr, e.Span,
			"a boolean expression cannot be used here; bind it with let first")
	}
	return v, t, nil
}

func (l *lowerer) lowerValue(e *ast.Expr) (*Value, valueType, error) {
	switch e.Kind {
	case ast.ExprLiteral:
		lit := e.Literal()
		switch lit.Kind {
		case ast.LitU32:
			return Num(lit.U32), tyU32, nil
		case ast.LitBool:
			return Bool(lit.Bool), tyBool, nil
		case ast.LitStr:
			return Str(lit.Str), tyStr, nil
		}
		return nil, tyUnknown, lowerErr(diag.LowUnsupportedExpr, e.Span, "unknown literal kind")
	case ast.ExprVariable:
		name := e.Variable().Name
		b, ok := l.scope.lookup(name)
		if !ok {
			return nil, tyUnknown, lowerErr(diag.LowUndefinedVariable, e.Span, "undefined variable %q", name)
		}
		return Var(b.shell), b.t, nil
	case ast.ExprCall:
		return l.lowerCallValue(e)
	case ast.ExprBinary:
		return l.lowerBinary(e)
	case ast.ExprUnary:
		return l.lowerUnary(e)
	case ast.ExprMethodCall:
		return l.lowerMethod(e)
	case ast.ExprRange:
		return nil, tyUnknown, lowerErr(diag.LowUnsupportedExpr, e.Span, "ranges are only supported as for-loop iterators")
	case ast.ExprArray:
		return nil, tyUnknown, lowerErr(diag.LowUnsupportedExpr, e.Span, "arrays are only supported as for-loop iterators")
	case ast.ExprIndex:
		return nil, tyUnknown, lowerErr(diag.LowUnsupportedExpr, e.Span, "indexing has no shell translation")
	case ast.ExprTry:
		return nil, tyUnknown, lowerErr(diag.LowUnsupportedExpr, e.Span, "the ? operator has no shell translation")
	case ast.ExprBlock:
		return nil, tyUnknown, lowerErr(diag.LowUnsupportedExpr, e.Span, "block expressions have no shell translation")
	case ast.ExprMacro:
		if e.Macro().Name != "format" {
			return nil, tyUnknown, lowerErr(diag.LowUnsupportedExpr, e.Span, "%s! does not produce a value", e.Macro().Name)
		}
		v, err := l.lowerFormat(e)
		return v, tyStr, err
	}
	return nil, tyUnknown, lowerErr(diag.LowUnsupportedExpr, e.Span, "expression kind %s has no shell translation", e.Kind)
}

func (l *lowerer) lowerCallValue(e *ast.Expr) (*Value, valueType, error) {
	call := e.Call()
	switch LookupBuiltin(call.Name) {
	case BuiltinArg:
		if len(call.Args) != 1 || call.Args[0].Kind != ast.ExprLiteral || call.Args[0].Literal().Kind != ast.LitU32 {
			return nil, tyUnknown, lowerErr(diag.LowBadBuiltinCall, e.Span, "arg() takes one u32 literal position")
		}
		pos := call.Args[0].Literal().U32
		if pos == 0 {
			return nil, tyUnknown, lowerErr(diag.LowBadArgPosition, call.Args[0].Span,
				"arg(0) is not allowed; positional arguments start at 1")
		}
		return Arg(pos), tyStr, nil
	case BuiltinArgs:
		if len(call.Args) != 0 {
			return nil, tyUnknown, lowerErr(diag.LowBadBuiltinCall, e.Span, "args() takes no arguments")
		}
		return AllArgs(), tyStr, nil
	case BuiltinArgCount:
		if len(call.Args) != 0 {
			return nil, tyUnknown, lowerErr(diag.LowBadBuiltinCall, e.Span, "arg_count() takes no arguments")
		}
		return ArgCount(), tyU32, nil
	case BuiltinEnv:
		if len(call.Args) != 1 || !call.Args[0].IsStringLiteral() || !IsShellName(call.Args[0].Literal().Str) {
			return nil, tyUnknown, lowerErr(diag.LowBadBuiltinCall, e.Span,
				"%s() takes one string literal naming an environment variable", call.Name)
		}
		l.pending |= EffectReadsEnv
		return EnvVar(call.Args[0].Literal().Str), tyStr, nil
	case BuiltinExit:
		return nil, tyUnknown, lowerErr(diag.LowBadBuiltinCall, e.Span, "%s() does not produce a value", call.Name)
	case NotBuiltin:
		n, t, err := l.lowerExec(e)
		if err != nil {
			return nil, tyUnknown, err
		}
		return CommandSubst(n), t, nil
	}
	return nil, tyUnknown, lowerErr(diag.LowBadBuiltinCall, e.Span, "unknown builtin %s", call.Name)
}

// lowerExec lowers a call to a program function or an allowed command.
func (l *lowerer) lowerExec(e *ast.Expr) (*Node, valueType, error) {
	call := e.Call()
	callee := l.prog.Lookup(call.Name)
	if callee == nil && !IsAllowedCommand(call.Name) {
		return nil, tyUnknown, lowerErr(diag.LowUnsupportedExpr, call.NameSpan, "call to unknown function %q", call.Name)
	}
	if callee != nil && len(callee.Params) != len(call.Args) {
		return nil, tyUnknown, lowerErr(diag.LowTypeMismatch, e.Span,
			"%s expects %d arguments, got %d", call.Name, len(callee.Params), len(call.Args))
	}
	args := make([]*Value, 0, len(call.Args))
	for i, a := range call.Args {
		v, t, err := l.lowerWord(a)
		if err != nil {
			return nil, tyUnknown, err
		}
		if callee != nil {
			want := typeOf(callee.Params[i].Type)
			if want != tyUnknown && want != t {
				return nil, tyUnknown, lowerErr(diag.LowTypeMismatch, a.Span,
					"argument %d of %s must be %s, found %s", i+1, call.Name, want, t)
			}
		}
		args = append(args, v)
	}
	exec := &ExecNode{Command: call.Name, Args: args}
	result := tyStr
	if callee != nil {
		exec.User = true
		exec.Effects = l.fnEffects[call.Name]
		result = typeOf(callee.ReturnType)
	} else {
		exec.Effects = CommandEffects(call.Name)
	}
	l.pending |= exec.Effects
	return mk(NodeExec, e.Span, exec), result, nil
}

func (l *lowerer) lowerBinary(e *ast.Expr) (*Value, valueType, error) {
	b := e.Binary()
	left, lt, err := l.lowerValue(b.Left)
	if err != nil {
		return nil, tyUnknown, err
	}
	right, rt, err := l.lowerValue(b.Right)
	if err != nil {
		return nil, tyUnknown, err
	}
	switch b.Op {
	case ast.BinAdd:
		if lt == tyStr && rt == tyStr {
			return l.concat(left, right), tyStr, nil
		}
		return l.arith(e, ArithAdd, left, lt, right, rt)
	case ast.BinSub:
		return l.arith(e, ArithSub, left, lt, right, rt)
	case ast.BinMul:
		return l.arith(e, ArithMul, left, lt, right, rt)
	case ast.BinDiv:
		return l.arith(e, ArithDiv, left, lt, right, rt)
	case ast.BinMod:
		return l.arith(e, ArithMod, left, lt, right, rt)
	case ast.BinEq:
		return l.compare(e, CmpEq, left, lt, right, rt)
	case ast.BinNe:
		return l.compare(e, CmpNe, left, lt, right, rt)
	case ast.BinLt:
		return l.compare(e, CmpLt, left, lt, right, rt)
	case ast.BinLe:
		return l.compare(e, CmpLe, left, lt, right, rt)
	case ast.BinGt:
		return l.compare(e, CmpGt, left, lt, right, rt)
	case ast.BinGe:
		return l.compare(e, CmpGe, left, lt, right, rt)
	case ast.BinAnd:
		return l.logical(e, LogicAnd, left, lt, right, rt)
	case ast.BinOr:
		return l.logical(e, LogicOr, left, lt, right, rt)
	}
	return nil, tyUnknown, lowerErr(diag.LowUnsupportedOperator, e.Span, "operator %s has no shell translation", b.Op)
}

func (l *lowerer) arith(e *ast.Expr, op ArithOp, left *Value, lt valueType, right *Value, rt valueType) (*Value, valueType, error) {
	for _, v := range []*Value{left, right} {
		if v.Kind == ValCommandSubst {
			return nil, tyUnknown, lowerErr(diag.LowUnsupportedExpr, e.Span,
				"bind the result of %s to a variable before using it in arithmetic", v.CommandSubst().Command.Exec().Command)
		}
	}
	switch {
	case lt == tyU32 && rt == tyU32:
		if l.opts.Optimize {
			if v, ok := foldArith(op, left, right); ok {
				return v, tyU32, nil
			}
		}
		return Arith(op, left, right), tyU32, nil
	case lt == tyStr && rt == tyStr:
		return nil, tyUnknown, lowerErr(diag.LowUnsupportedOperator, e.Span, "operator %s is not defined for strings", op)
	}
	return nil, tyUnknown, lowerErr(diag.LowTypeMismatch, e.Span,
		"operator %s needs u32 operands, found %s and %s", op, lt, rt)
}

func (l *lowerer) concat(left, right *Value) *Value {
	v := Concat(left, right)
	if l.opts.Optimize {
		return foldConcat(v)
	}
	return v
}

func (l *lowerer) compare(e *ast.Expr, op CompareOp, left *Value, lt valueType, right *Value, rt valueType) (*Value, valueType, error) {
	if left.IsCondition() || right.IsCondition() {
		return nil, tyUnknown, lowerErr(diag.LowUnsupportedExpr, e.Span,
			"comparing boolean expressions is not supported; bind them with let first")
	}
	numeric := lt == tyU32 && rt == tyU32
	ordering := op != CmpEq && op != CmpNe
	switch {
	case numeric:
	case lt != rt || lt == tyUnknown:
		return nil, tyUnknown, lowerErr(diag.LowTypeMismatch, e.Span,
			"cannot compare %s with %s", lt, rt)
	case ordering:
		return nil, tyUnknown, lowerErr(diag.LowUnsupportedOperator, e.Span,
			"operator %s is only defined for u32, found %s", op, lt)
	}
	v := Compare(op, numeric, left, right)
	if l.opts.Optimize {
		if folded, ok := foldCompare(v); ok {
			return folded, tyBool, nil
		}
	}
	return v, tyBool, nil
}

func (l *lowerer) logical(e *ast.Expr, op LogicalOp, left *Value, lt valueType, right *Value, rt valueType) (*Value, valueType, error) {
	if lt != tyBool || rt != tyBool {
		return nil, tyUnknown, lowerErr(diag.LowTypeMismatch, e.Span,
			"operator %s needs bool operands, found %s and %s", op, lt, rt)
	}
	v := Logic(op, left, right)
	if l.opts.Optimize {
		return foldLogic(v), tyBool, nil
	}
	return v, tyBool, nil
}

func (l *lowerer) lowerUnary(e *ast.Expr) (*Value, valueType, error) {
	u := e.Unary()
	operand, t, err := l.lowerValue(u.Operand)
	if err != nil {
		return nil, tyUnknown, err
	}
	switch u.Op {
	case ast.UnaryNot:
		if t != tyBool {
			return nil, tyUnknown, lowerErr(diag.LowTypeMismatch, e.Span, "operator ! needs a bool operand, found %s", t)
		}
		v := Not(operand)
		if l.opts.Optimize {
			return foldLogic(v), tyBool, nil
		}
		return v, tyBool, nil
	case ast.UnaryNeg:
		return nil, tyUnknown, lowerErr(diag.LowUnsupportedOperator, e.Span, "negation is not defined for u32")
	}
	return nil, tyUnknown, lowerErr(diag.LowUnsupportedOperator, e.Span, "operator %s has no shell translation", u.Op)
}

// identityMethods convert between string representations that are all the
// same word in shell.
var identityMethods = map[string]struct{}{
	"to_string": {},
	"to_owned":  {},
	"clone":     {},
	"as_str":    {},
	"into":      {},
}

func (l *lowerer) lowerMethod(e *ast.Expr) (*Value, valueType, error) {
	m := e.MethodCall()
	if _, ok := identityMethods[m.Method]; !ok || len(m.Args) != 0 {
		return nil, tyUnknown, lowerErr(diag.LowUnsupportedMethod, e.Span, "method .%s() has no shell translation", m.Method)
	}
	v, t, err := l.lowerWord(m.Receiver)
	if err != nil {
		return nil, tyUnknown, err
	}
	if m.Method == "to_string" && t == tyU32 {
		t = tyStr
	}
	return v, t, nil
}

// IsShellName reports whether s is a portable shell variable name.
func IsShellName(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
