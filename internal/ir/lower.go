package ir

import (
	"fmt"

	"rash/internal/ast"
	"rash/internal/diag"
	"rash/internal/source"
)

// Options control lowering.
type Options struct {
	// Optimize enables constant folding and pruning of constant branches.
	Optimize bool
}

// Lower translates a validated program into shell IR. The first construct
// without a translation is reported as *LoweringError.
func Lower(prog *ast.Program, opts Options) (*Module, error) {
	l := &lowerer{
		prog:      prog,
		opts:      opts,
		fnEffects: make(map[string]EffectSet, len(prog.Functions)),
	}
	entry := prog.EntryPoint
	if entry == "" {
		entry = ast.DefaultEntryPoint
	}
	l.names = newShellNames(prog, entry)
	mod := &Module{Entry: entry, Functions: make([]*Node, 0, len(prog.Functions))}
	for _, fn := range prog.Functions {
		mod.Effects |= l.functionEffects(fn.Name, map[string]bool{})
	}
	for _, fn := range prog.Functions {
		node, err := l.lowerFunction(fn)
		if err != nil {
			return nil, err
		}
		mod.Functions = append(mod.Functions, node)
	}
	return mod, nil
}

type lowerer struct {
	prog      *ast.Program
	opts      Options
	fnEffects map[string]EffectSet
	names     *shellNames

	fn       *ast.Function
	scope    scope
	loops    int
	counters int
	// pending collects effects of the values lowered for the current statement.
	pending EffectSet
}

func (l *lowerer) lowerFunction(fn *ast.Function) (*Node, error) {
	l.fn = fn
	l.scope = scope{}
	l.loops = 0
	l.counters = 0
	l.scope.push()
	params := make([]string, 0, len(fn.Params))
	numeric := make([]bool, 0, len(fn.Params))
	for _, p := range fn.Params {
		t := typeOf(p.Type)
		params = append(params, l.bind(p.Name, t))
		numeric = append(numeric, t == tyU32)
	}
	body, err := l.lowerBlock(fn.Body, !fn.ReturnType.IsVoid())
	if err != nil {
		return nil, err
	}
	l.scope.pop()
	return mk(NodeFunction, fn.Span, &FunctionNode{
		Name:    fn.Name,
		Params:  params,
		Numeric: numeric,
		Body:    body,
		Effects: l.fnEffects[fn.Name],
	}), nil
}

// lowerBlock lowers b in a fresh scope. When tail is set, the last statement
// produces the function's value.
func (l *lowerer) lowerBlock(b *ast.Block, tail bool) (*Node, error) {
	l.scope.push()
	defer l.scope.pop()
	return l.lowerStmts(b, tail)
}

func (l *lowerer) lowerStmts(b *ast.Block, tail bool) (*Node, error) {
	sp := source.NoSpan
	if b != nil {
		sp = b.Span
	}
	if b.Empty() {
		return mk(NodeNoop, sp, &NoopNode{}), nil
	}
	var nodes []*Node
	for i, s := range b.Stmts {
		out, err := l.lowerStmt(s, tail && i == len(b.Stmts)-1)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, out...)
	}
	switch len(nodes) {
	case 0:
		return mk(NodeNoop, sp, &NoopNode{}), nil
	case 1:
		return nodes[0], nil
	}
	return mk(NodeSequence, sp, &SequenceNode{Nodes: nodes}), nil
}

func (l *lowerer) lowerStmt(s *ast.Stmt, tail bool) ([]*Node, error) {
	switch s.Kind {
	case ast.StmtLet:
		return l.lowerLet(s)
	case ast.StmtIf:
		return l.lowerIf(s, tail)
	case ast.StmtMatch:
		return l.lowerMatch(s, tail)
	case ast.StmtFor:
		return l.lowerFor(s)
	case ast.StmtWhile:
		return l.lowerWhile(s)
	case ast.StmtBreak:
		if l.loops == 0 {
			return nil, lowerErr(diag.LowBreakOutsideLoop, s.Span, "break outside of a loop")
		}
		return []*Node{mk(NodeBreak, s.Span, &BreakNode{})}, nil
	case ast.StmtContinue:
		if l.loops == 0 {
			return nil, lowerErr(diag.LowBreakOutsideLoop, s.Span, "continue outside of a loop")
		}
		return []*Node{mk(NodeContinue, s.Span, &ContinueNode{})}, nil
	case ast.StmtReturn:
		return l.lowerReturn(s)
	case ast.StmtExpr:
		e := s.ExprStmt().Expr
		if tail && !isOutputMacro(e) && !isExitCall(e) {
			return l.lowerTailExpr(e)
		}
		return l.lowerExprStmt(e)
	}
	return nil, lowerErr(diag.LowUnsupportedStmt, s.Span, "statement kind %s has no shell translation", s.Kind)
}

func (l *lowerer) lowerLet(s *ast.Stmt) ([]*Node, error) {
	d := s.Let()
	var prev binding
	if d.Reassign {
		var ok bool
		if prev, ok = l.scope.lookup(d.Name); !ok {
			return nil, lowerErr(diag.LowUndefinedVariable, d.NameSpan, "assignment to undeclared variable %q", d.Name)
		}
	}
	l.pending = Pure
	v, vt, err := l.lowerValue(d.Value)
	if err != nil {
		return nil, err
	}
	if d.Type != nil {
		// u32 variables reach $(( )), so only values typed u32 may fill them
		if declared := typeOf(d.Type); declared != tyUnknown && declared != vt {
			return nil, lowerErr(diag.LowTypeMismatch, d.Value.Span,
				"cannot initialise %q of type %s with a %s value", d.Name, d.Type, vt)
		}
		vt = typeOf(d.Type)
	}
	var name string
	if d.Reassign {
		if prev.t != tyUnknown && prev.t != vt {
			return nil, lowerErr(diag.LowTypeMismatch, d.Value.Span,
				"cannot assign a %s value to %q of type %s", vt, d.Name, prev.t)
		}
		name = prev.shell
	} else {
		name = l.bind(d.Name, vt)
	}
	eff := l.pending
	if v.IsCondition() {
		return []*Node{mk(NodeIf, s.Span, &IfNode{
			Cond: v,
			Then: mk(NodeLet, s.Span, &LetNode{Name: name, Value: Bool(true), Effects: eff}),
			Else: mk(NodeLet, s.Span, &LetNode{Name: name, Value: Bool(false), Effects: eff}),
		})}, nil
	}
	return []*Node{mk(NodeLet, s.Span, &LetNode{
		Name:    name,
		Value:   v,
		Effects: eff,
		Numeric: vt == tyU32 && v.Kind == ValCommandSubst,
	})}, nil
}

func (l *lowerer) lowerCond(e *ast.Expr) (*Value, error) {
	v, t, err := l.lowerValue(e)
	if err != nil {
		return nil, err
	}
	if t != tyBool {
		return nil, lowerErr(diag.LowTypeMismatch, e.Span, "condition must be bool, found %s", t)
	}
	return v, nil
}

func (l *lowerer) lowerIf(s *ast.Stmt, tail bool) ([]*Node, error) {
	d := s.If()
	cond, err := l.lowerCond(d.Cond)
	if err != nil {
		return nil, err
	}
	then, err := l.lowerBlock(d.Then, tail)
	if err != nil {
		return nil, err
	}
	var els *Node
	if d.Else != nil {
		if els, err = l.lowerBlock(d.Else, tail); err != nil {
			return nil, err
		}
	}
	if l.opts.Optimize && cond.Kind == ValBool {
		if cond.Bool().Value {
			return []*Node{then}, nil
		}
		if els != nil {
			return []*Node{els}, nil
		}
		return nil, nil
	}
	return []*Node{mk(NodeIf, s.Span, &IfNode{Cond: cond, Then: then, Else: els})}, nil
}

func (l *lowerer) lowerMatch(s *ast.Stmt, tail bool) ([]*Node, error) {
	d := s.Match()
	l.pending = Pure
	scrut, st, err := l.lowerWord(d.Scrutinee)
	if err != nil {
		return nil, err
	}
	var out []*Node
	if scrut.Kind == ValCommandSubst {
		// evaluate the command once; arms may bind the scrutinee again
		tmp := l.newCounter()
		out = append(out, mk(NodeLet, d.Scrutinee.Span, &LetNode{
			Name:    tmp,
			Value:   scrut,
			Effects: l.pending,
			Numeric: st == tyU32,
		}))
		scrut = Var(tmp)
	}
	arms := make([]CaseArm, 0, len(d.Arms))
	for _, arm := range d.Arms {
		pat, binding, err := l.lowerCasePattern(arm.Pattern, st)
		if err != nil {
			return nil, err
		}
		l.scope.push()
		shell := ""
		if binding != "" {
			shell = l.bind(binding, st)
		}
		body, err := l.lowerStmts(arm.Body, tail)
		l.scope.pop()
		if err != nil {
			return nil, err
		}
		if shell != "" {
			bind := mk(NodeLet, arm.Pattern.Span, &LetNode{Name: shell, Value: scrut})
			body = prepend(bind, body)
		}
		arms = append(arms, CaseArm{Pattern: pat, Body: body})
	}
	return append(out, mk(NodeCase, s.Span, &CaseNode{Scrutinee: scrut, Arms: arms})), nil
}

func prepend(first, rest *Node) *Node {
	switch rest.Kind {
	case NodeNoop:
		return first
	case NodeSequence:
		nodes := append([]*Node{first}, rest.Sequence().Nodes...)
		return mk(NodeSequence, rest.Span, &SequenceNode{Nodes: nodes})
	}
	return mk(NodeSequence, rest.Span, &SequenceNode{Nodes: []*Node{first, rest}})
}

func (l *lowerer) lowerCasePattern(p *ast.Pattern, st valueType) (CasePattern, string, error) {
	switch p.Kind {
	case ast.PatLiteral:
		lit := p.Literal
		var text string
		var lt valueType
		switch lit.Kind {
		case ast.LitU32:
			text, lt = fmt.Sprint(lit.U32), tyU32
		case ast.LitBool:
			text, lt = fmt.Sprint(lit.Bool), tyBool
		case ast.LitStr:
			text, lt = lit.Str, tyStr
		}
		if st != tyUnknown && lt != st {
			return CasePattern{}, "", lowerErr(diag.LowTypeMismatch, p.Span,
				"%s pattern cannot match a %s value", lt, st)
		}
		return CasePattern{Literal: text}, "", nil
	case ast.PatWildcard:
		return CasePattern{Wildcard: true}, "", nil
	case ast.PatVariable:
		return CasePattern{Wildcard: true}, p.Name, nil
	case ast.PatTuple, ast.PatStruct:
		return CasePattern{}, "", lowerErr(diag.LowUnsupportedPattern, p.Span,
			"%s patterns have no shell translation", p.Kind)
	}
	return CasePattern{}, "", lowerErr(diag.LowUnsupportedPattern, p.Span, "unknown pattern kind %s", p.Kind)
}

// ReservedPrefix starts every name lowering invents.
const ReservedPrefix = "_rash_"

func (l *lowerer) newCounter() string {
	name := fmt.Sprintf("%s%s_%d", ReservedPrefix, l.fn.Name, l.counters)
	l.counters++
	return name
}

func (l *lowerer) lowerFor(s *ast.Stmt) ([]*Node, error) {
	d := s.For()
	var name string
	switch d.Pattern.Kind {
	case ast.PatVariable:
		name = d.Pattern.Name
	case ast.PatWildcard:
	case ast.PatLiteral, ast.PatTuple, ast.PatStruct:
		return nil, lowerErr(diag.LowUnsupportedPattern, d.Pattern.Span,
			"for loops bind a single variable, found a %s pattern", d.Pattern.Kind)
	}
	counter := l.newCounter()
	loop := &ForNode{Var: counter, Counter: counter, Bound: d.MaxIterations}
	var elem valueType
	switch d.Iter.Kind {
	case ast.ExprRange:
		r := d.Iter.Range()
		start, st, err := l.lowerWord(r.Start)
		if err != nil {
			return nil, err
		}
		end, et, err := l.lowerWord(r.End)
		if err != nil {
			return nil, err
		}
		if st != tyU32 || et != tyU32 {
			return nil, lowerErr(diag.LowTypeMismatch, d.Iter.Span, "range bounds must be u32, found %s and %s", st, et)
		}
		loop.Start, loop.End, loop.Inclusive = start, end, r.Inclusive
		elem = tyU32
	case ast.ExprArray:
		elems := d.Iter.Data.(*ast.ArrayData).Elems
		loop.Items = make([]*Value, 0, len(elems))
		for i, e := range elems {
			v, t, err := l.lowerWord(e)
			if err != nil {
				return nil, err
			}
			if i > 0 && t != elem {
				return nil, lowerErr(diag.LowTypeMismatch, e.Span, "array elements must share one type, found %s and %s", elem, t)
			}
			if t == tyU32 && v.Kind == ValCommandSubst {
				return nil, lowerErr(diag.LowUnsupportedExpr, e.Span, "bind the result of %s to a variable before iterating over it", v.CommandSubst().Command.Exec().Command)
			}
			elem = t
			loop.Items = append(loop.Items, v)
		}
	case ast.ExprLiteral, ast.ExprVariable, ast.ExprCall, ast.ExprBinary, ast.ExprUnary,
		ast.ExprMethodCall, ast.ExprIndex, ast.ExprTry, ast.ExprBlock, ast.ExprMacro:
		return nil, lowerErr(diag.LowUnsupportedExpr, d.Iter.Span,
			"for loops iterate over a range or an array literal, found %s", d.Iter.Kind)
	}
	l.scope.push()
	if name != "" {
		loop.Var = l.bind(name, elem)
	}
	l.loops++
	body, err := l.lowerStmts(d.Body, false)
	l.loops--
	l.scope.pop()
	if err != nil {
		return nil, err
	}
	loop.Body = body
	return []*Node{mk(NodeFor, s.Span, loop)}, nil
}

func (l *lowerer) lowerWhile(s *ast.Stmt) ([]*Node, error) {
	d := s.While()
	cond, err := l.lowerCond(d.Cond)
	if err != nil {
		return nil, err
	}
	l.loops++
	body, err := l.lowerBlock(d.Body, false)
	l.loops--
	if err != nil {
		return nil, err
	}
	if l.opts.Optimize && cond.Kind == ValBool && !cond.Bool().Value {
		return nil, nil
	}
	return []*Node{mk(NodeWhile, s.Span, &WhileNode{Cond: cond, Body: body, Bound: d.MaxIterations})}, nil
}

func (l *lowerer) lowerReturn(s *ast.Stmt) ([]*Node, error) {
	value := s.Return().Value
	ret := mk(NodeReturn, s.Span, &ReturnNode{})
	voidFn := l.fn.ReturnType.IsVoid()
	switch {
	case value == nil && voidFn:
		return []*Node{ret}, nil
	case value == nil:
		return nil, lowerErr(diag.LowTypeMismatch, s.Span, "bare return in function %q, which returns %s", l.fn.Name, l.fn.ReturnType)
	case voidFn:
		return nil, lowerErr(diag.LowTypeMismatch, value.Span, "function %q has no return type but returns a value", l.fn.Name)
	}
	out, err := l.lowerTailExpr(value)
	if err != nil {
		return nil, err
	}
	return append(out, ret), nil
}

// lowerTailExpr writes the value of e to stdout; this is how functions
// return values to a "$(f ...)" call site.
func (l *lowerer) lowerTailExpr(e *ast.Expr) ([]*Node, error) {
	v, t, err := l.lowerValue(e)
	if err != nil {
		return nil, err
	}
	if want := typeOf(l.fn.ReturnType); want != tyUnknown && want != t {
		return nil, lowerErr(diag.LowTypeMismatch, e.Span,
			"function %q returns %s but produces a %s value", l.fn.Name, l.fn.ReturnType, t)
	}
	return []*Node{l.echoValue(v, e.Span)}, nil
}

func (l *lowerer) echoValue(v *Value, sp source.Span) *Node {
	switch {
	case v.IsCondition():
		return mk(NodeIf, sp, &IfNode{
			Cond: v,
			Then: mk(NodeEcho, sp, &EchoNode{Value: Bool(true), Newline: true}),
			Else: mk(NodeEcho, sp, &EchoNode{Value: Bool(false), Newline: true}),
		})
	case v.Kind == ValCommandSubst:
		// the callee already prints its result
		return v.CommandSubst().Command
	}
	return mk(NodeEcho, sp, &EchoNode{Value: v, Newline: true})
}

func isOutputMacro(e *ast.Expr) bool {
	return e.Kind == ast.ExprMacro && e.Macro().Name != "format"
}

func isExitCall(e *ast.Expr) bool {
	return e.Kind == ast.ExprCall && LookupBuiltin(e.Call().Name) == BuiltinExit
}

func (l *lowerer) lowerExprStmt(e *ast.Expr) ([]*Node, error) {
	switch e.Kind {
	case ast.ExprCall:
		n, err := l.lowerCallStmt(e)
		if err != nil {
			return nil, err
		}
		return []*Node{n}, nil
	case ast.ExprMacro:
		n, err := l.lowerMacroStmt(e)
		if err != nil {
			return nil, err
		}
		return []*Node{n}, nil
	case ast.ExprMethodCall:
		return nil, lowerErr(diag.LowUnsupportedMethod, e.Span, "method call result is unused")
	case ast.ExprLiteral, ast.ExprVariable, ast.ExprBinary, ast.ExprUnary, ast.ExprRange,
		ast.ExprArray, ast.ExprIndex, ast.ExprTry:
		return nil, lowerErr(diag.LowUnsupportedStmt, e.Span, "%s expression used as a statement has no effect", e.Kind)
	case ast.ExprBlock:
		return nil, lowerErr(diag.LowUnsupportedExpr, e.Span, "block expressions have no shell translation")
	}
	return nil, lowerErr(diag.LowUnsupportedExpr, e.Span, "expression kind %s has no shell translation", e.Kind)
}

func (l *lowerer) lowerCallStmt(e *ast.Expr) (*Node, error) {
	call := e.Call()
	switch LookupBuiltin(call.Name) {
	case BuiltinExit:
		if len(call.Args) != 1 {
			return nil, lowerErr(diag.LowBadBuiltinCall, e.Span, "exit takes exactly one argument")
		}
		code, t, err := l.lowerWord(call.Args[0])
		if err != nil {
			return nil, err
		}
		if t != tyU32 {
			return nil, lowerErr(diag.LowTypeMismatch, call.Args[0].Span, "exit code must be u32, found %s", t)
		}
		return mk(NodeExit, e.Span, &ExitNode{Code: code}), nil
	case BuiltinArg, BuiltinArgs, BuiltinArgCount, BuiltinEnv:
		return nil, lowerErr(diag.LowBadBuiltinCall, e.Span, "result of %s() is unused", call.Name)
	case NotBuiltin:
		n, _, err := l.lowerExec(e)
		return n, err
	}
	return nil, lowerErr(diag.LowBadBuiltinCall, e.Span, "unknown builtin %s", call.Name)
}

func (l *lowerer) lowerMacroStmt(e *ast.Expr) (*Node, error) {
	m := e.Macro()
	echo := &EchoNode{}
	switch m.Name {
	case "println":
		echo.Newline = true
	case "print":
	case "eprintln":
		echo.Stream, echo.Newline = Stderr, true
	case "eprint":
		echo.Stream = Stderr
	case "format":
		return nil, lowerErr(diag.LowUnsupportedStmt, e.Span, "format! result is unused")
	default:
		return nil, lowerErr(diag.LowUnsupportedExpr, e.Span, "macro %s! has no shell translation", m.Name)
	}
	v, err := l.lowerFormat(e)
	if err != nil {
		return nil, err
	}
	echo.Value = v
	return mk(NodeEcho, e.Span, echo), nil
}
