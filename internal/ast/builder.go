package ast

// Constructors for programmatically built trees. Nodes built here carry
// empty spans.

func NewStr(s string) *Expr {
	return &Expr{Kind: ExprLiteral, Data: &LiteralData{Kind: LitStr, Str: s}}
}

func NewU32(v uint32) *Expr {
	return &Expr{Kind: ExprLiteral, Data: &LiteralData{Kind: LitU32, U32: v}}
}

func NewBool(v bool) *Expr {
	return &Expr{Kind: ExprLiteral, Data: &LiteralData{Kind: LitBool, Bool: v}}
}

func NewVar(name string) *Expr {
	return &Expr{Kind: ExprVariable, Data: &VariableData{Name: name}}
}

func NewCall(name string, args ...*Expr) *Expr {
	return &Expr{Kind: ExprCall, Data: &CallData{Name: name, Args: args}}
}

func NewBinary(op BinaryOp, l, r *Expr) *Expr {
	return &Expr{Kind: ExprBinary, Data: &BinaryData{Op: op, Left: l, Right: r}}
}

func NewUnary(op UnaryOp, operand *Expr) *Expr {
	return &Expr{Kind: ExprUnary, Data: &UnaryData{Op: op, Operand: operand}}
}

func NewRange(start, end *Expr, inclusive bool) *Expr {
	return &Expr{Kind: ExprRange, Data: &RangeData{Start: start, End: end, Inclusive: inclusive}}
}

func NewMacro(name, format string, args ...*Expr) *Expr {
	return &Expr{Kind: ExprMacro, Data: &MacroData{Name: name, Format: format, Args: args}}
}

func NewBlock(stmts ...*Stmt) *Block {
	return &Block{Stmts: stmts}
}

func NewLet(name string, value *Expr) *Stmt {
	return &Stmt{Kind: StmtLet, Data: &LetData{Name: name, Value: value}}
}

func NewExprStmt(e *Expr) *Stmt {
	return &Stmt{Kind: StmtExpr, Data: &ExprStmtData{Expr: e}}
}

func NewIf(cond *Expr, then, els *Block) *Stmt {
	return &Stmt{Kind: StmtIf, Data: &IfData{Cond: cond, Then: then, Else: els}}
}

func NewWhile(cond *Expr, body *Block, bound *uint32) *Stmt {
	return &Stmt{Kind: StmtWhile, Data: &WhileData{Cond: cond, Body: body, MaxIterations: bound}}
}

func NewFor(varName string, iter *Expr, body *Block) *Stmt {
	return &Stmt{Kind: StmtFor, Data: &ForData{
		Pattern: &Pattern{Kind: PatVariable, Name: varName},
		Iter:    iter,
		Body:    body,
	}}
}

func NewReturn(v *Expr) *Stmt {
	return &Stmt{Kind: StmtReturn, Data: &ReturnData{Value: v}}
}

func NewBreak() *Stmt    { return &Stmt{Kind: StmtBreak, Data: &BreakData{}} }
func NewContinue() *Stmt { return &Stmt{Kind: StmtContinue, Data: &ContinueData{}} }

func NewFunction(name string, params []Param, ret *Type, body ...*Stmt) *Function {
	if ret == nil {
		ret = VoidType
	}
	return &Function{Name: name, Params: params, ReturnType: ret, Body: NewBlock(body...)}
}

// NewProgram builds a program whose entry point is DefaultEntryPoint.
func NewProgram(fns ...*Function) *Program {
	return &Program{Functions: fns, EntryPoint: DefaultEntryPoint}
}
