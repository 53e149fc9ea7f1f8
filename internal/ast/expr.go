package ast

import "rash/internal/source"

// MaxNestingDepth bounds expression nesting; deeper trees are rejected by validation.
const MaxNestingDepth = 30

// ExprKind enumerates expression kinds.
type ExprKind uint8

const (
	ExprLiteral ExprKind = iota
	ExprVariable
	ExprCall
	ExprBinary
	ExprUnary
	ExprMethodCall
	ExprRange
	ExprArray
	ExprIndex
	ExprTry
	ExprBlock
	// ExprMacro is one of the allow-listed output macros (println!, print!, eprintln!).
	ExprMacro
)

func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprVariable:
		return "Variable"
	case ExprCall:
		return "Call"
	case ExprBinary:
		return "Binary"
	case ExprUnary:
		return "Unary"
	case ExprMethodCall:
		return "MethodCall"
	case ExprRange:
		return "Range"
	case ExprArray:
		return "Array"
	case ExprIndex:
		return "Index"
	case ExprTry:
		return "Try"
	case ExprBlock:
		return "Block"
	case ExprMacro:
		return "Macro"
	default:
		return "Unknown"
	}
}

type Expr struct {
	Kind ExprKind
	Span source.Span
	Data ExprData
}

// ExprData is the interface for expression-specific data.
type ExprData interface {
	exprData()
}

// LiteralKind enumerates literal value kinds.
type LiteralKind uint8

const (
	LitU32 LiteralKind = iota
	LitBool
	LitStr
)

type LiteralData struct {
	Kind LiteralKind
	U32  uint32
	Bool bool
	Str  string // NFC-normalised
}

func (LiteralData) exprData() {}

type VariableData struct {
	Name string
}

func (VariableData) exprData() {}

// CallData holds data for ExprCall. Paths are joined with "::".
type CallData struct {
	Name     string
	NameSpan source.Span
	Args     []*Expr
}

func (CallData) exprData() {}

type BinaryData struct {
	Op    BinaryOp
	Left  *Expr
	Right *Expr
}

func (BinaryData) exprData() {}

type UnaryData struct {
	Op      UnaryOp
	Operand *Expr
}

func (UnaryData) exprData() {}

type MethodCallData struct {
	Receiver *Expr
	Method   string
	Args     []*Expr
}

func (MethodCallData) exprData() {}

type RangeData struct {
	Start     *Expr
	End       *Expr
	Inclusive bool
}

func (RangeData) exprData() {}

type ArrayData struct {
	Elems []*Expr
}

func (ArrayData) exprData() {}

type IndexData struct {
	Object *Expr
	Index  *Expr
}

func (IndexData) exprData() {}

type TryData struct {
	Operand *Expr
}

func (TryData) exprData() {}

type BlockData struct {
	Block *Block
}

func (BlockData) exprData() {}

// MacroData holds data for ExprMacro. Format is the decoded format string.
type MacroData struct {
	Name   string
	Format string
	Args   []*Expr
}

func (MacroData) exprData() {}

func (e *Expr) Literal() *LiteralData       { return e.Data.(*LiteralData) }
func (e *Expr) Variable() *VariableData     { return e.Data.(*VariableData) }
func (e *Expr) Call() *CallData             { return e.Data.(*CallData) }
func (e *Expr) Binary() *BinaryData         { return e.Data.(*BinaryData) }
func (e *Expr) Unary() *UnaryData           { return e.Data.(*UnaryData) }
func (e *Expr) MethodCall() *MethodCallData { return e.Data.(*MethodCallData) }
func (e *Expr) Range() *RangeData           { return e.Data.(*RangeData) }
func (e *Expr) Macro() *MacroData           { return e.Data.(*MacroData) }

// IsStringLiteral reports whether e is a string literal.
func (e *Expr) IsStringLiteral() bool {
	return e != nil && e.Kind == ExprLiteral && e.Literal().Kind == LitStr
}

// IsBoolLiteral reports whether e is the literal v.
func (e *Expr) IsBoolLiteral(v bool) bool {
	return e != nil && e.Kind == ExprLiteral && e.Literal().Kind == LitBool && e.Literal().Bool == v
}

// Children returns the direct sub-expressions of e in source order.
func (e *Expr) Children() []*Expr {
	switch e.Kind {
	case ExprLiteral, ExprVariable:
		return nil
	case ExprCall:
		return e.Call().Args
	case ExprBinary:
		b := e.Binary()
		return []*Expr{b.Left, b.Right}
	case ExprUnary:
		return []*Expr{e.Unary().Operand}
	case ExprMethodCall:
		m := e.MethodCall()
		return append([]*Expr{m.Receiver}, m.Args...)
	case ExprRange:
		r := e.Range()
		return []*Expr{r.Start, r.End}
	case ExprArray:
		return e.Data.(*ArrayData).Elems
	case ExprIndex:
		ix := e.Data.(*IndexData)
		return []*Expr{ix.Object, ix.Index}
	case ExprTry:
		return []*Expr{e.Data.(*TryData).Operand}
	case ExprBlock:
		return blockExprs(e.Data.(*BlockData).Block)
	case ExprMacro:
		return e.Macro().Args
	}
	return nil
}

// NestingDepth is 0 for leaves and 1 + the deepest child otherwise.
func (e *Expr) NestingDepth() int {
	if e == nil {
		return 0
	}
	switch e.Kind {
	case ExprLiteral, ExprVariable:
		return 0
	case ExprCall, ExprBinary, ExprUnary, ExprMethodCall, ExprRange,
		ExprArray, ExprIndex, ExprTry, ExprBlock, ExprMacro:
		deepest := 0
		for _, c := range e.Children() {
			if d := c.NestingDepth(); d > deepest {
				deepest = d
			}
		}
		return 1 + deepest
	}
	return 0
}

// blockExprs collects the top-level expressions of every statement in b.
func blockExprs(b *Block) []*Expr {
	if b == nil {
		return nil
	}
	var out []*Expr
	for _, s := range b.Stmts {
		out = append(out, s.Exprs()...)
	}
	return out
}

// Exprs returns the expressions held directly by s (not those of nested blocks).
func (s *Stmt) Exprs() []*Expr {
	switch s.Kind {
	case StmtLet:
		return []*Expr{s.Let().Value}
	case StmtIf:
		return []*Expr{s.If().Cond}
	case StmtMatch:
		return []*Expr{s.Match().Scrutinee}
	case StmtFor:
		return []*Expr{s.For().Iter}
	case StmtWhile:
		return []*Expr{s.While().Cond}
	case StmtBreak, StmtContinue:
		return nil
	case StmtReturn:
		if v := s.Return().Value; v != nil {
			return []*Expr{v}
		}
		return nil
	case StmtExpr:
		return []*Expr{s.ExprStmt().Expr}
	}
	return nil
}

// Blocks returns the nested blocks of s in source order.
func (s *Stmt) Blocks() []*Block {
	switch s.Kind {
	case StmtIf:
		d := s.If()
		if d.Else != nil {
			return []*Block{d.Then, d.Else}
		}
		return []*Block{d.Then}
	case StmtMatch:
		arms := s.Match().Arms
		out := make([]*Block, 0, len(arms))
		for _, a := range arms {
			out = append(out, a.Body)
		}
		return out
	case StmtFor:
		return []*Block{s.For().Body}
	case StmtWhile:
		return []*Block{s.While().Body}
	case StmtLet, StmtBreak, StmtContinue, StmtReturn, StmtExpr:
		return nil
	}
	return nil
}
