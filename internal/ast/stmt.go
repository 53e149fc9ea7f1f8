package ast

import "rash/internal/source"

// StmtKind enumerates statement kinds.
type StmtKind uint8

const (
	StmtLet StmtKind = iota
	StmtIf
	StmtMatch
	StmtFor
	StmtWhile
	StmtBreak
	StmtContinue
	StmtReturn
	StmtExpr
)

func (k StmtKind) String() string {
	switch k {
	case StmtLet:
		return "Let"
	case StmtIf:
		return "If"
	case StmtMatch:
		return "Match"
	case StmtFor:
		return "For"
	case StmtWhile:
		return "While"
	case StmtBreak:
		return "Break"
	case StmtContinue:
		return "Continue"
	case StmtReturn:
		return "Return"
	case StmtExpr:
		return "Expr"
	default:
		return "Unknown"
	}
}

type Stmt struct {
	Kind StmtKind
	Span source.Span
	Data StmtData
}

// StmtData is the interface for statement-specific data.
type StmtData interface {
	stmtData()
}

// LetData holds data for StmtLet. Reassign marks `x = e` and `x += e`
// forms, which rebind an existing variable.
type LetData struct {
	Name     string
	NameSpan source.Span
	Type     *Type // nil when not annotated
	Value    *Expr
	Mutable  bool
	Reassign bool
}

func (LetData) stmtData() {}

// IfData holds data for StmtIf. `else if` chains nest an If inside Else.
type IfData struct {
	Cond *Expr
	Then *Block
	Else *Block // nil when there is no else branch
}

func (IfData) stmtData() {}

type MatchArm struct {
	Pattern *Pattern
	Body    *Block
	Span    source.Span
}

type MatchData struct {
	Scrutinee *Expr
	Arms      []MatchArm
}

func (MatchData) stmtData() {}

// ForData holds data for StmtFor. MaxIterations comes from #[max_iterations(N)].
type ForData struct {
	Pattern       *Pattern
	Iter          *Expr
	Body          *Block
	MaxIterations *uint32
}

func (ForData) stmtData() {}

// WhileData holds data for StmtWhile; `loop {}` is parsed as `while true {}`.
type WhileData struct {
	Cond          *Expr
	Body          *Block
	MaxIterations *uint32
}

func (WhileData) stmtData() {}

type BreakData struct{}

func (BreakData) stmtData() {}

type ContinueData struct{}

func (ContinueData) stmtData() {}

type ReturnData struct {
	Value *Expr // nil for bare `return`
}

func (ReturnData) stmtData() {}

type ExprStmtData struct {
	Expr *Expr
}

func (ExprStmtData) stmtData() {}

// Let, If, ... are typed accessors; they panic when Kind does not match.
func (s *Stmt) Let() *LetData           { return s.Data.(*LetData) }
func (s *Stmt) If() *IfData             { return s.Data.(*IfData) }
func (s *Stmt) Match() *MatchData       { return s.Data.(*MatchData) }
func (s *Stmt) For() *ForData           { return s.Data.(*ForData) }
func (s *Stmt) While() *WhileData       { return s.Data.(*WhileData) }
func (s *Stmt) Return() *ReturnData     { return s.Data.(*ReturnData) }
func (s *Stmt) ExprStmt() *ExprStmtData { return s.Data.(*ExprStmtData) }
