package ir

import "rash/internal/source"

// NodeKind enumerates shell IR statements.
type NodeKind uint8

const (
	NodeLet NodeKind = iota
	NodeIf
	NodeSequence
	NodeFunction
	NodeEcho
	NodeFor
	NodeWhile
	NodeBreak
	NodeContinue
	NodeCase
	NodeExit
	NodeExec
	NodeReturn
	NodeNoop
)

func (k NodeKind) String() string {
	switch k {
	case NodeLet:
		return "Let"
	case NodeIf:
		return "If"
	case NodeSequence:
		return "Sequence"
	case NodeFunction:
		return "Function"
	case NodeEcho:
		return "Echo"
	case NodeFor:
		return "For"
	case NodeWhile:
		return "While"
	case NodeBreak:
		return "Break"
	case NodeContinue:
		return "Continue"
	case NodeCase:
		return "Case"
	case NodeExit:
		return "Exit"
	case NodeExec:
		return "Exec"
	case NodeReturn:
		return "Return"
	case NodeNoop:
		return "Noop"
	default:
		return "Unknown"
	}
}

type Node struct {
	Kind NodeKind
	Span source.Span
	Data NodeData
}

// NodeData is the interface for node-specific data.
type NodeData interface {
	nodeData()
}

type LetNode struct {
	Name    string
	Value   *Value
	Effects EffectSet
	// Numeric lets hold command output that must be a decimal number.
	Numeric bool
}

// IfNode has a nil Else when there is no else branch.
type IfNode struct {
	Cond *Value
	Then *Node
	Else *Node
}

type SequenceNode struct {
	Nodes []*Node
}

type FunctionNode struct {
	Name   string
	Params []string
	// Numeric marks the u32 parameters, parallel to Params.
	Numeric []bool
	Body    *Node
	// Effects is the union of everything the body may do, callees included.
	Effects EffectSet
}

// EchoStream selects where an Echo writes.
type EchoStream uint8

const (
	Stdout EchoStream = iota
	Stderr
)

// EchoNode prints Value. Newline is false for print!/eprint!.
type EchoNode struct {
	Value   *Value
	Stream  EchoStream
	Newline bool
}

// ForNode iterates Var over Items, or over the range Start..End when Items
// is nil. Counter is the hidden loop counter used for ranges.
type ForNode struct {
	Var       string
	Items     []*Value
	Start     *Value
	End       *Value
	Inclusive bool
	Counter   string
	Body      *Node
	Bound     *uint32
}

// IsRange reports whether the loop counts over a numeric range.
func (f *ForNode) IsRange() bool { return f.Items == nil }

type WhileNode struct {
	Cond  *Value
	Body  *Node
	Bound *uint32
}

type BreakNode struct{}

type ContinueNode struct{}

// CasePattern is a literal word or the catch-all `*`.
type CasePattern struct {
	Literal  string
	Wildcard bool
}

type CaseArm struct {
	Pattern CasePattern
	Body    *Node
}

type CaseNode struct {
	Scrutinee *Value
	Arms      []CaseArm
}

type ExitNode struct {
	Code *Value
}

// ExecNode runs a shell function or an allow-listed command.
type ExecNode struct {
	Command string
	Args    []*Value
	Effects EffectSet
	// User marks calls to functions defined in the program.
	User bool
}

// ReturnNode leaves the current function with status 0. A returned value
// has already been written by a preceding Echo.
type ReturnNode struct{}

type NoopNode struct{}

func (LetNode) nodeData()      {}
func (IfNode) nodeData()       {}
func (SequenceNode) nodeData() {}
func (FunctionNode) nodeData() {}
func (EchoNode) nodeData()     {}
func (ForNode) nodeData()      {}
func (WhileNode) nodeData()    {}
func (BreakNode) nodeData()    {}
func (ContinueNode) nodeData() {}
func (CaseNode) nodeData()     {}
func (ExitNode) nodeData()     {}
func (ExecNode) nodeData()     {}
func (ReturnNode) nodeData()   {}
func (NoopNode) nodeData()     {}

func (n *Node) Let() *LetNode           { return n.Data.(*LetNode) }
func (n *Node) If() *IfNode             { return n.Data.(*IfNode) }
func (n *Node) Sequence() *SequenceNode { return n.Data.(*SequenceNode) }
func (n *Node) Function() *FunctionNode { return n.Data.(*FunctionNode) }
func (n *Node) Echo() *EchoNode         { return n.Data.(*EchoNode) }
func (n *Node) For() *ForNode           { return n.Data.(*ForNode) }
func (n *Node) While() *WhileNode       { return n.Data.(*WhileNode) }
func (n *Node) Case() *CaseNode         { return n.Data.(*CaseNode) }
func (n *Node) Exit() *ExitNode         { return n.Data.(*ExitNode) }
func (n *Node) Exec() *ExecNode         { return n.Data.(*ExecNode) }

func mk(kind NodeKind, sp source.Span, data NodeData) *Node {
	return &Node{Kind: kind, Span: sp, Data: data}
}

func NewLet(name string, v *Value, eff EffectSet) *Node {
	return mk(NodeLet, source.NoSpan, &LetNode{Name: name, Value: v, Effects: eff})
}

func NewIf(cond *Value, then, els *Node) *Node {
	return mk(NodeIf, source.NoSpan, &IfNode{Cond: cond, Then: then, Else: els})
}

func NewSequence(nodes ...*Node) *Node {
	return mk(NodeSequence, source.NoSpan, &SequenceNode{Nodes: nodes})
}

func NewEcho(v *Value) *Node {
	return mk(NodeEcho, source.NoSpan, &EchoNode{Value: v, Newline: true})
}

func NewExec(cmd string, args ...*Value) *Node {
	return mk(NodeExec, source.NoSpan, &ExecNode{Command: cmd, Args: args, Effects: CommandEffects(cmd)})
}

func NewWhile(cond *Value, body *Node) *Node {
	return mk(NodeWhile, source.NoSpan, &WhileNode{Cond: cond, Body: body})
}

func NewFunction(name string, params []string, body *Node) *Node {
	return mk(NodeFunction, source.NoSpan, &FunctionNode{Name: name, Params: params, Body: body})
}

func NewNoop() *Node     { return mk(NodeNoop, source.NoSpan, &NoopNode{}) }
func NewBreak() *Node    { return mk(NodeBreak, source.NoSpan, &BreakNode{}) }
func NewContinue() *Node { return mk(NodeContinue, source.NoSpan, &ContinueNode{}) }
func NewReturn() *Node   { return mk(NodeReturn, source.NoSpan, &ReturnNode{}) }

// Module is a lowered program: one Function node per source function in
// declaration order.
type Module struct {
	Functions []*Node
	Entry     string
	Effects   EffectSet
}

// Lookup returns the function node with the given name, or nil.
func (m *Module) Lookup(name string) *FunctionNode {
	for _, fn := range m.Functions {
		if f := fn.Function(); f.Name == name {
			return f
		}
	}
	return nil
}
