package ast

import "rash/internal/source"

// DefaultEntryPoint is the name of the function invoked by the generated script.
const DefaultEntryPoint = "main"

// Program is the restricted tree of one source file.
type Program struct {
	Functions  []*Function
	EntryPoint string
	Span       source.Span
}

// Function is a top-level function declaration.
type Function struct {
	Name       string
	NameSpan   source.Span
	Params     []Param
	ReturnType *Type
	Body       *Block
	Span       source.Span
}

type Param struct {
	Name string
	Type *Type
	Span source.Span
}

// Block is a braced statement list.
type Block struct {
	Stmts []*Stmt
	Span  source.Span
}

func (b *Block) Empty() bool { return b == nil || len(b.Stmts) == 0 }

// Lookup returns the function with the given name, or nil.
func (p *Program) Lookup(name string) *Function {
	for _, fn := range p.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

// Entry returns the entry function, or nil if it is not defined.
func (p *Program) Entry() *Function {
	return p.Lookup(p.EntryPoint)
}
