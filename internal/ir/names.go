package ir

import (
	"fmt"

	"rash/internal/ast"
)

// Shell variables are global, so every source binding gets a shell name that
// no other live binding can overwrite. A function keeps the source name when
// it owns it; everything else gets a numbered variant.

// envOwner owns the names read through env().
const envOwner = "\x00env"

// shellNames assigns shell variable names for one program.
type shellNames struct {
	// owner maps a source name to the function allowed to use it verbatim.
	owner map[string]string
	taken map[string]bool
}

func newShellNames(prog *ast.Program, entry string) *shellNames {
	n := &shellNames{owner: map[string]string{}, taken: map[string]bool{}}
	perFn := map[string][]string{}
	ast.Walk(prog, ast.Visitor{
		Function: func(fn *ast.Function) {
			for _, p := range fn.Params {
				perFn[fn.Name] = append(perFn[fn.Name], p.Name)
			}
		},
		Stmt: func(fn *ast.Function, s *ast.Stmt) {
			if s.Kind == ast.StmtLet && !s.Let().Reassign {
				perFn[fn.Name] = append(perFn[fn.Name], s.Let().Name)
			}
		},
		Pattern: func(fn *ast.Function, p *ast.Pattern) {
			if p.Kind == ast.PatVariable {
				perFn[fn.Name] = append(perFn[fn.Name], p.Name)
			}
		},
		Expr: func(_ *ast.Function, e *ast.Expr) {
			if e.Kind != ast.ExprCall || LookupBuiltin(e.Call().Name) != BuiltinEnv {
				return
			}
			if args := e.Call().Args; len(args) == 1 && args[0].IsStringLiteral() {
				n.claim(args[0].Literal().Str, envOwner)
			}
		},
	})
	// the entry point keeps its names; the rest claim in declaration order
	for _, name := range perFn[entry] {
		n.claim(name, entry)
	}
	for _, fn := range prog.Functions {
		for _, name := range perFn[fn.Name] {
			n.claim(name, fn.Name)
		}
	}
	return n
}

func (n *shellNames) claim(name, fn string) {
	n.taken[name] = true
	if _, ok := n.owner[name]; !ok {
		n.owner[name] = fn
	}
}

// fresh returns an unused variant of name.
func (n *shellNames) fresh(name string) string {
	for k := 1; ; k++ {
		c := fmt.Sprintf("%s_%d", name, k)
		if !n.taken[c] {
			n.taken[c] = true
			return c
		}
	}
}

// bind declares name in the current frame and returns its shell variable.
// A re-declaration in the same frame reuses the variable; shadowing an
// outer binding or a name owned elsewhere gets a fresh one.
func (l *lowerer) bind(name string, t valueType) string {
	if prev, ok := l.scope.innermost(name); ok {
		l.scope.declare(name, prev.shell, t)
		return prev.shell
	}
	shell := name
	if l.names.owner[name] != l.fn.Name || l.scope.holds(name) {
		shell = l.names.fresh(name)
	}
	l.scope.declare(name, shell, t)
	return shell
}
