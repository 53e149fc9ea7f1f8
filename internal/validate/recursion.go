package validate

import (
	"strings"

	"rash/internal/ast"
	"rash/internal/diag"
	"rash/internal/source"
)

type callEdge struct {
	callee string
	span   source.Span
}

// callGraph maps each function to the defined functions it calls, in
// source order and without repeats.
func (v *validator) callGraph() map[string][]callEdge {
	graph := make(map[string][]callEdge, len(v.prog.Functions))
	seen := make(map[[2]string]struct{})
	ast.Walk(v.prog, ast.Visitor{
		Expr: func(fn *ast.Function, e *ast.Expr) {
			if e.Kind != ast.ExprCall {
				return
			}
			call := e.Call()
			if v.prog.Lookup(call.Name) == nil {
				return
			}
			key := [2]string{fn.Name, call.Name}
			if _, dup := seen[key]; dup {
				return
			}
			seen[key] = struct{}{}
			graph[fn.Name] = append(graph[fn.Name], callEdge{callee: call.Name, span: call.NameSpan})
		},
	})
	return graph
}

type color uint8

const (
	white color = iota
	gray
	black
)

// checkRecursion runs a colored DFS over the call graph. Roots are taken in
// declaration order, so the reported cycle is deterministic.
func (v *validator) checkRecursion() *Error {
	graph := v.callGraph()
	colors := make(map[string]color, len(v.prog.Functions))
	var stack []string

	var visit func(name string) *Error
	visit = func(name string) *Error {
		colors[name] = gray
		stack = append(stack, name)
		for _, edge := range graph[name] {
			switch colors[edge.callee] {
			case gray:
				start := 0
				for i, n := range stack {
					if n == edge.callee {
						start = i
						break
					}
				}
				chain := append(append([]string(nil), stack[start:]...), edge.callee)
				return errorf(diag.ValRecursion, edge.span, fnNode(v.prog.Lookup(name)),
					"recursive call chain %s; shell functions are not allowed to recurse", strings.Join(chain, " -> "))
			case white:
				if err := visit(edge.callee); err != nil {
					return err
				}
			case black:
			}
		}
		stack = stack[:len(stack)-1]
		colors[name] = black
		return nil
	}

	for _, fn := range v.prog.Functions {
		if colors[fn.Name] != white {
			continue
		}
		if err := visit(fn.Name); err != nil {
			return err
		}
	}
	return nil
}
