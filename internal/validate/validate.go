// Package validate checks a parsed program against the restrictions that
// make shell translation safe. It runs before lowering and reports the
// first violation as *Error.
package validate

import (
	"fmt"
	"strings"

	"rash/internal/ast"
	"rash/internal/config"
	"rash/internal/diag"
	"rash/internal/ir"
	"rash/internal/source"
)

// Program validates prog. Checks run in a fixed order and the first
// failure is returned:
//
//  1. the entry point exists and takes no parameters
//  2. function and parameter names are unique
//  3. every binding is a safe identifier
//  4. expression nesting stays within ast.MaxNestingDepth
//  5. string literals carry no NUL byte
//  6. the call graph has no cycles
//  7. every call resolves to a function, a builtin or an allowed command
//  8. every declared type is in the allowed set
//
// Strict adds shell-special name and return-value checks; Paranoid adds
// static loop bounds.
func Program(prog *ast.Program, level config.ValidationLevel) error {
	if prog == nil {
		return &Error{Code: diag.ValMissingEntryPoint, Msg: "empty program"}
	}
	v := &validator{prog: prog, level: level}
	passes := []func() *Error{
		v.checkEntryPoint,
		v.checkDuplicates,
		v.checkIdentifiers,
		v.checkFunctionNames,
		v.checkDepth,
		v.checkLiterals,
		v.checkRecursion,
		v.checkCalls,
		v.checkTypes,
	}
	if level >= config.ValidationStrict {
		passes = append(passes, v.checkShellSpecial, v.checkReturnValues)
	}
	if level >= config.ValidationParanoid {
		passes = append(passes, v.checkLoopBounds)
	}
	for _, pass := range passes {
		if err := pass(); err != nil {
			return err
		}
	}
	return nil
}

type validator struct {
	prog  *ast.Program
	level config.ValidationLevel
}

func fnNode(fn *ast.Function) string { return fmt.Sprintf("function %q", fn.Name) }

func (v *validator) entryName() string {
	if v.prog.EntryPoint == "" {
		return ast.DefaultEntryPoint
	}
	return v.prog.EntryPoint
}

func (v *validator) checkEntryPoint() *Error {
	name := v.entryName()
	entry := v.prog.Lookup(name)
	if entry == nil {
		return errorf(diag.ValMissingEntryPoint, v.prog.Span, "", "entry point %q is not defined", name)
	}
	if len(entry.Params) > 0 {
		return errorf(diag.ValEntryPointSignature, entry.Params[0].Span, fnNode(entry),
			"entry point must not take parameters; use arg(n) to read script arguments")
	}
	return nil
}

func (v *validator) checkDuplicates() *Error {
	seen := make(map[string]*ast.Function, len(v.prog.Functions))
	for _, fn := range v.prog.Functions {
		if prev, ok := seen[fn.Name]; ok {
			return errorf(diag.ValDuplicateFunction, fn.NameSpan, fnNode(fn),
				"function is already defined at %s", prev.NameSpan)
		}
		seen[fn.Name] = fn
		params := make(map[string]struct{}, len(fn.Params))
		for _, p := range fn.Params {
			if _, ok := params[p.Name]; ok {
				return errorf(diag.ValDuplicateParam, p.Span, fnNode(fn), "parameter %q is declared twice", p.Name)
			}
			params[p.Name] = struct{}{}
		}
	}
	return nil
}

// eachBinding calls f for every binding site in source order and stops at
// the first non-nil result.
func (v *validator) eachBinding(f func(name, node string, sp source.Span) *Error) *Error {
	var out *Error
	ast.Walk(v.prog, ast.Visitor{
		Function: func(fn *ast.Function) {
			if out != nil {
				return
			}
			if out = f(fn.Name, fnNode(fn), fn.NameSpan); out != nil {
				return
			}
			for _, p := range fn.Params {
				if out = f(p.Name, fmt.Sprintf("parameter %q", p.Name), p.Span); out != nil {
					return
				}
			}
		},
		Stmt: func(_ *ast.Function, s *ast.Stmt) {
			if out != nil || s.Kind != ast.StmtLet {
				return
			}
			let := s.Let()
			if let.Reassign {
				return
			}
			out = f(let.Name, fmt.Sprintf("let %q", let.Name), let.NameSpan)
		},
		Pattern: func(_ *ast.Function, p *ast.Pattern) {
			if out != nil || p.Kind != ast.PatVariable {
				return
			}
			out = f(p.Name, fmt.Sprintf("binding %q", p.Name), p.Span)
		},
	})
	return out
}

func (v *validator) checkIdentifiers() *Error {
	return v.eachBinding(func(name, node string, sp source.Span) *Error {
		if err := Identifier(name); err != nil {
			return &Error{Code: diag.ValBadIdentifier, Span: sp, Node: node, Msg: err.Error()}
		}
		return nil
	})
}

// checkFunctionNames keeps user functions from replacing the commands and
// builtins that emitted code calls by name.
func (v *validator) checkFunctionNames() *Error {
	for _, fn := range v.prog.Functions {
		if msg := commandCollision(fn.Name); msg != "" {
			return errorf(diag.ValCommandName, fn.NameSpan, fnNode(fn), "%q %s", fn.Name, msg)
		}
	}
	return nil
}

func (v *validator) checkShellSpecial() *Error {
	return v.eachBinding(func(name, node string, sp source.Span) *Error {
		if IsShellSpecial(name) {
			return errorf(diag.ValShellReservedName, sp, node, "%q shadows a shell special variable", name)
		}
		return nil
	})
}

// rootExprs calls f with every statement-level expression in source order.
func (v *validator) rootExprs(f func(fn *ast.Function, e *ast.Expr) *Error) *Error {
	var out *Error
	ast.Walk(v.prog, ast.Visitor{
		Stmt: func(fn *ast.Function, s *ast.Stmt) {
			if out != nil {
				return
			}
			for _, e := range s.Exprs() {
				if e == nil {
					continue
				}
				if out = f(fn, e); out != nil {
					return
				}
			}
		},
	})
	return out
}

func (v *validator) checkDepth() *Error {
	return v.rootExprs(func(fn *ast.Function, e *ast.Expr) *Error {
		if d := e.NestingDepth(); d > ast.MaxNestingDepth {
			return errorf(diag.ValNestingTooDeep, e.Span, fnNode(fn),
				"expression nesting depth %d exceeds the maximum of %d", d, ast.MaxNestingDepth)
		}
		return nil
	})
}

func (v *validator) checkLiterals() *Error {
	var out *Error
	check := func(fn *ast.Function, s string, sp source.Span) {
		if out != nil || strings.IndexByte(s, 0) < 0 {
			return
		}
		out = errorf(diag.ValNulInLiteral, sp, fnNode(fn), "string literal contains a NUL byte")
	}
	ast.Walk(v.prog, ast.Visitor{
		Expr: func(fn *ast.Function, e *ast.Expr) {
			switch e.Kind {
			case ast.ExprLiteral:
				if lit := e.Literal(); lit.Kind == ast.LitStr {
					check(fn, lit.Str, e.Span)
				}
			case ast.ExprMacro:
				check(fn, e.Macro().Format, e.Span)
			}
		},
		Pattern: func(fn *ast.Function, p *ast.Pattern) {
			for _, lit := range p.Literals() {
				if lit.Kind == ast.LitStr {
					check(fn, lit.Str, p.Span)
				}
			}
		},
	})
	return out
}

func (v *validator) checkCalls() *Error {
	var out *Error
	ast.Walk(v.prog, ast.Visitor{
		Expr: func(fn *ast.Function, e *ast.Expr) {
			if out != nil || e.Kind != ast.ExprCall {
				return
			}
			call := e.Call()
			if v.prog.Lookup(call.Name) != nil || ir.IsBuiltin(call.Name) || ir.IsAllowedCommand(call.Name) {
				return
			}
			out = errorf(diag.ValUndefinedFunction, call.NameSpan, fnNode(fn),
				"call to %q, which is neither a defined function nor an allowed command", call.Name)
		},
	})
	return out
}

func (v *validator) checkTypes() *Error {
	bad := func(t *ast.Type, node string) *Error {
		d := t.Disallowed()
		if d == nil {
			return nil
		}
		sp := d.Span
		if sp.Empty() {
			sp = t.Span
		}
		return errorf(diag.ValDisallowedType, sp, node,
			"type %s is not allowed; use bool, u32, &str, Option or Result", t)
	}
	for _, fn := range v.prog.Functions {
		for _, p := range fn.Params {
			if err := bad(p.Type, fmt.Sprintf("parameter %q", p.Name)); err != nil {
				return err
			}
		}
		if err := bad(fn.ReturnType, fnNode(fn)); err != nil {
			return err
		}
	}
	var out *Error
	ast.Walk(v.prog, ast.Visitor{
		Stmt: func(fn *ast.Function, s *ast.Stmt) {
			if out != nil || s.Kind != ast.StmtLet {
				return
			}
			let := s.Let()
			out = bad(let.Type, fmt.Sprintf("let %q", let.Name))
		},
	})
	return out
}
