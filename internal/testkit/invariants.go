package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"rash/internal/ast"
	"rash/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed program:
// 1) every function span is non-empty and points into the source file
// 2) every function span lies within the file content
// 3) the program span covers the union of function spans
func CheckSpanInvariants(prog *ast.Program, sf *source.File) error {
	if prog == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var union source.Span
	var haveFn bool
	for _, fn := range prog.Functions {
		if fn == nil {
			return fmt.Errorf("nil function in program")
		}
		sp := fn.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty span for function %q: %v", fn.Name, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("function %q span file mismatch: got=%d want=%d", fn.Name, sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("function %q span end beyond content: %d > %d", fn.Name, sp.End, lenContent)
		}
		if !haveFn {
			union = sp
			haveFn = true
		} else {
			union = union.Cover(sp)
		}
	}

	if haveFn {
		if union.Start < prog.Span.Start || union.End > prog.Span.End {
			return fmt.Errorf("program span %v does not cover union of functions %v", prog.Span, union)
		}
	}
	return nil
}
