package driver

import (
	"errors"
	"fmt"

	"rash/internal/diag"
	"rash/internal/source"
)

// IOError is a failure to read a source file or write an output.
type IOError struct {
	Code diag.Code
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Code.ID(), e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, source.NoSpan, fmt.Sprintf("%s: %v", e.Path, e.Err))
}

// AsDiagnostic extracts the diagnostic of the typed stage error inside err.
func AsDiagnostic(err error) (diag.Diagnostic, bool) {
	var d diag.Diagnosable
	if errors.As(err, &d) {
		return d.Diagnostic(), true
	}
	return diag.Diagnostic{}, false
}

// Diagnostics collects the warnings of res and the diagnostic of err, in
// that order, into a bag.
func Diagnostics(res *Result, err error, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	if res != nil {
		for _, w := range res.Warnings {
			bag.Add(w)
		}
	}
	if err != nil {
		if d, ok := AsDiagnostic(err); ok {
			bag.Add(d)
		}
	}
	return bag
}
