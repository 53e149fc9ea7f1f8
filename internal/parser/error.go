package parser

import (
	"fmt"

	"rash/internal/diag"
	"rash/internal/source"
)

// Error is a lexical or syntactic failure (LEX/SYN codes).
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Span, e.Msg)
}

func errorFromDiagnostic(d diag.Diagnostic) *Error {
	return &Error{Code: d.Code, Span: d.Primary, Msg: d.Message}
}

// firstErrorReporter remembers the first error and forwards everything.
type firstErrorReporter struct {
	next  diag.Reporter
	first *diag.Diagnostic
}

func (r *firstErrorReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	if sev >= diag.SevError {
		if r.first != nil {
			return
		}
		d := diag.Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes, Fixes: fixes}
		r.first = &d
	}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes, fixes)
	}
}
