package verify

import (
	"fmt"

	"rash/internal/diag"
	"rash/internal/source"
)

// Error is a failed verification check.
type Error struct {
	Code  diag.Code
	Span  source.Span
	Check string
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code.ID(), e.Check, e.Msg)
}

func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Span, e.Check+": "+e.Msg)
}

func verifyErr(code diag.Code, sp source.Span, check, format string, args ...any) *Error {
	return &Error{Code: code, Span: sp, Check: check, Msg: fmt.Sprintf(format, args...)}
}
