package ir

import (
	"fmt"

	"rash/internal/diag"
	"rash/internal/source"
)

// LoweringError reports a construct that has no shell translation.
type LoweringError struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *LoweringError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

func (e *LoweringError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Span, e.Msg)
}

func lowerErr(code diag.Code, sp source.Span, format string, args ...any) *LoweringError {
	return &LoweringError{Code: code, Span: sp, Msg: fmt.Sprintf(format, args...)}
}
