package validate

import (
	"fmt"

	"rash/internal/diag"
	"rash/internal/source"
)

// Error is a rejected program. Node names the offending construct, e.g.
// `function "main"` or `let "x"`.
type Error struct {
	Code diag.Code
	Span source.Span
	Node string
	Msg  string
}

func (e *Error) Error() string {
	if e.Node == "" {
		return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code.ID(), e.Node, e.Msg)
}

func (e *Error) Diagnostic() diag.Diagnostic {
	msg := e.Msg
	if e.Node != "" {
		msg = e.Node + ": " + msg
	}
	return diag.NewError(e.Code, e.Span, msg)
}

func errorf(code diag.Code, sp source.Span, node, format string, args ...any) *Error {
	return &Error{Code: code, Span: sp, Node: node, Msg: fmt.Sprintf(format, args...)}
}
