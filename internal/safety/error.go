package safety

import (
	"fmt"

	"rash/internal/diag"
	"rash/internal/source"
)

// InjectionError reports a literal that could change command structure.
// Offset is the byte offset of the match inside Literal.
type InjectionError struct {
	Class   Class
	Span    source.Span
	Literal string
	Offset  int
}

func (e *InjectionError) Error() string {
	return fmt.Sprintf("%s: string literal %s contains %s at offset %d",
		e.Class.Code().ID(), excerpt(e.Literal), e.Class, e.Offset)
}

func (e *InjectionError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Class.Code(), e.Span,
		fmt.Sprintf("string literal contains %s", e.Class)).
		WithHint("remove the shell metacharacters or pass the value through arg()/env() at run time")
}

const excerptLimit = 40

func excerpt(s string) string {
	if len(s) <= excerptLimit {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%q...", s[:excerptLimit])
}
