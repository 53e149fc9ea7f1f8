package diag

import (
	"rash/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is a suggested correction. Edits may be empty when the fix is a hint.
type Fix struct {
	Title string
	Edits []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// Diagnosable is implemented by every typed stage error.
type Diagnosable interface {
	error
	Diagnostic() Diagnostic
}
