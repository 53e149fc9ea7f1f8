// Package diag defines the diagnostic model shared by every compilation stage.
//
// # Purpose
//
//   - Provide deterministic data structures describing findings produced by the
//     lexer, parser, validator, injection scanner, lowering, emission and
//     verification stages.
//   - Give every typed stage error a common rendering path: stage errors
//     implement Diagnosable and are converted to a Diagnostic by the driver.
//
// # Scope
//
// Package diag performs no formatting and no IO. Rendering lives in
// internal/diagfmt; orchestration lives in internal/driver.
//
// # Data model
//
//   - Severity – Info, Warning, Error.
//   - Code – numeric identifier grouped by stage (see codes.go) with a stable
//     string form such as VAL3006 or INJ4005.
//   - Message – short, actionable text naming the offending construct.
//   - Primary – the source.Span of the offending node (empty for nodes built
//     programmatically).
//   - Notes – secondary spans/messages.
//   - Fixes – suggested corrections. A Fix without edits is a textual hint.
//
// The pipeline stops at the first error, so a Bag normally carries a single
// error plus any warnings collected on the way (verification warnings, IO
// problems in directory mode).
package diag
