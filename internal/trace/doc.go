// Package trace records where a compilation spends its time.
//
// Every pipeline stage opens a span; spans nest under the span of the file
// being compiled, which nests under the CLI command's span. Events go to a
// stream (text or NDJSON), to an in-memory ring kept for crash dumps, or to
// both.
//
//	rash build --trace=- --trace-level=detail main.rs
//
// # Levels
//
//   - off: nothing is recorded
//   - error: only the ring is filled, dumped when a command fails
//   - phase: driver and per-file spans
//   - detail: plus one span per stage (lex, parse, validate, safety, lower, emit, verify)
//   - debug: everything
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "lower", parent)
//	defer span.End("")
package trace
