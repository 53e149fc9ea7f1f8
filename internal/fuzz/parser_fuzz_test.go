package fuzztests

import (
	"errors"
	"testing"
	"time"

	"rash/internal/diag"
	"rash/internal/parser"
	"rash/internal/source"
	"rash/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		id := fs.AddVirtual("fuzz.rs", clampInput(input))

		prog, err := parser.ParseFile(fs, id, parser.Options{})
		if err != nil {
			var pe *parser.Error
			if !errors.As(err, &pe) {
				t.Fatalf("parse failed with untyped error %T: %v", err, err)
			}
			if c := pe.Diagnostic().Code; c < diag.LexInfo || c >= diag.ValInfo {
				t.Fatalf("parse error carries non-syntax code %s", c.ID())
			}
			return
		}
		if len(prog.Functions) == 0 {
			return
		}
		if err := testkit.CheckSpanInvariants(prog, fs.Get(id)); err != nil {
			t.Fatalf("span invariants: %v", err)
		}
	})
}

// FuzzParserNoHang checks that the parser terminates on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("fn f() { { { { } } } }"))
	f.Add([]byte("fn main() { let x = 1\nlet y = 2; }"))
	f.Add([]byte("fn main() { match x { 1 => , } }"))
	f.Add([]byte("fn main() { if if if"))
	f.Add([]byte("#[#[#["))
	f.Add([]byte("fn main() { println!(\"{}{}{}\"); }"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _, _ = parser.ParseSource("fuzz.rs", input) //nolint:errcheck
		}()
		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser did not finish within %s on %d bytes", parseTimeout, len(input))
		}
	})
}
