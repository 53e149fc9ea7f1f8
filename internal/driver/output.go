package driver

import (
	"os"
	"path/filepath"

	"rash/internal/diag"
)

// ProofPath is where the proof for a script written to out is stored.
func ProofPath(out string) string { return out + ".proof.json" }

// WriteOutput writes the script of res to out as an executable file, and
// its proof next to it when one was produced.
func WriteOutput(res *Result, out string) error {
	if dir := filepath.Dir(out); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &IOError{Code: diag.IOWriteError, Path: out, Err: err}
		}
	}
	// #nosec G306 -- the output is a script meant to be executed
	if err := os.WriteFile(out, []byte(res.Script), 0o755); err != nil {
		return &IOError{Code: diag.IOWriteError, Path: out, Err: err}
	}
	if len(res.Proof) > 0 {
		if err := os.WriteFile(ProofPath(out), append(res.Proof, '\n'), 0o600); err != nil {
			return &IOError{Code: diag.IOWriteError, Path: ProofPath(out), Err: err}
		}
	}
	return nil
}

// OutputPathFor derives the script name for a source file: main.rs -> main.sh.
func OutputPathFor(src, outDir string) string {
	base := filepath.Base(src)
	name := base[:len(base)-len(filepath.Ext(base))] + ".sh"
	if outDir == "" {
		return filepath.Join(filepath.Dir(src), name)
	}
	return filepath.Join(outDir, name)
}
