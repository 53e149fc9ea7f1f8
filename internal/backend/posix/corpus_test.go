package posix_test

import (
	"testing"

	"rash/internal/testkit"
)

func TestCorpusRuns(t *testing.T) {
	for _, p := range testkit.Corpus() {
		t.Run(p.Name, func(t *testing.T) {
			script := emit(t, p.Source, true)
			if again := emit(t, p.Source, true); again != script {
				t.Fatalf("emission is not deterministic")
			}
			if !p.Run {
				return
			}
			res := run(t, script, p.Args...)
			if res.status != 0 || res.stdout != p.Stdout {
				t.Fatalf("status=%d stdout=%q, want %q\n%s", res.status, res.stdout, p.Stdout, script)
			}
			if plain := run(t, emit(t, p.Source, false), p.Args...); plain.stdout != p.Stdout {
				t.Fatalf("unoptimized stdout=%q, want %q", plain.stdout, p.Stdout)
			}
		})
	}
}
