package verify_test

import (
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"rash/internal/backend/posix"
	"rash/internal/config"
	"rash/internal/diag"
	"rash/internal/ir"
	"rash/internal/parser"
	"rash/internal/testkit"
	"rash/internal/verify"
)

type fakeLinter struct {
	available bool
	findings  []verify.Finding
}

func (fakeLinter) Name() string      { return "fake" }
func (f fakeLinter) Available() bool { return f.available }
func (f fakeLinter) Lint(context.Context, string, config.Dialect) ([]verify.Finding, error) {
	return f.findings, nil
}

func build(t *testing.T, src string, dialect config.Dialect) (string, *ir.Module, func() (string, error)) {
	t.Helper()
	prog, _, err := parser.ParseSource("test.rs", []byte(src))
	require.NoError(t, err)
	mod, err := ir.Lower(prog, ir.Options{Optimize: true})
	require.NoError(t, err)
	opts := posix.Options{Dialect: dialect, StrictMode: true}
	script, err := posix.Emit(mod, opts)
	require.NoError(t, err)
	return script, mod, func() (string, error) { return posix.Emit(mod, opts) }
}

func requireCode(t *testing.T, err error, code diag.Code) {
	t.Helper()
	var ve *verify.Error
	require.ErrorAs(t, err, &ve)
	require.Equal(t, code.ID(), ve.Code.ID(), ve.Error())
}

func checkNames(rep *verify.Report) []string {
	var names []string
	for _, c := range rep.Checks {
		names = append(names, c.Name)
	}
	return names
}

func TestBasicAcceptsCorpus(t *testing.T) {
	for _, p := range testkit.Corpus() {
		for _, d := range []config.Dialect{config.DialectPosix, config.DialectBash, config.DialectDash} {
			script, mod, again := build(t, p.Source, d)
			rep, err := verify.Script(context.Background(), script, mod, verify.Options{
				Level: config.VerificationBasic, Dialect: d, Regenerate: again,
			})
			require.NoError(t, err, "%s on %s", p.Name, d)
			require.Equal(t, []string{verify.CheckSyntax, verify.CheckDeterminism}, checkNames(rep))
		}
	}
}

func TestNoneRunsNothing(t *testing.T) {
	rep, err := verify.Script(context.Background(), "not ( shell", nil, verify.Options{Level: config.VerificationNone})
	require.NoError(t, err)
	require.Empty(t, rep.Checks)
}

func TestParseFailure(t *testing.T) {
	_, err := verify.Script(context.Background(), "printf '%s\\n' \"unterminated\n", nil, verify.Options{
		Level: config.VerificationBasic,
	})
	requireCode(t, err, diag.VerParseFailed)
}

func TestNondeterministic(t *testing.T) {
	script, mod, _ := build(t, `fn main() { println!("hi"); }`, config.DialectPosix)
	_, err := verify.Script(context.Background(), script, mod, verify.Options{
		Level:      config.VerificationBasic,
		Regenerate: func() (string, error) { return script + ":\n", nil },
	})
	requireCode(t, err, diag.VerNondeterministic)
	require.Contains(t, err.Error(), "at byte")
}

func TestStrictLinter(t *testing.T) {
	script, mod, again := build(t, `fn main() { println!("hi"); }`, config.DialectPosix)
	ctx := context.Background()

	rep, err := verify.Script(ctx, script, mod, verify.Options{
		Level: config.VerificationStrict, Linter: fakeLinter{}, Regenerate: again,
	})
	require.NoError(t, err)
	require.True(t, rep.Checks[2].Skipped)

	rep, err = verify.Script(ctx, script, mod, verify.Options{
		Level: config.VerificationStrict, Linter: fakeLinter{available: true}, Regenerate: again,
	})
	require.NoError(t, err)
	require.Equal(t, []string{verify.CheckSyntax, verify.CheckDeterminism, verify.CheckLint}, checkNames(rep))
	require.True(t, rep.Checks[2].Passed)

	_, err = verify.Script(ctx, script, mod, verify.Options{
		Level:  config.VerificationStrict,
		Linter: fakeLinter{available: true, findings: []verify.Finding{{Line: 3, Column: 1, Level: "warning", Code: "SC2034", Message: "x appears unused"}}},
	})
	requireCode(t, err, diag.VerLinterFailed)
	require.Contains(t, err.Error(), "SC2034")
}

func TestParanoidRequiresLinter(t *testing.T) {
	script, mod, _ := build(t, `fn main() { println!("hi"); }`, config.DialectPosix)
	_, err := verify.Script(context.Background(), script, mod, verify.Options{
		Level: config.VerificationParanoid, Linter: fakeLinter{},
	})
	requireCode(t, err, diag.VerLinterMissing)
}

func TestIdempotenceAudit(t *testing.T) {
	tests := []struct {
		name string
		body string
		ok   bool
	}{
		{"mkdir -p", `mkdir("-p", "/tmp/a");`, true},
		{"mkdir", `mkdir("/tmp/a");`, false},
		{"rm -rf", `rm("-rf", "/tmp/a");`, true},
		{"rm", `rm("/tmp/a");`, false},
		{"ln -sf", `ln("-sf", "/tmp/a", "/tmp/b");`, true},
		{"ln -s", `ln("-s", "/tmp/a", "/tmp/b");`, false},
		{"cp", `cp("/tmp/a", "/tmp/b");`, false},
		{"in substitution", `let x = mkdir("/tmp/a");`, false},
		{"touch", `touch("/tmp/a");`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, mod, _ := build(t, "fn main() { "+tt.body+" }", config.DialectPosix)
			rep, err := verify.Script(context.Background(), script, mod, verify.Options{
				Level: config.VerificationParanoid, Linter: fakeLinter{available: true},
			})
			if tt.ok {
				require.NoError(t, err)
				require.Contains(t, checkNames(rep), verify.CheckIdempotence)
				return
			}
			requireCode(t, err, diag.VerNotIdempotent)
		})
	}
}

func TestNetworkEffectsReported(t *testing.T) {
	script, mod, _ := build(t, `fn main() { curl("-fsSL", "https://example.com"); }`, config.DialectPosix)
	rep, err := verify.Script(context.Background(), script, mod, verify.Options{
		Level: config.VerificationParanoid, Linter: fakeLinter{available: true},
	})
	require.NoError(t, err)
	require.Len(t, rep.Warnings, 1)
	require.Equal(t, diag.VerNetworkEffect, rep.Warnings[0].Code)
	last := rep.Checks[len(rep.Checks)-1]
	require.Equal(t, verify.CheckNetwork, last.Name)
	require.Contains(t, last.Detail, "curl")
}

func TestShellCheckCorpus(t *testing.T) {
	if _, err := exec.LookPath("shellcheck"); err != nil {
		t.Skip("shellcheck not installed")
	}
	sc := verify.ShellCheck{}
	for _, p := range testkit.Corpus() {
		for _, d := range []config.Dialect{config.DialectPosix, config.DialectDash, config.DialectBash} {
			script, _, _ := build(t, p.Source, d)
			findings, err := sc.Lint(context.Background(), script, d)
			require.NoError(t, err, p.Name)
			require.Empty(t, findings, "%s on %s:\n%s", p.Name, d, script)
		}
	}
}

func TestProofCanonical(t *testing.T) {
	cfg := config.Default()
	rep := &verify.Report{Checks: []verify.CheckResult{{Name: verify.CheckSyntax, Passed: true}}}
	p := verify.NewProof("1.2.3", cfg, []byte("abc"), "#!/bin/sh\n", []string{"filesystem"}, rep)

	a, err := p.Canonical()
	require.NoError(t, err)
	b, err := p.Canonical()
	require.NoError(t, err)
	require.Equal(t, a, b)

	out := string(a)
	require.True(t, strings.HasPrefix(out, `{"checks":[{"name":"syntax","passed":true}]`), out)
	require.Contains(t, out, `"source_sha256":"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"`)
	require.Contains(t, out, `"tool":"rash"`)
	require.Contains(t, out, `"dialect":"posix"`)
	require.NotContains(t, out, "\n")
}
