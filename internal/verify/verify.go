// Package verify checks emitted scripts after the fact: the text must
// re-parse as shell, come out byte-identical on a second emission and, at
// the stricter levels, satisfy an external linter and an idempotence audit.
package verify

import (
	"context"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"rash/internal/config"
	"rash/internal/diag"
	"rash/internal/ir"
	"rash/internal/source"
)

// Check names recorded in reports and proofs.
const (
	CheckSyntax      = "syntax"
	CheckDeterminism = "determinism"
	CheckLint        = "lint"
	CheckIdempotence = "idempotence"
	CheckNetwork     = "network"
)

// CheckResult is the outcome of one check. Skipped checks are recorded with
// Passed false and a Detail saying why.
type CheckResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Skipped bool   `json:"skipped,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Report lists the checks that ran and any non-fatal findings.
type Report struct {
	Level    config.VerificationLevel
	Checks   []CheckResult
	Warnings []diag.Diagnostic
}

func (r *Report) pass(name, detail string) {
	r.Checks = append(r.Checks, CheckResult{Name: name, Passed: true, Detail: detail})
}

func (r *Report) skip(name, detail string) {
	r.Checks = append(r.Checks, CheckResult{Name: name, Skipped: true, Detail: detail})
}

// Options configure Script.
type Options struct {
	Level   config.VerificationLevel
	Dialect config.Dialect
	// Linter defaults to ShellCheck.
	Linter Linter
	// Regenerate emits the script a second time for the determinism check.
	// A nil Regenerate skips that check.
	Regenerate func() (string, error)
}

// Script verifies script, emitted from mod, at opts.Level. The first failed
// check is returned as a *Error; the report covers the checks that ran.
func Script(ctx context.Context, script string, mod *ir.Module, opts Options) (*Report, error) {
	rep := &Report{Level: opts.Level}
	if opts.Level == config.VerificationNone {
		return rep, nil
	}

	if err := checkSyntax(script, opts.Dialect); err != nil {
		return rep, err
	}
	rep.pass(CheckSyntax, "parsed as "+langOf(opts.Dialect).String())

	if opts.Regenerate == nil {
		rep.skip(CheckDeterminism, "no regeneration hook")
	} else {
		again, err := opts.Regenerate()
		if err != nil {
			return rep, err
		}
		if again != script {
			return rep, verifyErr(diag.VerNondeterministic, source.NoSpan, CheckDeterminism,
				"second emission differs from the first at byte %d", firstDiff(script, again))
		}
		rep.pass(CheckDeterminism, "second emission is byte-identical")
	}

	if opts.Level == config.VerificationBasic {
		return rep, nil
	}

	linter := opts.Linter
	if linter == nil {
		linter = ShellCheck{}
	}
	if !linter.Available() {
		if opts.Level == config.VerificationParanoid {
			return rep, verifyErr(diag.VerLinterMissing, source.NoSpan, CheckLint,
				"%s is required at paranoid verification but was not found", linter.Name())
		}
		rep.skip(CheckLint, linter.Name()+" not available")
	} else {
		findings, err := linter.Lint(ctx, script, opts.Dialect)
		if err != nil {
			return rep, verifyErr(diag.VerLinterFailed, source.NoSpan, CheckLint, "%s: %v", linter.Name(), err)
		}
		if len(findings) > 0 {
			return rep, verifyErr(diag.VerLinterFailed, source.NoSpan, CheckLint,
				"%s reported %d problem(s); first: %s", linter.Name(), len(findings), findings[0])
		}
		rep.pass(CheckLint, linter.Name()+" reported no problems")
	}

	if opts.Level != config.VerificationParanoid {
		return rep, nil
	}
	if mod == nil {
		rep.skip(CheckIdempotence, "no IR module")
		return rep, nil
	}
	if err := auditIdempotence(mod); err != nil {
		return rep, err
	}
	rep.pass(CheckIdempotence, "no non-idempotent commands")
	if hosts := networkCommands(mod); len(hosts) > 0 {
		for _, n := range hosts {
			rep.Warnings = append(rep.Warnings, diag.NewWarning(diag.VerNetworkEffect, n.Span,
				"script performs network access via "+n.Exec().Command))
		}
		rep.Checks = append(rep.Checks, CheckResult{Name: CheckNetwork, Passed: true,
			Detail: "network access: " + strings.Join(commandNames(hosts), ", ")})
	} else {
		rep.pass(CheckNetwork, "no network access")
	}
	return rep, nil
}

func langOf(d config.Dialect) syntax.LangVariant {
	if d == config.DialectBash {
		return syntax.LangBash
	}
	return syntax.LangPOSIX
}

func checkSyntax(script string, d config.Dialect) error {
	p := syntax.NewParser(syntax.Variant(langOf(d)))
	if _, err := p.Parse(strings.NewReader(script), "script.sh"); err != nil {
		return verifyErr(diag.VerParseFailed, source.NoSpan, CheckSyntax, "%v", err)
	}
	return nil
}

func firstDiff(a, b string) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
