package verify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"rash/internal/config"
)

// Finding is one linter complaint.
type Finding struct {
	Line    int
	Column  int
	Level   string
	Code    string
	Message string
}

func (f Finding) String() string {
	if f.Code == "" {
		return fmt.Sprintf("%d:%d: %s: %s", f.Line, f.Column, f.Level, f.Message)
	}
	return fmt.Sprintf("%d:%d: %s: %s [%s]", f.Line, f.Column, f.Level, f.Message, f.Code)
}

// Linter is an external shell linter treated as an oracle.
type Linter interface {
	Name() string
	Available() bool
	Lint(ctx context.Context, script string, dialect config.Dialect) ([]Finding, error)
}

// ShellCheck runs the shellcheck binary over stdin.
type ShellCheck struct {
	// Path overrides the binary looked up on PATH.
	Path string
	// Severity is the minimum reported level; empty means "warning".
	Severity string
}

func (ShellCheck) Name() string { return "shellcheck" }

func (s ShellCheck) binary() string {
	if s.Path != "" {
		return s.Path
	}
	return "shellcheck"
}

func (s ShellCheck) Available() bool {
	_, err := exec.LookPath(s.binary())
	return err == nil
}

// ShellFor maps a dialect to shellcheck's -s argument.
func ShellFor(d config.Dialect) string {
	switch d {
	case config.DialectBash:
		return "bash"
	case config.DialectDash:
		return "dash"
	case config.DialectPosix, config.DialectAsh:
		return "sh"
	}
	return "sh"
}

func (s ShellCheck) Lint(ctx context.Context, script string, dialect config.Dialect) ([]Finding, error) {
	severity := s.Severity
	if severity == "" {
		severity = "warning"
	}
	// #nosec G204 -- binary is shellcheck or an explicit override, arguments are fixed
	cmd := exec.CommandContext(ctx, s.binary(), "-s", ShellFor(dialect), "-S", severity, "-f", "gcc", "-")
	cmd.Stdin = strings.NewReader(script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	findings := parseGCC(stdout.String())
	if err != nil {
		// exit status 1 means "findings were reported"
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && len(findings) > 0 {
			return findings, nil
		}
		return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return findings, nil
}

var gccLine = regexp.MustCompile(`^[^:]*:(\d+):(\d+): (\w+): (.*?)(?: \[(SC\d+)\])?$`)

func parseGCC(out string) []Finding {
	var findings []Finding
	for _, line := range strings.Split(out, "\n") {
		m := gccLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		ln, _ := strconv.Atoi(m[1])
		col, _ := strconv.Atoi(m[2])
		findings = append(findings, Finding{Line: ln, Column: col, Level: m[3], Message: m[4], Code: m[5]})
	}
	return findings
}
