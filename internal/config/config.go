// Package config holds compilation settings and the project manifest.
//
// Settings are resolved with the precedence flags > manifest > defaults.
// The manifest is rash.toml or rash.yaml, discovered by walking up from
// the working directory.
package config

import (
	"fmt"
	"strings"
)

// Dialect selects the target shell. The emitted body is always POSIX; the
// dialect only changes the shebang and the verifier's parser/linter mode.
type Dialect uint8

const (
	DialectPosix Dialect = iota
	DialectBash
	DialectDash
	DialectAsh
)

var dialectNames = [...]string{"posix", "bash", "dash", "ash"}

func (d Dialect) String() string {
	if int(d) < len(dialectNames) {
		return dialectNames[d]
	}
	return fmt.Sprintf("Dialect(%d)", d)
}

// ParseDialect accepts posix, sh, bash, dash or ash.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "posix", "sh":
		return DialectPosix, nil
	case "bash":
		return DialectBash, nil
	case "dash":
		return DialectDash, nil
	case "ash":
		return DialectAsh, nil
	}
	return DialectPosix, fmt.Errorf("unknown dialect %q (want posix, bash, dash or ash)", s)
}

// ValidationLevel controls how aggressively borderline input is rejected.
// None skips injection scanning and is meant for already-trusted input.
type ValidationLevel uint8

const (
	ValidationNone ValidationLevel = iota
	ValidationMinimal
	ValidationStrict
	ValidationParanoid
)

// VerificationLevel controls checks performed on emitted text.
type VerificationLevel uint8

const (
	VerificationNone VerificationLevel = iota
	VerificationBasic
	VerificationStrict
	VerificationParanoid
)

var levelNames = [...]string{"none", "minimal", "strict", "paranoid"}
var verificationNames = [...]string{"none", "basic", "strict", "paranoid"}

func (l ValidationLevel) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("ValidationLevel(%d)", l)
}

func (l VerificationLevel) String() string {
	if int(l) < len(verificationNames) {
		return verificationNames[l]
	}
	return fmt.Sprintf("VerificationLevel(%d)", l)
}

func ParseValidationLevel(s string) (ValidationLevel, error) {
	for i, name := range levelNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return ValidationLevel(i), nil
		}
	}
	return ValidationMinimal, fmt.Errorf("unknown validation level %q (want none, minimal, strict or paranoid)", s)
}

func ParseVerificationLevel(s string) (VerificationLevel, error) {
	for i, name := range verificationNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return VerificationLevel(i), nil
		}
	}
	return VerificationBasic, fmt.Errorf("unknown verification level %q (want none, basic, strict or paranoid)", s)
}

// Compile is the configuration consumed by one compilation.
type Compile struct {
	TargetDialect Dialect
	Verification  VerificationLevel
	Validation    ValidationLevel
	EmitProof     bool
	Optimize      bool
	// StrictMode emits `set -euf` in the preamble; off emits only `set -f`.
	StrictMode bool
}

// Default returns posix, basic, minimal, no proof, optimize, strict mode.
func Default() Compile {
	return Compile{
		TargetDialect: DialectPosix,
		Verification:  VerificationBasic,
		Validation:    ValidationMinimal,
		EmitProof:     false,
		Optimize:      true,
		StrictMode:    true,
	}
}

// Key is a stable textual form used in cache keys and proofs.
func (c Compile) Key() string {
	return fmt.Sprintf("dialect=%s;verify=%s;validate=%s;proof=%t;optimize=%t;strict=%t",
		c.TargetDialect, c.Verification, c.Validation, c.EmitProof, c.Optimize, c.StrictMode)
}
