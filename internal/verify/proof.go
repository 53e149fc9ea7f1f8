package verify

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"

	"rash/internal/config"
)

// Proof records what was compiled, how, and which checks passed. Its
// canonical form is RFC 8785 JSON so identical builds hash identically.
type Proof struct {
	Tool         string        `json:"tool"`
	Version      string        `json:"version"`
	Dialect      string        `json:"dialect"`
	Validation   string        `json:"validation"`
	Verification string        `json:"verification"`
	SourceSHA256 string        `json:"source_sha256"`
	ScriptSHA256 string        `json:"script_sha256"`
	Effects      []string      `json:"effects"`
	Checks       []CheckResult `json:"checks"`
}

// NewProof builds a proof for one compilation.
func NewProof(version string, cfg config.Compile, src []byte, script string, effects []string, rep *Report) *Proof {
	p := &Proof{
		Tool:         "rash",
		Version:      version,
		Dialect:      cfg.TargetDialect.String(),
		Validation:   cfg.Validation.String(),
		Verification: cfg.Verification.String(),
		SourceSHA256: digest(src),
		ScriptSHA256: digest([]byte(script)),
		Effects:      append([]string{}, effects...),
		Checks:       []CheckResult{},
	}
	if rep != nil {
		p.Checks = append(p.Checks, rep.Checks...)
	}
	return p
}

func digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Canonical returns the JCS form of p.
func (p *Proof) Canonical() ([]byte, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal proof: %w", err)
	}
	out, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("canonicalize proof: %w", err)
	}
	return out, nil
}
