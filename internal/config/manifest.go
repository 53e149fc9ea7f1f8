package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// ManifestNames are tried in order in every directory.
var ManifestNames = []string{"rash.toml", "rash.yaml", "rash.yml"}

type Manifest struct {
	Path    string        `toml:"-" yaml:"-"`
	Root    string        `toml:"-" yaml:"-"`
	Package PackageConfig `toml:"package" yaml:"package"`
	Build   BuildConfig   `toml:"build" yaml:"build"`
}

type PackageConfig struct {
	Name string `toml:"name" yaml:"name"`
	// RashVersion is a semver constraint on the compiler, e.g. ">= 0.3, < 1".
	RashVersion string `toml:"rash_version" yaml:"rash_version"`
}

// BuildConfig mirrors the command-line flags; unset pointer fields keep defaults.
type BuildConfig struct {
	Main         string `toml:"main" yaml:"main"`
	Src          string `toml:"src" yaml:"src"`
	Out          string `toml:"out" yaml:"out"`
	Dialect      string `toml:"dialect" yaml:"dialect"`
	Validation   string `toml:"validation" yaml:"validation"`
	Verification string `toml:"verification" yaml:"verification"`
	Optimize     *bool  `toml:"optimize" yaml:"optimize"`
	StrictMode   *bool  `toml:"strict_mode" yaml:"strict_mode"`
	EmitProof    *bool  `toml:"emit_proof" yaml:"emit_proof"`
}

// FindManifest walks up from startDir looking for a manifest file.
func FindManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range ManifestNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest decodes a TOML or YAML manifest depending on its extension.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m := &Manifest{Path: path, Root: filepath.Dir(path)}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		meta, err := toml.Decode(string(data), m)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, m); err != nil {
			return nil, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported manifest format", path)
	}
	if strings.TrimSpace(m.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	return m, nil
}

// CheckVersion verifies toolVersion against [package].rash_version.
// Development builds without a semantic version always pass.
func (m *Manifest) CheckVersion(toolVersion string) error {
	constraint := strings.TrimSpace(m.Package.RashVersion)
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("%s: invalid rash_version %q: %w", m.Path, constraint, err)
	}
	v, err := semver.NewVersion(strings.TrimPrefix(toolVersion, "v"))
	if err != nil {
		return nil
	}
	if ok, errs := c.Validate(v); !ok {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		return fmt.Errorf("%s: rash %s does not satisfy rash_version %q: %s", m.Path, v, constraint, strings.Join(msgs, "; "))
	}
	return nil
}

// Apply overlays the manifest's [build] settings onto cfg.
func (m *Manifest) Apply(cfg *Compile) error {
	b := m.Build
	if b.Dialect != "" {
		d, err := ParseDialect(b.Dialect)
		if err != nil {
			return fmt.Errorf("%s: %w", m.Path, err)
		}
		cfg.TargetDialect = d
	}
	if b.Validation != "" {
		l, err := ParseValidationLevel(b.Validation)
		if err != nil {
			return fmt.Errorf("%s: %w", m.Path, err)
		}
		cfg.Validation = l
	}
	if b.Verification != "" {
		l, err := ParseVerificationLevel(b.Verification)
		if err != nil {
			return fmt.Errorf("%s: %w", m.Path, err)
		}
		cfg.Verification = l
	}
	if b.Optimize != nil {
		cfg.Optimize = *b.Optimize
	}
	if b.StrictMode != nil {
		cfg.StrictMode = *b.StrictMode
	}
	if b.EmitProof != nil {
		cfg.EmitProof = *b.EmitProof
	}
	return nil
}

// MainPath resolves [build].main relative to the manifest root.
func (m *Manifest) MainPath() string {
	if m.Build.Main == "" {
		return ""
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Build.Main))
}

// SrcDir resolves [build].src relative to the manifest root.
func (m *Manifest) SrcDir() string {
	if m.Build.Src == "" {
		return ""
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Build.Src))
}

// OutPath resolves [build].out relative to the manifest root.
func (m *Manifest) OutPath() string {
	if m.Build.Out == "" {
		return ""
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Build.Out))
}
