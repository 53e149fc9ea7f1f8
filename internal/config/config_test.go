package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"rash/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.Equal(t, config.DialectPosix, cfg.TargetDialect)
	require.Equal(t, config.VerificationBasic, cfg.Verification)
	require.Equal(t, config.ValidationMinimal, cfg.Validation)
	require.False(t, cfg.EmitProof)
	require.True(t, cfg.Optimize)
	require.True(t, cfg.StrictMode)
}

func TestParseLevels(t *testing.T) {
	d, err := config.ParseDialect("Bash")
	require.NoError(t, err)
	require.Equal(t, config.DialectBash, d)
	d, err = config.ParseDialect("sh")
	require.NoError(t, err)
	require.Equal(t, config.DialectPosix, d)
	_, err = config.ParseDialect("zsh")
	require.Error(t, err)

	v, err := config.ParseValidationLevel("paranoid")
	require.NoError(t, err)
	require.Equal(t, config.ValidationParanoid, v)
	require.Equal(t, "paranoid", v.String())
	_, err = config.ParseValidationLevel("basic")
	require.Error(t, err)

	vr, err := config.ParseVerificationLevel("strict")
	require.NoError(t, err)
	require.Equal(t, config.VerificationStrict, vr)
	require.Equal(t, "basic", config.VerificationBasic.String())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "rash.toml"), "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, ok, err := config.FindManifest(nested)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, filepath.Join(root, "rash.toml"), path)
}

func TestLoadTOMLManifest(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "rash.toml")
	writeFile(t, path, `[package]
name = "installer"
rash_version = ">= 0.1.0"

[build]
main = "src/main.rs"
out = "dist/install.sh"
dialect = "dash"
validation = "strict"
optimize = false
`)
	m, err := config.LoadManifest(path)
	require.NoError(t, err)
	require.Equal(t, "installer", m.Package.Name)
	require.Equal(t, filepath.Join(root, "src", "main.rs"), m.MainPath())
	require.Equal(t, filepath.Join(root, "dist", "install.sh"), m.OutPath())

	cfg, err := config.Resolve(m, config.Overrides{})
	require.NoError(t, err)
	require.Equal(t, config.DialectDash, cfg.TargetDialect)
	require.Equal(t, config.ValidationStrict, cfg.Validation)
	require.False(t, cfg.Optimize)
	require.True(t, cfg.StrictMode)
}

func TestLoadTOMLRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rash.toml")
	writeFile(t, path, "[package]\nname = \"x\"\n[build]\nshell = \"zsh\"\n")
	_, err := config.LoadManifest(path)
	require.ErrorContains(t, err, "unknown key")
}

func TestLoadYAMLManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rash.yaml")
	writeFile(t, path, "package:\n  name: demo\nbuild:\n  verification: paranoid\n  emit_proof: true\n")
	m, err := config.LoadManifest(path)
	require.NoError(t, err)
	cfg, err := config.Resolve(m, config.Overrides{})
	require.NoError(t, err)
	require.Equal(t, config.VerificationParanoid, cfg.Verification)
	require.True(t, cfg.EmitProof)
}

func TestManifestRequiresName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rash.toml")
	writeFile(t, path, "[build]\nout = \"x.sh\"\n")
	_, err := config.LoadManifest(path)
	require.ErrorContains(t, err, "missing [package].name")
}

func TestOverridesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rash.toml")
	writeFile(t, path, "[package]\nname = \"x\"\n[build]\ndialect = \"bash\"\nstrict_mode = false\n")
	m, err := config.LoadManifest(path)
	require.NoError(t, err)

	dialect := "ash"
	strict := true
	cfg, err := config.Resolve(m, config.Overrides{Dialect: &dialect, StrictMode: &strict})
	require.NoError(t, err)
	require.Equal(t, config.DialectAsh, cfg.TargetDialect)
	require.True(t, cfg.StrictMode)

	bad := "fish"
	_, err = config.Resolve(nil, config.Overrides{Dialect: &bad})
	require.Error(t, err)
}

func TestCheckVersion(t *testing.T) {
	m := &config.Manifest{Path: "rash.toml"}
	m.Package.RashVersion = ">= 0.2.0, < 1.0.0"
	require.NoError(t, m.CheckVersion("0.3.1"))
	require.NoError(t, m.CheckVersion("v0.2.0"))
	require.Error(t, m.CheckVersion("1.2.0"))
	require.NoError(t, m.CheckVersion("dev"))

	m.Package.RashVersion = "not a constraint"
	require.Error(t, m.CheckVersion("0.3.1"))
}

func TestKeyIsStable(t *testing.T) {
	require.Equal(t,
		"dialect=posix;verify=basic;validate=minimal;proof=false;optimize=true;strict=true",
		config.Default().Key())
}
