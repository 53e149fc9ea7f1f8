package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rash/internal/config"
	"rash/internal/driver"
	"rash/internal/observ"
	"rash/internal/version"
)

func addCompileFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("dialect", "", "target shell dialect (posix|bash|dash|ash)")
	f.String("verify", "", "verification level (none|basic|strict|paranoid)")
	f.String("validate", "", "validation level (none|minimal|strict|paranoid)")
	f.Bool("proof", false, "write a verification proof next to each script")
	f.Bool("no-optimize", false, "disable constant folding")
	f.Bool("no-strict", false, "omit 'set -eu' from the preamble")
	f.Bool("cache", false, "reuse scripts from the on-disk compile cache")
	f.Int("jobs", 0, "max parallel workers for directories (0=auto)")
	f.String("format", "pretty", "diagnostic format (pretty|json|sarif)")
}

// compileSetup is the resolved configuration of a compiling command.
// Precedence: flags, then the manifest, then defaults.
type compileSetup struct {
	cfg      config.Compile
	manifest *config.Manifest
	format   string
	quiet    bool
	timer    *observ.Timer
}

func loadProjectManifest(dir string) (*config.Manifest, bool, error) {
	path, ok, err := config.FindManifest(dir)
	if err != nil || !ok {
		return nil, false, err
	}
	m, err := config.LoadManifest(path)
	if err != nil {
		return nil, false, err
	}
	if err := m.CheckVersion(version.Version); err != nil {
		return nil, false, err
	}
	return m, true, nil
}

func resolveCompileSetup(cmd *cobra.Command, startDir string) (*compileSetup, error) {
	manifest, _, err := loadProjectManifest(startDir)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	var o config.Overrides
	stringFlag := func(name string) *string {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetString(name) //nolint:errcheck
		return &v
	}
	negatedFlag := func(name string) *bool {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetBool(name) //nolint:errcheck
		v = !v
		return &v
	}
	o.Dialect = stringFlag("dialect")
	o.Verification = stringFlag("verify")
	o.Validation = stringFlag("validate")
	o.Optimize = negatedFlag("no-optimize")
	o.StrictMode = negatedFlag("no-strict")
	if f.Changed("proof") {
		v, _ := f.GetBool("proof") //nolint:errcheck
		o.EmitProof = &v
	}

	cfg, err := config.Resolve(manifest, o)
	if err != nil {
		return nil, err
	}

	format, err := f.GetString("format")
	if err != nil {
		return nil, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "sarif":
	default:
		return nil, fmt.Errorf("unknown format: %s (expected pretty|json|sarif)", format)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	setup := &compileSetup{
		cfg:      cfg,
		manifest: manifest,
		format:   format,
		quiet:    quiet || format != "pretty",
	}
	if timings {
		setup.timer = observ.NewTimer()
	}
	return setup, nil
}

// driverOptions builds the options shared by every file of the command.
func (s *compileSetup) driverOptions(cmd *cobra.Command) (driver.Options, error) {
	opts := driver.Options{
		Config:  s.cfg,
		Version: version.Version,
		Timer:   s.timer,
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	opts.Jobs = jobs

	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return opts, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if useCache {
		cache, err := driver.OpenCache("rash")
		if err != nil {
			return opts, fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}
