package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"rash/internal/buildpipeline"
	"rash/internal/config"
	"rash/internal/driver"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [file.rs|directory]",
	Short: "Compile rash sources to shell scripts",
	Long: `Build compiles one file, or every .rs file under a directory, into shell scripts.
Without a path the project manifest (rash.toml or rash.yaml) names the input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	addCompileFlags(buildCmd)
	buildCmd.Flags().StringP("out", "o", "", "output file, or output directory for directory builds (- for stdout)")
	buildCmd.Flags().String("ui", "auto", "progress view for directory builds (auto|on|off)")
}

const noManifestMessage = "no input given and no rash.toml or rash.yaml found; run `rash build <file.rs>`"

func runBuild(cmd *cobra.Command, args []string) error {
	start := "."
	if len(args) > 0 {
		start = dirOf(args[0])
	}
	setup, err := resolveCompileSetup(cmd, start)
	if err != nil {
		return err
	}
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	target, err := buildTarget(setup.manifest, args)
	if err != nil {
		return err
	}
	if out == "" && setup.manifest != nil {
		out = setup.manifest.OutPath()
	}
	opts, err := setup.driverOptions(cmd)
	if err != nil {
		return err
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", target, err)
	}
	if info.IsDir() {
		return buildDirectory(cmd, setup, opts, target, out, mode)
	}
	return buildFile(cmd, setup, opts, target, out)
}

// buildTarget picks the input: the argument, else [build].main, else
// [build].src, else the manifest root.
func buildTarget(m *config.Manifest, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if m == nil {
		return "", errors.New(noManifestMessage)
	}
	if p := m.MainPath(); p != "" {
		return p, nil
	}
	if d := m.SrcDir(); d != "" {
		return d, nil
	}
	return m.Root, nil
}

func buildFile(cmd *cobra.Command, setup *compileSetup, opts driver.Options, path, out string) error {
	res, err := driver.CompileFile(cmd.Context(), path, opts)
	printed := printDiagnostics(cmd, setup.format, res, err)
	if err != nil {
		if printed {
			return errReported
		}
		return err
	}

	if out == "-" {
		_, err := io.WriteString(cmd.OutOrStdout(), res.Script)
		return err
	}
	out = fileOutputPath(path, out)
	if err := driver.WriteOutput(res, out); err != nil {
		if printDiagnostics(cmd, setup.format, nil, err) {
			return errReported
		}
		return err
	}

	if !setup.quiet {
		note := ""
		if res.Cached {
			note = " (cached)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "built %s%s\n", formatPathForOutput(workingDir(), out), note)
	}
	if setup.timer != nil {
		printStageTimings(cmd.ErrOrStderr(), res.Timings)
		printTimerSummary(cmd.ErrOrStderr(), setup.timer)
	}
	return nil
}

// dirBuild is the outcome of a directory build; outputs[i] is empty when
// results[i] failed.
type dirBuild struct {
	results []driver.DirResult
	outputs []string
}

func buildDirectory(cmd *cobra.Command, setup *compileSetup, opts driver.Options, dir, out string, mode uiMode) error {
	if out == "-" {
		return errors.New("--out - needs a single input file")
	}
	files, err := buildpipeline.Discover(dir)
	if err != nil {
		return fmt.Errorf("failed to scan %q: %w", dir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files under %s", buildpipeline.SourceExt, dir)
	}

	ctx := cmd.Context()
	var b *dirBuild
	if shouldUseTUI(mode) && !setup.quiet {
		b, err = runWithUI("rash build", files, buildpipeline.StageWrite, func(sink buildpipeline.ProgressSink) (*dirBuild, error) {
			uiOpts := opts
			uiOpts.Progress = sink
			return compileAndWrite(ctx, dir, out, uiOpts)
		})
	} else {
		b, err = compileAndWrite(ctx, dir, out, opts)
	}
	if err != nil {
		return err
	}

	cwd := workingDir()
	failed := 0
	for i, r := range b.results {
		printed := printDiagnostics(cmd, setup.format, r.Result, r.Err)
		if r.Err != nil {
			failed++
			if !printed {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
			}
			continue
		}
		if !setup.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "built %s\n", formatPathForOutput(cwd, b.outputs[i]))
		}
	}
	printTimerSummary(cmd.ErrOrStderr(), setup.timer)
	if failed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d files failed\n", failed, len(b.results))
		return errReported
	}
	return nil
}

// compileAndWrite compiles dir and writes every successful script,
// reporting the write stage to opts.Progress.
func compileAndWrite(ctx context.Context, dir, outDir string, opts driver.Options) (*dirBuild, error) {
	results, err := driver.CompileDir(ctx, dir, opts)
	if err != nil {
		return nil, err
	}
	b := &dirBuild{results: results, outputs: make([]string, len(results))}
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		out := dirOutputPath(dir, r.Path, outDir)
		start := time.Now()
		if err := driver.WriteOutput(r.Result, out); err != nil {
			b.results[i].Err = err
			buildpipeline.Report(opts.Progress, r.Path, buildpipeline.StageWrite, buildpipeline.StatusError, err, time.Since(start))
			continue
		}
		b.outputs[i] = out
		buildpipeline.Report(opts.Progress, r.Path, buildpipeline.StageWrite, buildpipeline.StatusDone, nil, time.Since(start))
	}
	return b, nil
}

// fileOutputPath resolves --out for a single file: empty means next to the
// source, an existing directory or a trailing separator means inside it.
func fileOutputPath(src, out string) string {
	if out == "" {
		return driver.OutputPathFor(src, "")
	}
	if strings.HasSuffix(out, string(filepath.Separator)) || strings.HasSuffix(out, "/") {
		return driver.OutputPathFor(src, out)
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return driver.OutputPathFor(src, out)
	}
	return out
}

// dirOutputPath mirrors the layout under root into outDir.
func dirOutputPath(root, src, outDir string) string {
	if outDir == "" {
		return driver.OutputPathFor(src, "")
	}
	rel, err := filepath.Rel(root, filepath.Dir(src))
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = ""
	}
	return driver.OutputPathFor(src, filepath.Join(outDir, rel))
}

func dirOf(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}

func workingDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

func formatPathForOutput(root, path string) string {
	if root == "" || path == "" {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
