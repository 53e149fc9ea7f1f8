package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rash/internal/buildpipeline"
	"rash/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.rs|directory>...",
	Short: "Run the whole pipeline without writing scripts",
	Long:  `Check parses, validates, scans, lowers, emits and verifies each input and reports diagnostics. Nothing is written to disk.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	addCompileFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	setup, err := resolveCompileSetup(cmd, dirOf(args[0]))
	if err != nil {
		return err
	}
	opts, err := setup.driverOptions(cmd)
	if err != nil {
		return err
	}

	var results []driver.DirResult
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return fmt.Errorf("failed to stat %q: %w", arg, err)
		}
		if info.IsDir() {
			dirResults, err := driver.CompileDir(cmd.Context(), arg, opts)
			if err != nil {
				return err
			}
			results = append(results, dirResults...)
			continue
		}
		res, err := driver.CompileFile(cmd.Context(), arg, opts)
		results = append(results, driver.DirResult{Path: arg, Result: res, Err: err})
	}
	if len(results) == 0 {
		return fmt.Errorf("no %s files found", buildpipeline.SourceExt)
	}

	failed := 0
	for _, r := range results {
		printed := printDiagnostics(cmd, setup.format, r.Result, r.Err)
		if r.Err != nil {
			failed++
			if !printed {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
			}
			continue
		}
		if !setup.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "ok %s (effects: %s)\n", r.Path, r.Result.Effects)
		}
	}
	printTimerSummary(cmd.ErrOrStderr(), setup.timer)
	if failed > 0 {
		return errReported
	}
	return nil
}
