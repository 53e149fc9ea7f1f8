package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"rash/internal/diag"
	"rash/internal/diagfmt"
	"rash/internal/driver"
	"rash/internal/source"
	"rash/internal/version"
)

// printDiagnostics renders the warnings of res and the diagnostic of err.
// Pretty output goes to stderr; json and sarif go to stdout. It reports
// whether anything was printed.
func printDiagnostics(cmd *cobra.Command, format string, res *driver.Result, err error) bool {
	maxDiagnostics, flagErr := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if flagErr != nil {
		maxDiagnostics = 100
	}
	bag := driver.Diagnostics(res, err, maxDiagnostics)
	if bag.Len() == 0 {
		return false
	}
	var fs *source.FileSet
	if res != nil {
		fs = res.FileSet
	}
	return renderBag(cmd, format, bag, fs, cmd.OutOrStdout(), cmd.ErrOrStderr()) == nil
}

func renderBag(cmd *cobra.Command, format string, bag *diag.Bag, fs *source.FileSet, stdout, stderr io.Writer) error {
	bag.Sort()
	switch format {
	case "json":
		return diagfmt.JSON(stdout, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			IncludeFixes:     true,
		})
	case "sarif":
		return diagfmt.Sarif(stdout, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "rash",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	}
	diagfmt.Pretty(stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		Context:   2,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
		ShowFixes: true,
	})
	return nil
}
