package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rash/internal/ast"
	"rash/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.rs",
	Short: "Parse a rash source file and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "diagnostic format (pretty|json|sarif)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	result, err := driver.Parse(args[0])
	if err != nil {
		res := &driver.Result{Name: args[0]}
		if result != nil {
			res.FileSet = result.FileSet
		}
		if printDiagnostics(cmd, format, res, err) {
			return errReported
		}
		return err
	}
	return ast.Dump(cmd.OutOrStdout(), result.Program)
}
