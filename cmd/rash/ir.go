package main

import (
	"github.com/spf13/cobra"

	"rash/internal/driver"
	"rash/internal/ir"
)

var irCmd = &cobra.Command{
	Use:   "ir [flags] file.rs",
	Short: "Print the shell IR of a rash source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runIR,
}

func init() {
	addCompileFlags(irCmd)
}

func runIR(cmd *cobra.Command, args []string) error {
	setup, err := resolveCompileSetup(cmd, dirOf(args[0]))
	if err != nil {
		return err
	}
	opts, err := setup.driverOptions(cmd)
	if err != nil {
		return err
	}
	res, err := driver.LowerFile(args[0], opts)
	if err != nil {
		if printDiagnostics(cmd, setup.format, res, err) {
			return errReported
		}
		return err
	}
	return ir.Dump(cmd.OutOrStdout(), res.Module)
}
