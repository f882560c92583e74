package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ember/internal/driver"
	"ember/internal/ir"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.eir>",
	Short: "Parse and validate an IR file",
	Long:  `Check parses textual IR and verifies the structural invariants: terminators, def-before-use, use-edge symmetry and result shapes`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	st, err := resolveSettings(cmd, filepath.Dir(filePath))
	if err != nil {
		return err
	}

	result, err := driver.ParseFile(filePath, st.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if err := printDiagnostics(result.Bag, result.FileSet, "pretty", st); err != nil {
		return err
	}
	if !result.OK {
		return fmt.Errorf("%s: parse failed", filePath)
	}

	if err := ir.Validate(result.Module); err != nil {
		return fmt.Errorf("%s: %w", filePath, err)
	}
	if !st.quiet {
		fmt.Fprintf(os.Stdout, "%s: ok\n", filePath)
	}
	return nil
}
