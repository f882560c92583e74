package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ember/internal/driver"
	"ember/internal/ir"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <file.eir>",
	Short: "Parse an IR file and print it back",
	Long:  `Dump parses textual IR and prints the canonical form without folding, useful for normalizing hand-written files`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
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

	return ir.DumpModule(os.Stdout, result.Module, ir.DumpOptions{})
}
