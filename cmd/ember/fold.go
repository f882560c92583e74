package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ember/internal/driver"
)

var foldCmd = &cobra.Command{
	Use:   "fold [flags] <file.eir>",
	Short: "Fold compile-time constants in an IR file",
	Long:  `Fold runs the constant folding pass over textual IR, reports static overflow diagnostics and prints the folded module`,
	Args:  cobra.ExactArgs(1),
	RunE:  runFold,
}

func init() {
	foldCmd.Flags().Int("jobs", 0, "max functions folded in parallel (0=auto, 1=sequential)")
	foldCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	foldCmd.Flags().Bool("no-cache", false, "skip the on-disk fold cache")
	foldCmd.Flags().Bool("stats", false, "print fold statistics")
}

func runFold(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	st, err := resolveSettings(cmd, filepath.Dir(filePath))
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs == 0 {
		jobs = st.jobs
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	stats, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return fmt.Errorf("failed to get stats flag: %w", err)
	}

	var cache *driver.DiskCache
	if st.cache && !noCache {
		cache, err = driver.OpenDiskCache("ember")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
	}

	result, err := driver.FoldFile(cmd.Context(), filePath, driver.Options{
		Jobs:           jobs,
		MaxDiagnostics: st.maxDiagnostics,
		Timings:        st.timings,
		Cache:          cache,
	})
	if err != nil {
		return fmt.Errorf("folding failed: %w", err)
	}

	if err := printDiagnostics(result.Bag, result.FileSet, format, st); err != nil {
		return err
	}

	if !st.quiet {
		fmt.Fprint(os.Stdout, result.Dump)
	}
	if stats && !st.quiet {
		suffix := ""
		if result.CacheHit {
			suffix = " (cached)"
		}
		fmt.Fprintf(os.Stdout, "\nfolded %d instructions%s\n", result.Folded, suffix)
	}

	if result.Bag.HasErrors() {
		return fmt.Errorf("%s: fold found errors", filePath)
	}
	return nil
}
