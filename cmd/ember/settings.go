package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ember/internal/project"
)

// settings — собранные настройки прогона: умолчания, поверх них ember.toml,
// поверх него флаги командной строки.
type settings struct {
	useColor       bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	jobs           int
	cache          bool
}

func resolveSettings(cmd *cobra.Command, startDir string) (settings, error) {
	cfg := project.DefaultConfig()
	if manifest, ok, err := project.Load(startDir); err != nil {
		return settings{}, err
	} else if ok {
		cfg = manifest.Config
	}

	flags := cmd.Root().PersistentFlags()

	colorMode, err := flags.GetString("color")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get color flag: %w", err)
	}
	if colorMode == "" {
		colorMode = cfg.Output.Color
	}
	var useColor bool
	switch colorMode {
	case "always":
		useColor = true
	case "never":
		useColor = false
	case "auto":
		useColor = isTerminal(os.Stderr)
	default:
		return settings{}, fmt.Errorf("unknown color mode %q (must be auto, always or never)", colorMode)
	}

	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = cfg.Output.MaxDiagnostics
	}

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get timings flag: %w", err)
	}

	return settings{
		useColor:       useColor,
		quiet:          quiet,
		timings:        timings,
		maxDiagnostics: maxDiagnostics,
		jobs:           cfg.Fold.Jobs,
		cache:          cfg.Fold.Cache,
	}, nil
}
