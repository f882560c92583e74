package main

import (
	"os"

	"ember/internal/diag"
	"ember/internal/diagfmt"
	"ember/internal/source"
)

// printDiagnostics рендерит bag в stderr в выбранном формате.
func printDiagnostics(bag *diag.Bag, fs *source.FileSet, format string, st settings) error {
	if bag.Len() == 0 {
		return nil
	}
	if format == "json" {
		return diagfmt.JSON(os.Stderr, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			Max:              st.maxDiagnostics,
			IncludeNotes:     true,
		})
	}
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:       st.useColor,
		ShowNotes:   true,
		ShowPreview: true,
		Max:         st.maxDiagnostics,
	})
	return nil
}
