package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"displaystr/internal/diag"
	"displaystr/internal/diagfmt"
	"displaystr/internal/source"
)

// printDiagnostics renders one bag to stderr in the format selected by the
// command's --format flag.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	format := "pretty"
	if f := cmd.Flags().Lookup("format"); f != nil {
		format = f.Value.String()
	}
	withNotes, _ := cmd.Flags().GetBool("with-notes")
	fullPath, _ := cmd.Flags().GetBool("fullpath")

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			Context:   2,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
		return nil
	case "json":
		return diagfmt.JSON(os.Stderr, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
