package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"displaystr/internal/driver"
	"displaystr/internal/source"
	"displaystr/internal/ui"
)

type expandOutcome struct {
	fs      *source.FileSet
	results []driver.ExpandDirResult
	err     error
}

// expandDirWithUI runs ExpandDir in the background while a Bubble Tea
// program renders per-file progress from the event channel.
func expandDirWithUI(cmd *cobra.Command, dir string, jobs int, opts driver.Options) (*source.FileSet, []driver.ExpandDirResult, error) {
	files, err := driver.ListDeclFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan expandOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		fs, results, err := driver.ExpandDir(cmd.Context(), dir, jobs, optsCopy)
		outcomeCh <- expandOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("expanding "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
