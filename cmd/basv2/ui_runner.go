package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"basv2/internal/driver"
	"basv2/internal/ui"
)

type checkOutcome struct {
	results []driver.FileResult
	err     error
}

// runCheckDirWithUI runs CheckDir while a progress view renders to stderr,
// keeping stdout clean for the report.
func runCheckDirWithUI(ctx context.Context, title string, files []string, dir string, opts driver.CheckOptions) ([]driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		_, results, err := driver.CheckDir(ctx, dir, optsCopy)
		outcomeCh <- checkOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithInput(nil))
	_, uiErr := program.Run()
	// модель могла выйти раньше: дочитываем канал, чтобы CheckDir не заблокировался
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
