package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"jsslice/internal/driver"
	"jsslice/internal/pipeline"
	"jsslice/internal/ui"
)

type checkOutcome struct {
	report *driver.CheckReport
	err    error
}

// runCheckWithUI runs CheckPaths while a Bubble Tea model renders progress.
// files must be the list CheckPaths will process so events match rows.
func runCheckWithUI(ctx context.Context, title string, files []string, roots []string, opts driver.CheckOptions) (*driver.CheckReport, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		opts.Progress = pipeline.ChannelSink{Ch: events}
		report, err := driver.CheckPaths(ctx, roots, opts)
		outcomeCh <- checkOutcome{report: report, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// модель выходит либо после закрытия events, либо по Ctrl+C; во втором
	// случае проверку надо остановить и дочитать события
	cancel()
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.report, uiErr
	}
	return outcome.report, outcome.err
}
