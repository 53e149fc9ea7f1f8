package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"rash/internal/buildpipeline"
	"rash/internal/ui"
)

// runWithUI runs work in the background while a progress view consumes its
// events. work must send every event through the sink it is given.
func runWithUI[T any](title string, files []string, final buildpipeline.Stage, work func(sink buildpipeline.ProgressSink) (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan outcome, 1)

	go func() {
		v, err := work(buildpipeline.ChannelSink{Ch: events})
		outcomeCh <- outcome{value: v, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, final, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// the view may quit early; keep draining so the worker never blocks
	go func() {
		for range events {
		}
	}()
	res := <-outcomeCh
	if uiErr != nil {
		return res.value, uiErr
	}
	return res.value, res.err
}
