// Package tui provides the Bubble Tea dashboard: a vitals header strip
// refreshed on a tick, and a chat panel that streams classified model
// responses.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"vigil"
)

// ChatFunc runs one model request. The onFrame callback receives each
// classified snapshot. The function blocks until the stream completes or
// the context is cancelled.
type ChatFunc func(ctx context.Context, req vigil.ChatRequest, onFrame func(vigil.Frame)) error

// Snapshot is the vitals readout shown in the header strip.
type Snapshot struct {
	HeartRate   float64
	SpO2        int
	Temperature float64
	Systolic    int
	Diastolic   int
	Status      vigil.SerialStatus
}

// SnapshotFunc supplies the current vitals readout.
type SnapshotFunc func() Snapshot

// Run creates and runs the Bubble Tea program. It blocks until the
// program exits; cancelling the context quits it.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// FrameMsg delivers one classified snapshot to the model.
type FrameMsg struct {
	Frame vigil.Frame
}

// ChatDoneMsg signals that the streamed response has completed.
type ChatDoneMsg struct {
	Err error
}
