// Package bubbletea provides a Bubble Tea TUI for streaming research
// reports.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/courtside/scout"
)

// ResearchFunc submits one research request. onUpdate receives every
// published snapshot, including the terminal one. The returned cancel
// function stops the stream; calling it after the session terminated
// is a no-op. A non-nil error means the request itself was invalid and
// nothing was submitted.
type ResearchFunc func(ctx context.Context, req scout.Request, onUpdate func(scout.Snapshot)) (cancel func(), err error)

// Run creates and runs the Bubble Tea TUI program. It blocks until the
// program exits. When ctx is cancelled the program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// SnapshotMsg delivers the latest session snapshot to the model.
type SnapshotMsg struct {
	Snapshot scout.Snapshot
}
