package bubbletea

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/courtside/scout"
)

// snapshotFeed bridges controller callbacks into Bubble Tea messages.
// Snapshots are cumulative, so intermediate ones may be coalesced:
// push never blocks the controller's delivery path, and await always
// observes the newest snapshot. The terminal snapshot is always the
// last push, so it is never lost.
type snapshotFeed struct {
	mu     sync.Mutex
	latest scout.Snapshot
	has    bool
	ready  chan struct{}
}

func newSnapshotFeed() *snapshotFeed {
	return &snapshotFeed{ready: make(chan struct{}, 1)}
}

func (f *snapshotFeed) push(s scout.Snapshot) {
	f.mu.Lock()
	f.latest = s
	f.has = true
	f.mu.Unlock()
	select {
	case f.ready <- struct{}{}:
	default:
	}
}

// peek returns the newest snapshot without consuming the ready signal.
func (f *snapshotFeed) peek() (scout.Snapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest, f.has
}

func (f *snapshotFeed) await() tea.Cmd {
	return func() tea.Msg {
		<-f.ready
		f.mu.Lock()
		defer f.mu.Unlock()
		return SnapshotMsg{Snapshot: f.latest}
	}
}
