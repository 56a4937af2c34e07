package controller

import "github.com/courtside/scout"

// Handle is the caller's view of one submitted session. It stays valid
// after the session terminates or is superseded.
type Handle struct {
	c *Controller
	r *run
}

// ID returns the session's unique token.
func (h *Handle) ID() string {
	return h.r.session.ID()
}

// Snapshot returns an immutable copy of the session's current state.
func (h *Handle) Snapshot() scout.Snapshot {
	h.c.mu.Lock()
	defer h.c.mu.Unlock()
	return h.r.session.Snapshot()
}

// Cancel cancels this session if it is still live. Idempotent: calling
// it on a terminal or superseded session has no effect.
func (h *Handle) Cancel() {
	h.c.cancelRun(h.r)
}

// Done is closed once the session reaches a terminal status and its
// transport is released.
func (h *Handle) Done() <-chan struct{} {
	return h.r.done
}
