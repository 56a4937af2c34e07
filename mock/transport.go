// Package mock provides test doubles for scout interfaces using
// function fields.
package mock

import (
	"context"
	"sync"

	"github.com/courtside/scout"
)

// Interface compliance checks.
var (
	_ scout.Transport = (*Transport)(nil)
	_ scout.Transport = (*ScriptedTransport)(nil)
)

// Transport is a test double for scout.Transport.
// Set OpenFn before calling Open. CloseFn is nil-safe (no-op) because
// controller code always closes transports during teardown.
type Transport struct {
	OpenFn  func(ctx context.Context, req scout.Request, h scout.Handler) error
	CloseFn func() error
}

// Open delegates to OpenFn.
func (t *Transport) Open(ctx context.Context, req scout.Request, h scout.Handler) error {
	return t.OpenFn(ctx, req, h)
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (t *Transport) Close() error {
	if t.CloseFn == nil {
		return nil
	}
	return t.CloseFn()
}

// ScriptedTransport replays a fixed sequence of deltas synchronously
// from Open, then reports a clean close (or the configured error).
// Deltas are delivered exactly as scripted, so tests control frame
// boundaries precisely.
type ScriptedTransport struct {
	Deltas  []string
	Err     error // delivered via OnError after the deltas, instead of OnClose
	SkipEnd bool  // suppress the trailing OnClose/OnError entirely

	mu      sync.Mutex
	closed  bool
	handler scout.Handler
}

// Open confirms the connection, replays the script, and terminates
// delivery unless SkipEnd is set.
func (t *ScriptedTransport) Open(_ context.Context, _ scout.Request, h scout.Handler) error {
	t.mu.Lock()
	t.handler = h
	t.mu.Unlock()

	h.OnOpen()
	for _, delta := range t.Deltas {
		t.mu.Lock()
		closed := t.closed
		t.mu.Unlock()
		if closed {
			return nil
		}
		h.OnData(delta)
	}
	if t.SkipEnd {
		return nil
	}
	if t.Err != nil {
		h.OnError(t.Err)
	} else {
		h.OnClose()
	}
	return nil
}

// Close records the close; replay stops before the next delta.
func (t *ScriptedTransport) Close() error {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	return nil
}

// Handler returns the handler captured at Open, for tests that need to
// push extra deliveries after the script ran.
func (t *ScriptedTransport) Handler() scout.Handler {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.handler
}
