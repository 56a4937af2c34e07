package mock

import (
	"sync"

	"github.com/courtside/scout"
)

// Interface compliance check.
var _ scout.Handler = (*Handler)(nil)

// Handler is a test double for scout.Handler. Unset callbacks are
// no-ops. Recorded state is safe to inspect from the test goroutine
// while a transport delivers from another.
type Handler struct {
	OnOpenFn  func()
	OnDataFn  func(delta string)
	OnErrorFn func(err error)
	OnCloseFn func()

	mu     sync.Mutex
	opened bool
	deltas []string
	errs   []error
	closed bool
}

func (h *Handler) OnOpen() {
	h.mu.Lock()
	h.opened = true
	h.mu.Unlock()
	if h.OnOpenFn != nil {
		h.OnOpenFn()
	}
}

func (h *Handler) OnData(delta string) {
	h.mu.Lock()
	h.deltas = append(h.deltas, delta)
	h.mu.Unlock()
	if h.OnDataFn != nil {
		h.OnDataFn(delta)
	}
}

func (h *Handler) OnError(err error) {
	h.mu.Lock()
	h.errs = append(h.errs, err)
	h.mu.Unlock()
	if h.OnErrorFn != nil {
		h.OnErrorFn(err)
	}
}

func (h *Handler) OnClose() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	if h.OnCloseFn != nil {
		h.OnCloseFn()
	}
}

// Opened reports whether OnOpen was called.
func (h *Handler) Opened() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.opened
}

// Deltas returns the recorded data deliveries in order.
func (h *Handler) Deltas() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.deltas...)
}

// Errors returns the recorded error deliveries in order.
func (h *Handler) Errors() []error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]error(nil), h.errs...)
}

// Closed reports whether OnClose was called.
func (h *Handler) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}
