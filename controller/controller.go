// Package controller orchestrates single-flight research streaming
// sessions: it owns the live transport, feeds decoded frames through
// the interpreter into the session state machine, and publishes
// immutable snapshots to the caller.
package controller

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/courtside/scout"
	"github.com/courtside/scout/wire"
)

// Controller accepts Submit and Cancel and enforces single-flight
// semantics: at most one live stream at a time. A new Submit cancels
// the prior session before its own transport opens.
//
// Snapshot callbacks run on the controller's delivery path. Do not
// call Submit or Cancel from inside one; use the returned Handle from
// another goroutine instead.
type Controller struct {
	mu   sync.Mutex
	dial scout.Dial
	log  zerolog.Logger

	// suggestionsComplete treats SuggestionsReady as the terminal
	// signal, for backend variants that never send an end frame.
	suggestionsComplete bool

	live *run
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithSuggestionsComplete makes SuggestionsReady terminal: the session
// completes as soon as suggestions arrive. Off by default; an explicit
// end frame or a clean transport close is the authoritative signal.
func WithSuggestionsComplete() Option {
	return func(c *Controller) { c.suggestionsComplete = true }
}

// New creates a Controller that dials a fresh transport per submission.
func New(dial scout.Dial, opts ...Option) *Controller {
	c := &Controller{
		dial: dial,
		log:  zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SubmitOption configures a single Submit invocation.
type SubmitOption func(*submitConfig)

type submitConfig struct {
	onUpdate func(scout.Snapshot)
}

// OnUpdate sets the callback that receives a snapshot after every
// state change of the submitted session. If not set, updates are
// observable only through Handle.Snapshot.
func OnUpdate(fn func(scout.Snapshot)) SubmitOption {
	return func(cfg *submitConfig) { cfg.onUpdate = fn }
}

// run binds one session to its transport and decoder for its lifetime.
type run struct {
	session   *scout.Session
	transport scout.Transport
	decoder   wire.Decoder
	onUpdate  func(scout.Snapshot)
	ctx       context.Context
	cancelCtx context.CancelFunc
	done      chan struct{}
	stop      sync.Once
}

// shutdown releases the run's resources exactly once. Safe to call
// from any goroutine.
func (r *run) shutdown() {
	r.stop.Do(func() {
		if r.cancelCtx != nil {
			r.cancelCtx()
		}
		_ = r.transport.Close()
		close(r.done)
	})
}

// Submit starts a new session for req. If a prior session is
// non-terminal it is cancelled first, releasing its transport.
//
// The returned error is non-nil only for programmer errors (invalid
// request). Transport open failures surface on the session itself as
// an errored snapshot, never as a Submit error.
func (c *Controller) Submit(ctx context.Context, req scout.Request, opts ...SubmitOption) (*Handle, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var cfg submitConfig
	for _, o := range opts {
		o(&cfg)
	}

	ctx, cancel := context.WithCancel(ctx)
	r := &run{
		session:   scout.NewSession(),
		transport: c.dial(),
		onUpdate:  cfg.onUpdate,
		ctx:       ctx,
		cancelCtx: cancel,
		done:      make(chan struct{}),
	}

	c.mu.Lock()
	c.cancelLocked()
	c.live = r
	c.mu.Unlock()

	c.log.Debug().Str("session", r.session.ID()).Str("topic", req.Topic).Msg("submitting research request")

	// A caller-provided deadline or cancellation on ctx routes through
	// the normal cancel path; the state machine never sees timeouts as
	// a special case.
	go func() {
		select {
		case <-ctx.Done():
			c.cancelRun(r)
		case <-r.done:
		}
	}()

	if err := r.transport.Open(ctx, req, &runHandler{c: c, r: r}); err != nil {
		c.mu.Lock()
		if c.live == r {
			c.live = nil
		}
		if !r.session.Status().Terminal() {
			if r.ctx.Err() != nil {
				// The caller's ctx aborted the open; that is a
				// deliberate stop, not a connection failure.
				r.session.Cancel()
			} else {
				r.session.Fail(scout.ErrConnectionFailed, err.Error())
			}
			c.publishLocked(r)
		}
		c.mu.Unlock()
		r.shutdown()
		return &Handle{c: c, r: r}, nil
	}

	// Initial snapshot, unless the transport already ran the session to
	// a terminal state during Open (or a racing Submit superseded it).
	c.mu.Lock()
	if c.live == r {
		c.publishLocked(r)
	}
	c.mu.Unlock()

	return &Handle{c: c, r: r}, nil
}

// Cancel cancels the live session, if any. Idempotent and safe to call
// mid-stream or during teardown. After Cancel returns, no further
// snapshot is delivered for the cancelled session.
func (c *Controller) Cancel() {
	c.mu.Lock()
	c.cancelLocked()
	c.mu.Unlock()
}

// cancelRun cancels r only if it is still the live run.
func (c *Controller) cancelRun(r *run) {
	c.mu.Lock()
	if c.live == r {
		c.cancelLocked()
	}
	c.mu.Unlock()
	// A superseded run may still hold resources if its transport open
	// raced with the supersession.
	r.shutdown()
}

// cancelLocked moves the live session to cancelled, publishes the
// final snapshot, and releases the transport. Caller holds c.mu.
func (c *Controller) cancelLocked() {
	r := c.live
	if r == nil {
		return
	}
	c.live = nil
	if !r.session.Status().Terminal() {
		r.session.Cancel()
		c.log.Debug().Str("session", r.session.ID()).Msg("session cancelled")
		c.publishLocked(r)
	}
	r.shutdown()
}

// finishLocked clears the live slot after a natural terminal state and
// releases the transport. Caller holds c.mu.
func (c *Controller) finishLocked(r *run) {
	if c.live == r {
		c.live = nil
	}
	if rem := strings.TrimSpace(r.decoder.Remainder()); rem != "" {
		c.log.Warn().Str("session", r.session.ID()).Int("bytes", len(rem)).
			Msg("discarding unterminated trailing data")
	}
	r.shutdown()
}

// publishLocked delivers the current snapshot to the run's callback.
// Caller holds c.mu, which is what guarantees that no update is
// delivered after Cancel returns.
func (c *Controller) publishLocked(r *run) {
	if r.onUpdate != nil {
		r.onUpdate(r.session.Snapshot())
	}
}

// runHandler adapts transport callbacks to controller methods. Every
// callback re-checks that its run is still live before doing any work,
// so frames for a superseded session are dropped before interpretation.
type runHandler struct {
	c *Controller
	r *run
}

func (h *runHandler) OnOpen() { h.c.applyOpen(h.r) }

func (h *runHandler) OnData(delta string) { h.c.applyData(h.r, delta) }

func (h *runHandler) OnError(err error) { h.c.applyError(h.r, err) }

func (h *runHandler) OnClose() { h.c.applyClose(h.r) }

func (c *Controller) applyOpen(r *run) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.live != r || r.session.Status().Terminal() {
		return
	}
	r.session.MarkOpen()
	c.publishLocked(r)
}

func (c *Controller) applyData(r *run, delta string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.live != r || r.session.Status().Terminal() {
		return
	}

	applied := false
	for _, f := range r.decoder.Feed(delta) {
		if r.session.Status().Terminal() {
			// An error or end frame earlier in this delta already
			// terminated the session; the rest is dropped.
			break
		}
		evt := wire.Interpret(f)
		if de, ok := evt.(scout.DecodeError); ok {
			c.log.Warn().Str("session", r.session.ID()).Str("event", de.EventName).
				Str("reason", de.Reason).Msg("undecodable frame")
		}
		r.session.Apply(evt)
		if _, ok := evt.(scout.SuggestionsReady); ok && c.suggestionsComplete {
			r.session.Complete()
		}
		applied = true
	}
	if !applied {
		return
	}

	c.publishLocked(r)
	if r.session.Status().Terminal() {
		c.finishLocked(r)
	}
}

func (c *Controller) applyError(r *run, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.live != r || r.session.Status().Terminal() {
		return
	}
	if r.ctx.Err() != nil {
		// The read abort was caused by the run's own ctx: the caller
		// cancelled or timed out, and the transport merely noticed
		// first. Must land as Cancelled, never Errored.
		c.cancelLocked()
		return
	}
	r.session.Fail(scout.ErrConnectionFailed, err.Error())
	c.log.Debug().Str("session", r.session.ID()).Err(err).Msg("transport failed")
	c.publishLocked(r)
	c.finishLocked(r)
}

func (c *Controller) applyClose(r *run) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.live != r || r.session.Status().Terminal() {
		return
	}
	r.session.Complete()
	c.publishLocked(r)
	c.finishLocked(r)
}
