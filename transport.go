package scout

import "context"

// Handler receives delivery callbacks from a Transport. Implementations
// must tolerate calls from the transport's own goroutine.
type Handler interface {
	// OnOpen confirms the connection is established.
	OnOpen()
	// OnData delivers a raw text delta. Deltas arrive in order but are
	// not aligned to logical frame boundaries.
	OnData(delta string)
	// OnError reports a fatal transport failure. No further callbacks
	// follow.
	OnError(err error)
	// OnClose reports that the stream ended without a transport error.
	// No further callbacks follow.
	OnClose()
}

// Transport is the capability interface over the raw byte stream of
// one research job. Concrete adapters exist for a chunked HTTP
// response reader and a persistent websocket feed; the decoder must
// not assume which.
//
// Open dials the backend and starts delivery. It returns an error only
// when the connection cannot be established; after a nil return,
// callbacks continue on the transport's goroutine until OnError or
// OnClose fires. The transport handle is exclusively owned by the
// controller: Close is the only permitted write path, and it must be
// safe to call at any time, more than once.
type Transport interface {
	Open(ctx context.Context, req Request, h Handler) error
	Close() error
}

// Dial constructs a fresh Transport for one submission. A transport is
// never reused across sessions.
type Dial func() Transport
