package scout

import "encoding/json"

// Event is a sealed interface representing a decoded stream event.
// Events are purely semantic. Transport-level failures come from the
// transport handler's error callback, not from events.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// ContentChunk carries a fragment of report text, in arrival order.
type ContentChunk struct {
	Text string
}

func (ContentChunk) event() {}

// SuggestionsReady carries follow-up suggestions for the current report.
type SuggestionsReady struct {
	Items []string
}

func (SuggestionsReady) event() {}

// IntermediateStep carries an opaque progress record emitted by the
// backend while it works. Kept verbatim for audit display.
type IntermediateStep struct {
	Payload json.RawMessage
}

func (IntermediateStep) event() {}

// StreamError is an explicit error frame from the backend. Fatal to the
// session it belongs to.
type StreamError struct {
	Message string
}

func (StreamError) event() {}

// StreamEnd marks normal completion of the stream.
type StreamEnd struct{}

func (StreamEnd) event() {}

// DecodeError marks a single frame that could not be interpreted.
// Non-fatal: the session counts it and keeps streaming. It is an event
// rather than an error return so malformed frames stay visible instead
// of being silently dropped.
type DecodeError struct {
	EventName string // envelope event name of the offending frame
	Payload   string // raw payload, for diagnostics
	Reason    string
}

func (DecodeError) event() {}

// Interface compliance checks.
var (
	_ Event = ContentChunk{}
	_ Event = SuggestionsReady{}
	_ Event = IntermediateStep{}
	_ Event = StreamError{}
	_ Event = StreamEnd{}
	_ Event = DecodeError{}
)
