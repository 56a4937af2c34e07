package scout

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session accumulates one submit-to-completion unit of streamed work.
// It is owned by the controller that created it; callers only ever see
// Snapshot copies. All transitions are absorbing once a terminal
// status is reached.
type Session struct {
	id        string
	status    Status
	text      strings.Builder
	sugg      []string
	steps     []json.RawMessage
	err       *SessionError
	decodeErr int
	createdAt time.Time
}

// NewSession creates a pending session with a fresh unique ID.
func NewSession() *Session {
	return &Session{
		id:        uuid.NewString(),
		status:    StatusPending,
		createdAt: time.Now(),
	}
}

// ID returns the session's unique token.
func (s *Session) ID() string { return s.id }

// Status returns the current lifecycle state.
func (s *Session) Status() Status { return s.status }

// MarkOpen records transport-open confirmation. The session also moves
// to streaming on the first decoded frame, whichever occurs first.
func (s *Session) MarkOpen() {
	if s.status == StatusPending {
		s.status = StatusStreaming
	}
}

// Apply folds one decoded event into the session. Events applied after
// a terminal status are ignored; the controller normally drops them
// earlier, so this is the last line of defense.
func (s *Session) Apply(e Event) {
	if s.status.Terminal() {
		return
	}
	s.MarkOpen()

	switch evt := e.(type) {
	case ContentChunk:
		s.text.WriteString(evt.Text)
	case SuggestionsReady:
		// Set at most once per session in practice; last one wins.
		s.sugg = append([]string(nil), evt.Items...)
	case IntermediateStep:
		s.steps = append(s.steps, append(json.RawMessage(nil), evt.Payload...))
	case StreamError:
		s.fail(ErrServerReported, evt.Message)
	case StreamEnd:
		s.status = StatusCompleted
	case DecodeError:
		// Recoverable. One malformed frame must not poison the stream.
		s.decodeErr++
	}
}

// Complete records a clean transport close with no pending error.
func (s *Session) Complete() {
	if !s.status.Terminal() {
		s.status = StatusCompleted
	}
}

// Fail records a fatal transport-level failure. Accumulated partial
// text is retained alongside the error.
func (s *Session) Fail(kind ErrorKind, message string) {
	if !s.status.Terminal() {
		s.fail(kind, message)
	}
}

// Cancel marks the session cancelled. Idempotent; a no-op once any
// terminal status is reached.
func (s *Session) Cancel() {
	if !s.status.Terminal() {
		s.status = StatusCancelled
	}
}

func (s *Session) fail(kind ErrorKind, message string) {
	s.status = StatusErrored
	s.err = &SessionError{Kind: kind, Message: message}
}

// Snapshot is an immutable copy of a session's observable state,
// published to callers on every update.
type Snapshot struct {
	ID           string
	Status       Status
	Text         string
	Suggestions  []string
	Steps        []json.RawMessage
	Err          *SessionError
	DecodeErrors int
	CreatedAt    time.Time
}

// Snapshot returns a deep copy. Callers cannot corrupt accumulation
// state through it.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:           s.id,
		Status:       s.status,
		Text:         s.text.String(),
		DecodeErrors: s.decodeErr,
		CreatedAt:    s.createdAt,
	}
	if s.sugg != nil {
		snap.Suggestions = append([]string(nil), s.sugg...)
	}
	for _, step := range s.steps {
		snap.Steps = append(snap.Steps, append(json.RawMessage(nil), step...))
	}
	if s.err != nil {
		errCopy := *s.err
		snap.Err = &errCopy
	}
	return snap
}
