package scout

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request failed validation.
	ErrValidation = errors.New("validation error")

	// ErrTransportClosed indicates an operation on a closed transport.
	ErrTransportClosed = errors.New("transport closed")
)

// ErrorKind classifies fatal session failures. Cancellation is a
// Status, never an ErrorKind, so callers can tell a deliberate stop
// from a failure.
type ErrorKind string

const (
	// ErrConnectionFailed means the transport could not be opened or
	// dropped before any terminal signal.
	ErrConnectionFailed ErrorKind = "connection_failed"

	// ErrServerReported means the backend sent an explicit error frame.
	// The message is surfaced verbatim.
	ErrServerReported ErrorKind = "server_reported"
)

// SessionError is the fatal error captured on a Session. It is
// delivered through the normal snapshot channel, never raised
// out-of-band.
type SessionError struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	return string(e.Kind) + ": " + e.Message
}
