package scout

// Status is the lifecycle state of a Session.
type Status int

const (
	StatusPending   Status = iota // created, transport not yet confirmed open
	StatusStreaming               // open confirmed or first frame decoded
	StatusCompleted               // explicit end marker or clean transport close
	StatusErrored                 // server error frame or transport failure
	StatusCancelled               // Cancel() or supersession by a new Submit
)

// Terminal reports whether the status is absorbing: no event of any
// kind mutates a session once it is terminal.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusErrored, StatusCancelled:
		return true
	}
	return false
}

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusStreaming:
		return "streaming"
	case StatusCompleted:
		return "completed"
	case StatusErrored:
		return "errored"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
