package scout

import (
	"fmt"
	"strings"
)

// Request describes one research job submission. The transport decides
// how the fields reach the backend.
type Request struct {
	Topic   string            // subject of the report; required
	Options map[string]string // backend-specific knobs, passed through verbatim
}

// Validate checks universal constraints on Request. Invalid arguments
// are the only failures Submit reports synchronously; everything else
// surfaces through the session snapshot.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return fmt.Errorf("topic must not be empty: %w", ErrValidation)
	}
	return nil
}
