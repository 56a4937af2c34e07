// Package wire decodes the research stream's wire format: blank-line
// separated records carrying an optional "event:" line and one or more
// "data:" lines, delivered as arbitrarily chunked text deltas.
package wire

import "strings"

// DefaultEvent is the envelope event name assumed when a record has no
// "event:" line.
const DefaultEvent = "message"

// Frame is one discrete wire record. Transient: produced and consumed
// within a single decode cycle, never persisted.
type Frame struct {
	Event string
	Data  string
}

// Decoder reassembles frames from a stream of text deltas. Deltas may
// be split at any byte boundary; the decoder buffers the unframed tail
// until more data arrives. A fresh Decoder is used per connection.
//
// Not safe for concurrent use. The controller serializes all feeds.
type Decoder struct {
	buf string
}

// Feed appends a delta and returns every complete frame now available,
// in order. Records with no data lines and whitespace-only records are
// skipped, not emitted.
func (d *Decoder) Feed(delta string) []Frame {
	d.buf += delta

	var frames []Frame
	for {
		rec, rest, ok := cutRecord(d.buf)
		if !ok {
			return frames
		}
		d.buf = rest
		if f, ok := parseRecord(rec); ok {
			frames = append(frames, f)
		}
	}
}

// Remainder returns the buffered unterminated tail. A non-empty
// remainder at transport close is a diagnostic, not a fatal error:
// partial trailing frames are not meaningful and are discarded.
func (d *Decoder) Remainder() string {
	return d.buf
}

// cutRecord splits the buffer at the first blank line. The blank line
// is consumed; the record text excludes it. Returns ok=false when no
// complete record is buffered yet.
func cutRecord(s string) (rec, rest string, ok bool) {
	for i := 0; i < len(s); {
		j := strings.IndexByte(s[i:], '\n')
		if j < 0 {
			break
		}
		line := strings.TrimSuffix(s[i:i+j], "\r")
		if line == "" {
			return s[:i], s[i+j+1:], true
		}
		i += j + 1
	}
	return "", s, false
}

// parseRecord extracts the event name and joined data payload from one
// record. Returns ok=false for records worth skipping: no data lines,
// or a whitespace-only payload.
func parseRecord(rec string) (Frame, bool) {
	f := Frame{Event: DefaultEvent}
	var data []string

	for _, line := range strings.Split(rec, "\n") {
		line = strings.TrimSuffix(line, "\r")
		switch {
		case line == "" || strings.HasPrefix(line, ":"):
			// Stray blank or SSE comment line.
		case strings.HasPrefix(line, "event:"):
			f.Event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = append(data, fieldValue(strings.TrimPrefix(line, "data:")))
		default:
			// Unknown fields (id:, retry:, ...) are ignored.
		}
	}

	if len(data) == 0 {
		return Frame{}, false
	}
	f.Data = strings.Join(data, "\n")
	if strings.TrimSpace(f.Data) == "" {
		return Frame{}, false
	}
	return f, true
}

// fieldValue strips the single optional space after the field colon.
// Further leading whitespace is payload.
func fieldValue(v string) string {
	return strings.TrimPrefix(v, " ")
}
