package wire

import (
	"encoding/json"
	"strconv"

	"github.com/courtside/scout"
)

// payload is the structured form of a frame's data. Classification is
// driven by the Type discriminator, not the envelope event name: some
// backend variants conflate the transport envelope with the
// application-level content type, and the payload field is the one
// they agree on.
type payload struct {
	Type        string          `json:"type"`
	Text        string          `json:"text"`
	Suggestions []string        `json:"suggestions"`
	Message     string          `json:"message"`
	Step        json.RawMessage `json:"step"`
}

// Interpret classifies a frame into a semantic event. It never fails:
// malformed or unrecognizable frames map to DecodeError so one bad
// frame cannot poison the remainder of a legitimate stream.
func Interpret(f Frame) scout.Event {
	var p payload
	if err := json.Unmarshal([]byte(f.Data), &p); err != nil {
		return scout.DecodeError{
			EventName: f.Event,
			Payload:   f.Data,
			Reason:    "malformed payload: " + err.Error(),
		}
	}

	switch p.Type {
	case "content":
		return scout.ContentChunk{Text: p.Text}
	case "suggestions":
		return scout.SuggestionsReady{Items: p.Suggestions}
	case "step":
		// The step field is the opaque progress record; older backends
		// put the whole payload there instead.
		if len(p.Step) > 0 {
			return scout.IntermediateStep{Payload: p.Step}
		}
		return scout.IntermediateStep{Payload: json.RawMessage(f.Data)}
	case "error":
		return scout.StreamError{Message: p.Message}
	case "end":
		return scout.StreamEnd{}
	default:
		// Unrecognized discriminators still carry usable text often
		// enough to salvage; anything else is a decode failure.
		if p.Text != "" {
			return scout.ContentChunk{Text: p.Text}
		}
		return scout.DecodeError{
			EventName: f.Event,
			Payload:   f.Data,
			Reason:    "unrecognized payload type " + strconv.Quote(p.Type),
		}
	}
}
