package wire_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/scout"
	"github.com/courtside/scout/wire"
)

func TestInterpret_Content(t *testing.T) {
	t.Parallel()

	ev := wire.Interpret(wire.Frame{Event: "message", Data: `{"type":"content","text":"pick and roll"}`})

	assert.Equal(t, scout.ContentChunk{Text: "pick and roll"}, ev)
}

func TestInterpret_Suggestions(t *testing.T) {
	t.Parallel()

	ev := wire.Interpret(wire.Frame{Event: "message", Data: `{"type":"suggestions","suggestions":["a","b"]}`})

	assert.Equal(t, scout.SuggestionsReady{Items: []string{"a", "b"}}, ev)
}

func TestInterpret_Step(t *testing.T) {
	t.Parallel()

	t.Run("step field", func(t *testing.T) {
		t.Parallel()
		ev := wire.Interpret(wire.Frame{Event: "message", Data: `{"type":"step","step":{"phase":"sources"}}`})
		step, ok := ev.(scout.IntermediateStep)
		require.True(t, ok)
		assert.JSONEq(t, `{"phase":"sources"}`, string(step.Payload))
	})

	t.Run("legacy whole payload", func(t *testing.T) {
		t.Parallel()
		data := `{"type":"step","phase":"sources"}`
		ev := wire.Interpret(wire.Frame{Event: "message", Data: data})
		step, ok := ev.(scout.IntermediateStep)
		require.True(t, ok)
		assert.Equal(t, json.RawMessage(data), step.Payload)
	})
}

func TestInterpret_Error(t *testing.T) {
	t.Parallel()

	ev := wire.Interpret(wire.Frame{Event: "message", Data: `{"type":"error","message":"quota exhausted"}`})

	assert.Equal(t, scout.StreamError{Message: "quota exhausted"}, ev)
}

func TestInterpret_End(t *testing.T) {
	t.Parallel()

	ev := wire.Interpret(wire.Frame{Event: "message", Data: `{"type":"end"}`})

	assert.Equal(t, scout.StreamEnd{}, ev)
}

func TestInterpret_MalformedJSON(t *testing.T) {
	t.Parallel()

	ev := wire.Interpret(wire.Frame{Event: "delta", Data: `{"type":"content",`})

	dec, ok := ev.(scout.DecodeError)
	require.True(t, ok)
	assert.Equal(t, "delta", dec.EventName)
	assert.Equal(t, `{"type":"content",`, dec.Payload)
	assert.Contains(t, dec.Reason, "malformed payload")
}

func TestInterpret_WrongFieldType(t *testing.T) {
	t.Parallel()

	// A numeric text field fails decoding outright rather than being
	// coerced into content.
	ev := wire.Interpret(wire.Frame{Event: "message", Data: `{"type":"content","text":42}`})

	dec, ok := ev.(scout.DecodeError)
	require.True(t, ok)
	assert.Contains(t, dec.Reason, "malformed payload")
}

func TestInterpret_UnknownType(t *testing.T) {
	t.Parallel()

	t.Run("with text salvages content", func(t *testing.T) {
		t.Parallel()
		ev := wire.Interpret(wire.Frame{Event: "message", Data: `{"type":"delta","text":"partial"}`})
		assert.Equal(t, scout.ContentChunk{Text: "partial"}, ev)
	})

	t.Run("without text", func(t *testing.T) {
		t.Parallel()
		ev := wire.Interpret(wire.Frame{Event: "message", Data: `{"type":"mystery"}`})
		dec, ok := ev.(scout.DecodeError)
		require.True(t, ok)
		assert.Contains(t, dec.Reason, `"mystery"`)
	})

	t.Run("missing type entirely", func(t *testing.T) {
		t.Parallel()
		ev := wire.Interpret(wire.Frame{Event: "message", Data: `{"foo":"bar"}`})
		dec, ok := ev.(scout.DecodeError)
		require.True(t, ok)
		assert.Contains(t, dec.Reason, `""`)
	})
}
