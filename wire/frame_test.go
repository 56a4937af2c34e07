package wire_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/scout/wire"
)

// feedAll runs a fresh decoder over the deltas and collects every frame.
func feedAll(deltas ...string) []wire.Frame {
	var d wire.Decoder
	var frames []wire.Frame
	for _, delta := range deltas {
		frames = append(frames, d.Feed(delta)...)
	}
	return frames
}

// chunked splits s into chunks of at most n bytes.
func chunked(s string, n int) []string {
	var out []string
	for len(s) > n {
		out = append(out, s[:n])
		s = s[n:]
	}
	return append(out, s)
}

func TestDecoder_SingleRecord(t *testing.T) {
	t.Parallel()

	frames := feedAll("data: {\"type\":\"content\"}\n\n")

	require.Len(t, frames, 1)
	assert.Equal(t, wire.Frame{Event: "message", Data: `{"type":"content"}`}, frames[0])
}

func TestDecoder_EventLine(t *testing.T) {
	t.Parallel()

	frames := feedAll("event: delta\ndata: {\"a\":1}\n\n")

	require.Len(t, frames, 1)
	assert.Equal(t, "delta", frames[0].Event)
	assert.Equal(t, `{"a":1}`, frames[0].Data)
}

func TestDecoder_MultipleDataLinesJoined(t *testing.T) {
	t.Parallel()

	frames := feedAll("data: first\ndata: second\ndata: third\n\n")

	require.Len(t, frames, 1)
	assert.Equal(t, "first\nsecond\nthird", frames[0].Data)
}

func TestDecoder_CRLF(t *testing.T) {
	t.Parallel()

	frames := feedAll("event: delta\r\ndata: payload\r\n\r\n")

	require.Len(t, frames, 1)
	assert.Equal(t, wire.Frame{Event: "delta", Data: "payload"}, frames[0])
}

func TestDecoder_CommentLinesIgnored(t *testing.T) {
	t.Parallel()

	frames := feedAll(": keepalive\ndata: real\n: another\n\n")

	require.Len(t, frames, 1)
	assert.Equal(t, "real", frames[0].Data)
}

func TestDecoder_UnknownFieldsIgnored(t *testing.T) {
	t.Parallel()

	frames := feedAll("id: 7\nretry: 3000\ndata: kept\n\n")

	require.Len(t, frames, 1)
	assert.Equal(t, "kept", frames[0].Data)
}

func TestDecoder_SkipsEmptyRecords(t *testing.T) {
	t.Parallel()

	// A record with no data lines, one with a whitespace-only payload,
	// then a real one.
	frames := feedAll("event: ping\n\ndata:   \n\ndata: kept\n\n")

	require.Len(t, frames, 1)
	assert.Equal(t, "kept", frames[0].Data)
}

func TestDecoder_OptionalSpaceAfterColon(t *testing.T) {
	t.Parallel()

	frames := feedAll("data:no-space\ndata:  two-spaces\n\n")

	require.Len(t, frames, 1)
	assert.Equal(t, "no-space\n two-spaces", frames[0].Data)
}

func TestDecoder_SplitAcrossDeltas(t *testing.T) {
	t.Parallel()

	var d wire.Decoder

	assert.Empty(t, d.Feed("data: {\"type\":\"content\",\"text\":\"Hel"))
	frames := d.Feed("lo\"}\n\ndata: {\"type\":\"end\"}\n\n")

	require.Len(t, frames, 2)
	assert.Equal(t, `{"type":"content","text":"Hello"}`, frames[0].Data)
	assert.Equal(t, `{"type":"end"}`, frames[1].Data)
}

func TestDecoder_ChunkingInvariance(t *testing.T) {
	t.Parallel()

	stream := "event: delta\ndata: {\"type\":\"content\",\"text\":\"one\"}\n\n" +
		": comment\r\n" +
		"data: {\"type\":\"step\",\"step\":{\"phase\":\"sources\"}}\r\n\r\n" +
		"data: {\"type\":\"content\",\n" +
		"data: \"text\":\"two\"}\n\n" +
		"data: {\"type\":\"end\"}\n\n"

	want := feedAll(stream)
	require.Len(t, want, 4)

	for _, size := range []int{1, 2, 3, 5, 7, 16, 64} {
		t.Run(fmt.Sprintf("chunk size %d", size), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, feedAll(chunked(stream, size)...))
		})
	}
}

func TestDecoder_Remainder(t *testing.T) {
	t.Parallel()

	var d wire.Decoder

	d.Feed("data: complete\n\ndata: trailing")
	assert.Equal(t, "data: trailing", d.Remainder())

	d.Feed("\n\n")
	assert.Empty(t, d.Remainder())
}

func TestDecoder_BlankLineAloneIsNoRecord(t *testing.T) {
	t.Parallel()

	assert.Empty(t, feedAll("\n\n\n"))
}
