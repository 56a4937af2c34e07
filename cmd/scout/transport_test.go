package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/scout/eventsource"
	"github.com/courtside/scout/httpsse"
)

func TestResolveDial_SchemeHTTP(t *testing.T) {
	t.Parallel()
	dial, err := resolveDial("https://api.example.com/research", "", "")
	require.NoError(t, err)
	_, ok := dial().(*httpsse.Transport)
	assert.True(t, ok)
}

func TestResolveDial_SchemeWS(t *testing.T) {
	t.Parallel()
	dial, err := resolveDial("wss://api.example.com/feed", "", "")
	require.NoError(t, err)
	_, ok := dial().(*eventsource.Transport)
	assert.True(t, ok)
}

func TestResolveDial_FlagOverridesScheme(t *testing.T) {
	t.Parallel()
	dial, err := resolveDial("https://api.example.com/feed", "ws", "")
	require.NoError(t, err)
	_, ok := dial().(*eventsource.Transport)
	assert.True(t, ok)
}

func TestResolveDial_FreshTransportPerDial(t *testing.T) {
	t.Parallel()
	dial, err := resolveDial("https://api.example.com/research", "", "key")
	require.NoError(t, err)
	assert.NotSame(t, dial(), dial())
}

func TestResolveDial_UnknownScheme(t *testing.T) {
	t.Parallel()
	_, err := resolveDial("ftp://api.example.com", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot detect transport")
}

func TestResolveDial_UnknownTransportFlag(t *testing.T) {
	t.Parallel()
	_, err := resolveDial("https://api.example.com", "grpc", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")
}
