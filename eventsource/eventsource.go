// Package eventsource implements scout.Transport over a persistent
// websocket connection: the request goes out as the first message and
// each incoming text message is one raw delta. The same decoder serves
// both this and the chunked HTTP adapter; frame boundaries are still
// the decoder's problem.
package eventsource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/courtside/scout"
)

// Interface compliance check.
var _ scout.Transport = (*Transport)(nil)

// Transport streams one research job over a websocket feed. One
// Transport serves one session.
type Transport struct {
	url    string
	dialer *websocket.Dialer
	header http.Header

	mu     sync.Mutex
	closed bool
	conn   *websocket.Conn
}

// Option configures a Transport.
type Option func(*Transport)

// WithDialer sets a custom websocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(t *Transport) { t.dialer = d }
}

// WithHeader adds a handshake header. Useful for auth tokens.
func WithHeader(key, value string) Option {
	return func(t *Transport) { t.header.Set(key, value) }
}

// New creates a Transport that dials the ws(s) url.
func New(url string, opts ...Option) *Transport {
	t := &Transport{
		url:    url,
		dialer: websocket.DefaultDialer,
		header: make(http.Header),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

type wireRequest struct {
	Topic   string            `json:"topic"`
	Options map[string]string `json:"options,omitempty"`
}

// Open dials the feed, sends the request as the first message, and
// starts forwarding incoming text messages as deltas.
func (t *Transport) Open(ctx context.Context, req scout.Request, h scout.Handler) error {
	conn, resp, err := t.dialer.DialContext(ctx, t.url, t.header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("eventsource: HTTP %d: %w", resp.StatusCode, err)
		}
		return fmt.Errorf("eventsource: %w", err)
	}

	payload, err := json.Marshal(wireRequest{Topic: req.Topic, Options: req.Options})
	if err != nil {
		conn.Close()
		return fmt.Errorf("eventsource: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		conn.Close()
		return fmt.Errorf("eventsource: %w", err)
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		conn.Close()
		return scout.ErrTransportClosed
	}
	t.conn = conn
	t.mu.Unlock()

	h.OnOpen()
	go t.readLoop(conn, h)
	return nil
}

// readLoop forwards text messages until the peer closes or the
// connection fails. Binary messages are ignored; the wire format is
// text.
func (t *Transport) readLoop(conn *websocket.Conn, h scout.Handler) {
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.OnClose()
			} else {
				h.OnError(fmt.Errorf("eventsource: %w", err))
			}
			return
		}
		if msgType == websocket.TextMessage {
			h.OnData(string(data))
		}
	}
}

// Close tears down the connection. Idempotent and safe to call at any
// time, including concurrently with Open.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	if t.conn != nil {
		return t.conn.Close()
	}
	return nil
}
