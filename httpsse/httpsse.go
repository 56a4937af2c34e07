// Package httpsse implements scout.Transport over a chunked HTTP
// response: the research request is POSTed once and the body is
// streamed until the server finishes.
package httpsse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/courtside/scout"
)

// Interface compliance check.
var _ scout.Transport = (*Transport)(nil)

// readSize is the transport read granularity. Deliberately unaligned
// to frame boundaries; the decoder owns reassembly.
const readSize = 4096

// Transport streams one research job over a chunked HTTP response.
// One Transport serves one session; the controller dials a fresh one
// per Submit.
type Transport struct {
	url        string
	httpClient *http.Client
	header     http.Header

	mu     sync.Mutex
	closed bool
	cancel context.CancelFunc
	body   io.ReadCloser
}

// Option configures a Transport.
type Option func(*Transport)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(t *Transport) { t.httpClient = hc }
}

// WithHeader adds a header to the open request. Useful for auth tokens.
func WithHeader(key, value string) Option {
	return func(t *Transport) { t.header.Set(key, value) }
}

// New creates a Transport that posts to url.
func New(url string, opts ...Option) *Transport {
	t := &Transport{
		url:        url,
		httpClient: http.DefaultClient,
		header:     make(http.Header),
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

// Open posts the request and starts streaming the response body as
// raw deltas. A non-2xx response is an open failure; nothing is
// delivered to the handler in that case.
func (t *Transport) Open(ctx context.Context, req scout.Request, h scout.Handler) error {
	body, err := json.Marshal(wireRequest{Topic: req.Topic, Options: req.Options})
	if err != nil {
		return fmt.Errorf("httpsse: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		cancel()
		return fmt.Errorf("httpsse: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	for key, values := range t.header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		cancel()
		return fmt.Errorf("httpsse: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		cancel()
		return parseHTTPError(resp)
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		cancel()
		resp.Body.Close()
		return scout.ErrTransportClosed
	}
	t.cancel = cancel
	t.body = resp.Body
	t.mu.Unlock()

	h.OnOpen()
	go t.readLoop(resp.Body, h)
	return nil
}

// readLoop forwards body reads verbatim until EOF or failure. Reads
// after Close surface as errors but the controller has already
// discarded the session by then.
func (t *Transport) readLoop(body io.ReadCloser, h scout.Handler) {
	buf := make([]byte, readSize)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			h.OnData(string(buf[:n]))
		}
		if err == io.EOF {
			h.OnClose()
			return
		}
		if err != nil {
			h.OnError(fmt.Errorf("httpsse: %w", err))
			return
		}
	}
}

// Close aborts the stream. Idempotent and safe to call at any time,
// including concurrently with Open.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	if t.cancel != nil {
		t.cancel()
	}
	if t.body != nil {
		return t.body.Close()
	}
	return nil
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("httpsse: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	var wireErr struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wireErr); err == nil && wireErr.Message != "" {
		return fmt.Errorf("httpsse: HTTP %d: %s", resp.StatusCode, wireErr.Message)
	}
	return fmt.Errorf("httpsse: HTTP %d: %s", resp.StatusCode, string(body))
}
