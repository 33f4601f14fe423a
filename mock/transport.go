// Package mock provides a scripted http.RoundTripper for testing clients
// built on wp-bridge without a live server.
package mock

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// Step is one scripted exchange. Status and Body form the response; Header
// entries are copied onto it. A non-nil Err simulates a connection-level
// failure instead of a response.
type Step struct {
	Status int
	Body   string
	Header map[string]string
	Err    error
}

// Transport replays its steps in order, one per request. Once the script is
// exhausted it keeps repeating the last step. Safe for concurrent use.
type Transport struct {
	mu    sync.Mutex
	steps []Step
	calls int

	// Requests records every request seen, in order.
	Requests []*http.Request
}

// NewTransport builds a transport from a script of steps.
func NewTransport(steps ...Step) *Transport {
	return &Transport{steps: steps}
}

// Calls reports how many requests the transport has served.
func (t *Transport) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	idx := t.calls
	t.calls++
	if idx >= len(t.steps) {
		idx = len(t.steps) - 1
	}
	step := t.steps[idx]
	t.Requests = append(t.Requests, req)
	t.mu.Unlock()

	if step.Err != nil {
		return nil, step.Err
	}

	header := make(http.Header)
	for k, v := range step.Header {
		header.Set(k, v)
	}
	return &http.Response{
		StatusCode: step.Status,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader([]byte(step.Body))),
		Request:    req,
	}, nil
}

// Client wraps the transport in an *http.Client ready to hand to a client
// constructor.
func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}
