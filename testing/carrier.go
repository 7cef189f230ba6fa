package testing

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// CarrierCall is one request received by the fake carrier
type CarrierCall struct {
	Method string
	Header http.Header
	Body   map[string]any
}

// TestCarrier is an httptest server standing in for the Covercube API.
// It answers every request with the configured status and body.
type TestCarrier struct {
	server *httptest.Server

	mu     sync.Mutex
	calls  []CarrierCall
	status int
	body   []byte
}

// NewTestCarrier starts a fake carrier answering 200 with an empty object
func NewTestCarrier() *TestCarrier {
	tc := &TestCarrier{
		status: http.StatusOK,
		body:   []byte(`{}`),
	}
	tc.server = httptest.NewServer(http.HandlerFunc(tc.serve))
	return tc
}

func (tc *TestCarrier) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var body map[string]any
	_ = decoder.Decode(&body)

	tc.mu.Lock()
	tc.calls = append(tc.calls, CarrierCall{
		Method: r.Method,
		Header: r.Header.Clone(),
		Body:   body,
	})
	status, response := tc.status, tc.body
	tc.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// RespondWith sets the status and body returned for subsequent requests
func (tc *TestCarrier) RespondWith(status int, body []byte) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.status = status
	tc.body = body
}

// URL returns the carrier endpoint
func (tc *TestCarrier) URL() string {
	return tc.server.URL
}

// Calls returns a copy of every request received so far
func (tc *TestCarrier) Calls() []CarrierCall {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return append([]CarrierCall(nil), tc.calls...)
}

// LastCall returns the most recent request, or nil if none was received
func (tc *TestCarrier) LastCall() *CarrierCall {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if len(tc.calls) == 0 {
		return nil
	}
	call := tc.calls[len(tc.calls)-1]
	return &call
}

// Close shuts the server down
func (tc *TestCarrier) Close() {
	tc.server.Close()
}
