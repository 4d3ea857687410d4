// Package testutil provides testing utilities for the HubSpot export toolkit.
package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock HubSpot endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockHubSpot is a configurable mock HubSpot API server for testing.
type MockHubSpot struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount      int
	pathCounts        map[string]int
	requestBodies     map[string][][]byte
	LastRequestHeader http.Header
}

// NewMockHubSpot creates a new mock HubSpot server.
func NewMockHubSpot() *MockHubSpot {
	mock := &MockHubSpot{
		handlers:      make(map[string]func(w http.ResponseWriter, r *http.Request)),
		pathCounts:    make(map[string]int),
		requestBodies: make(map[string][][]byte),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		mock.mu.Lock()
		mock.RequestCount++
		mock.pathCounts[r.URL.Path]++
		mock.requestBodies[r.URL.Path] = append(mock.requestBodies[r.URL.Path], body)
		mock.LastRequestHeader = r.Header.Clone()
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockHubSpot) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockHubSpot) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockHubSpot) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.pathCounts = make(map[string]int)
	m.requestBodies = make(map[string][][]byte)
	m.LastRequestHeader = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockHubSpot) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple response for a path.
func (m *MockHubSpot) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json")
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetJSONResponse configures a 200 OK JSON response for a path.
func (m *MockHubSpot) SetJSONResponse(path, body string) {
	m.SetResponse(path, MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
	})
}

// GetRequestCount returns the total number of requests made to the server.
func (m *MockHubSpot) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// RequestsFor returns the number of requests made to a specific path.
func (m *MockHubSpot) RequestsFor(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pathCounts[path]
}

// BodiesFor returns the captured request bodies for a specific path.
func (m *MockHubSpot) BodiesFor(path string) [][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bodies := make([][]byte, len(m.requestBodies[path]))
	copy(bodies, m.requestBodies[path])
	return bodies
}

// defaultHandler provides a default empty result list response with
// typical HubSpot rate limit headers.
func (m *MockHubSpot) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-HubSpot-RateLimit-Remaining", "99")
	w.Header().Set("X-HubSpot-RateLimit-Daily-Remaining", "240000")
	w.Header().Set("X-HubSpot-RateLimit-Interval-Milliseconds", "10000")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"results": []}`))
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"status":"error","message":"internal error"}`,
	}
}

// NewRateLimitResponse creates a 429 Too Many Requests response with a
// low remaining budget header.
func NewRateLimitResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       `{"status":"error","message":"You have reached your secondly limit."}`,
		Headers: map[string]string{
			"X-HubSpot-RateLimit-Remaining": "0",
		},
	}
}
