package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// RecordedRequest captures one request the fake backend received.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// FakeAPI is an in-process stand-in for the backend. Tests register
// responses per method and path, point a transport at URL(), and
// afterwards inspect what was received. Routes can be scripted with a
// sequence of steps; the last step repeats once the script is spent,
// which is how "fail twice then recover" scenarios are written.
type FakeAPI struct {
	server *httptest.Server

	mu       sync.Mutex
	routes   map[string][]http.HandlerFunc
	requests []RecordedRequest
}

// NewFakeAPI starts the fake backend. It shuts down via t.Cleanup.
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()

	f := &FakeAPI{routes: make(map[string][]http.HandlerFunc)}
	f.server = httptest.NewServer(http.HandlerFunc(f.dispatch))
	t.Cleanup(f.server.Close)
	return f
}

// URL returns the backend's base URL.
func (f *FakeAPI) URL() string {
	return f.server.URL
}

// Handle registers a single handler for method and path, replacing any
// previous registration.
func (f *FakeAPI) Handle(method, path string, handler http.HandlerFunc) {
	f.Script(method, path, handler)
}

// Script registers a sequence of handlers for method and path. Each
// request consumes one step; the final step serves every request after
// the script runs out.
func (f *FakeAPI) Script(method, path string, steps ...http.HandlerFunc) {
	if len(steps) == 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = steps
}

// Requests returns a copy of everything received so far, in order.
func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// CallCount reports how many requests hit method and path.
func (f *FakeAPI) CallCount(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// LastRequest returns the most recent request for method and path.
func (f *FakeAPI) LastRequest(method, path string) (RecordedRequest, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.requests) - 1; i >= 0; i-- {
		r := f.requests[i]
		if r.Method == method && r.Path == path {
			return r, true
		}
	}
	return RecordedRequest{}, false
}

func (f *FakeAPI) dispatch(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	key := r.Method + " " + r.URL.Path
	steps := f.routes[key]
	var handler http.HandlerFunc
	if len(steps) > 0 {
		handler = steps[0]
		if len(steps) > 1 {
			f.routes[key] = steps[1:]
		}
	}
	f.mu.Unlock()

	if handler == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"message": "no route for " + key,
		})
		return
	}
	handler(w, r)
}

// OK responds with a success envelope wrapping data.
func OK(data any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "ok",
			"data":    data,
		})
	}
}

// ListOK responds with a success envelope carrying a page of data.
func ListOK(data any, page, limit int, total int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "ok",
			"data":    data,
			"page":    page,
			"limit":   limit,
			"total":   total,
		})
	}
}

// Fail responds with the given HTTP status and an error envelope.
func Fail(status int, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, map[string]any{
			"success": false,
			"message": message,
		})
	}
}

// Reject responds 200 with success=false, the envelope-level failure
// shape.
func Reject(message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"message": message,
		})
	}
}

// Malformed responds 200 with a body that is not an envelope.
func Malformed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "<html>gateway had a bad day</html>")
	}
}

// Down severs the connection without writing a response, which clients
// observe as a network failure.
func Down() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			panic("testsupport: response writer does not support hijacking")
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			panic("testsupport: hijack failed: " + err.Error())
		}
		conn.Close()
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
