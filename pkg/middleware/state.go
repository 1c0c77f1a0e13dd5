package middleware

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"sync"
)

type requestStateKey struct{}

// requestState is shared by the middlewares and the handler of one request.
type requestState struct {
	mu        sync.Mutex
	renderErr error
}

// withRequestState returns r carrying a request state, reusing one that an
// outer middleware already installed.
func withRequestState(r *http.Request) (*http.Request, *requestState) {
	if s, ok := r.Context().Value(requestStateKey{}).(*requestState); ok {
		return r, s
	}
	s := &requestState{}
	return r.WithContext(context.WithValue(r.Context(), requestStateKey{}, s)), s
}

func (s *requestState) err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderErr
}

// RecordRenderError reports a render failure for r. It is a no-op when no
// middleware of this package wraps the handler.
func RecordRenderError(r *http.Request, err error) {
	if s, ok := r.Context().Value(requestStateKey{}).(*requestState); ok {
		s.mu.Lock()
		s.renderErr = err
		s.mu.Unlock()
	}
}

// RenderError returns the error recorded for r, if any.
func RenderError(r *http.Request) error {
	if s, ok := r.Context().Value(requestStateKey{}).(*requestState); ok {
		return s.err()
	}
	return nil
}

// statusRecorder captures the status code and body size of a response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Hijack supports WebSocket upgrades behind the middleware.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return http.NewResponseController(r.ResponseWriter).Hijack()
}
