package server

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vmihailenco/msgpack/v5"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/hiccup/internal/dev"
	"github.com/vango-dev/hiccup/internal/errors"
	"github.com/vango-dev/hiccup/pkg/page"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

// counterValue returns the value of the counter name with the given labels,
// or -1 when the registry has no such series.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return -1
}

func TestServeIndexAndMetrics(t *testing.T) {
	root := writeSite(t, map[string]string{
		"index.json": `["h1.title", "Welcome"]`,
	})
	srv := New(&ServerConfig{Root: root, Metrics: true, Logger: quietLogger})

	w := get(t, srv, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got, want := w.Body.String(), `<h1 class="title">Welcome</h1>`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	got := counterValue(t, srv.Registry(), "hiccup_requests_total", map[string]string{"path": "/", "status": "200"})
	if got != 1 {
		t.Errorf("requests_total = %v, want 1", got)
	}

	metrics := get(t, srv, MetricsPath)
	if !strings.Contains(metrics.Body.String(), `hiccup_requests_total{path="/",status="200"} 1`) {
		t.Errorf("/metrics does not expose the request count:\n%s", metrics.Body.String())
	}
}

func TestServeResolvesDocuments(t *testing.T) {
	encoded, err := msgpack.Marshal([]any{"p", "packed"})
	if err != nil {
		t.Fatal(err)
	}
	root := writeSite(t, map[string]string{
		"about.json":      `["p", "about"]`,
		"blog/index.json": `["p", "blog"]`,
		"blog/first.mp":   string(encoded),
		"app.css":         "body { color: red }",
		".hidden.json":    `["p", "secret"]`,
		".git/config":     "[core]",
	})
	srv := New(&ServerConfig{Root: root, Logger: quietLogger})

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/about", http.StatusOK, "<p>about</p>"},
		{"/about.html", http.StatusOK, "<p>about</p>"},
		{"/about.json", http.StatusOK, "<p>about</p>"},
		{"/blog", http.StatusOK, "<p>blog</p>"},
		{"/blog/", http.StatusOK, "<p>blog</p>"},
		{"/blog/first", http.StatusOK, "<p>packed</p>"},
		{"/app.css", http.StatusOK, "body { color: red }"},
		{"/missing", http.StatusNotFound, ""},
		{"/../about", http.StatusOK, "<p>about</p>"},
		{"/.hidden", http.StatusNotFound, ""},
		{"/.git/config", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(t, srv, tt.path)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			if tt.body != "" && w.Body.String() != tt.body {
				t.Errorf("got %q, want %q", w.Body.String(), tt.body)
			}
		})
	}
}

func TestServePageWithDefaults(t *testing.T) {
	root := writeSite(t, map[string]string{
		"index.json": `{"title": "Start", "body": ["main", "hi"]}`,
	})
	srv := New(&ServerConfig{
		Root:     root,
		Defaults: page.Defaults{Lang: "de", Charset: "UTF-8", Title: "Site"},
		Logger:   quietLogger,
	})

	body := get(t, srv, "/").Body.String()
	for _, want := range []string{"<!DOCTYPE html>", `<html lang="de">`, "<title>Start</title>", "<main>hi</main>"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, dev.ReloadPath) {
		t.Error("reload script injected without reload enabled")
	}
}

func TestServeRenderErrors(t *testing.T) {
	root := writeSite(t, map[string]string{
		"void.json":      `["div", ["br", "child"]]`,
		"spec.json":      `["div.a b", "x"]`,
		"malformed.json": `["div",`,
	})
	srv := New(&ServerConfig{Root: root, Metrics: true, Logger: quietLogger})

	tests := []struct {
		path     string
		code     string
		category errors.Category
	}{
		{"/void", "E021", errors.CategoryNode},
		{"/spec", "E002", errors.CategoryParse},
		{"/malformed", "E040", errors.CategoryDocument},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(t, srv, tt.path)
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422", w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.code) {
				t.Errorf("body %q does not mention %s", w.Body.String(), tt.code)
			}
			got := counterValue(t, srv.Registry(), "hiccup_render_errors_total",
				map[string]string{"path": tt.path, "category": string(tt.category)})
			if got != 1 {
				t.Errorf("render_errors_total = %v, want 1", got)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing file", errors.New("E040").Wrap(os.ErrNotExist), http.StatusNotFound},
		{"parse", errors.New("E001"), http.StatusUnprocessableEntity},
		{"node", errors.New("E020"), http.StatusUnprocessableEntity},
		{"document", errors.New("E041"), http.StatusUnprocessableEntity},
		{"other", io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestServeWithTracing(t *testing.T) {
	root := writeSite(t, map[string]string{"index.json": `["p", "traced"]`})
	srv := New(&ServerConfig{Root: root, TracerProvider: noop.NewTracerProvider(), Logger: quietLogger})

	if got := get(t, srv, "/").Body.String(); got != "<p>traced</p>" {
		t.Errorf("got %q, want %q", got, "<p>traced</p>")
	}
}

func TestServeWithReload(t *testing.T) {
	root := writeSite(t, map[string]string{
		"index.json": `{"body": "home"}`,
		"frag.json":  `["p", "frag"]`,
	})
	srv := New(&ServerConfig{Root: root, Reload: true, Logger: quietLogger})

	for _, path := range []string{"/", "/frag"} {
		body := get(t, srv, path).Body.String()
		if !strings.Contains(body, "<script>") || !strings.Contains(body, dev.ReloadPath) {
			t.Errorf("%s: reload script missing:\n%s", path, body)
		}
	}

	ts := httptest.NewServer(srv)
	defer ts.Close()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+dev.ReloadPath, nil)
	if err != nil {
		t.Fatalf("dial reload endpoint: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for srv.LiveReload().Reloader().ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("reload client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := srv.checkDocument(filepath.Join(root, "index.json")); err != nil {
		t.Errorf("checkDocument: %v", err)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	root := writeSite(t, map[string]string{"index.json": `["p", "up"]`})
	srv := New(&ServerConfig{Root: root, Reload: true, Logger: quietLogger})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/"
	var resp *http.Response
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err = http.Get(url)
		if err == nil || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNewDefaults(t *testing.T) {
	srv := New(nil)
	if srv.config.Address != ":3000" || srv.config.Root != "." {
		t.Errorf("config = %+v", srv.config)
	}
	if srv.Registry() != nil {
		t.Error("registry created without metrics")
	}
	if srv.LiveReload() != nil {
		t.Error("live reload created without reload")
	}
}
