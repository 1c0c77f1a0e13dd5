package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vango-dev/hiccup/internal/errors"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestPrometheusMiddleware_RecordsRequests(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	h := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<p>ok</p>"))
	}))

	serve(h, "/docs")
	serve(h, "/docs")

	if got := metricCounterValue(t, m.requestsTotal.WithLabelValues("/docs", "200")); got != 2 {
		t.Errorf("requests_total = %v, want 2", got)
	}
	if got := metricHistogramCount(t, m.renderDuration.WithLabelValues("/docs")); got != 2 {
		t.Errorf("render_duration_seconds count = %d, want 2", got)
	}
	if got := metricHistogramCount(t, m.responseBytes); got != 2 {
		t.Errorf("response_bytes count = %d, want 2", got)
	}
}

func TestPrometheusMiddleware_RecordsRenderErrors(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	h := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		RecordRenderError(r, errors.New("E021"))
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))

	w := serve(h, "/broken")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", w.Code)
	}
	if got := metricCounterValue(t, m.renderErrors.WithLabelValues("/broken", "node")); got != 1 {
		t.Errorf("render_errors_total{category=node} = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.requestsTotal.WithLabelValues("/broken", "422")); got != 1 {
		t.Errorf("requests_total{status=422} = %v, want 1", got)
	}
}

func TestPrometheusMiddleware_NotFoundPathCollapsed(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	h := m.Handler(http.NotFoundHandler())

	for i := 0; i < 3; i++ {
		serve(h, fmt.Sprintf("/probe/%d", i))
	}
	if got := metricCounterValue(t, m.requestsTotal.WithLabelValues(notFoundPath, "404")); got != 3 {
		t.Errorf("requests_total{path=%s} = %v, want 3", notFoundPath, got)
	}
}

func TestPrometheusMiddleware_Options(t *testing.T) {
	reg := prometheus.NewRegistry()
	mw := Prometheus(
		WithRegistry(reg),
		WithNamespace("docs"),
		WithSubsystem("preview"),
		WithConstLabels(prometheus.Labels{"env": "test"}),
		WithBuckets([]float64{0.1, 1}),
	)
	serve(mw(http.NotFoundHandler()), "/")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"docs_preview_requests_total",
		"docs_preview_render_duration_seconds",
		"docs_preview_response_bytes",
	} {
		if !names[want] {
			t.Errorf("metric %s not registered (have %v)", want, names)
		}
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.New("E002"), "parse"},
		{errors.New("E020"), "node"},
		{fmt.Errorf("page.html: %w", errors.New("E040")), "document"},
		{fmt.Errorf("plain"), "internal"},
	}
	for _, tt := range tests {
		if got := categorizeError(tt.err); got != tt.want {
			t.Errorf("categorizeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestRecordRenderErrorWithoutMiddleware(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	RecordRenderError(r, errors.New("E020"))
	if err := RenderError(r); err != nil {
		t.Errorf("RenderError = %v, want nil", err)
	}
}
