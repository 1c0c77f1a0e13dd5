// Package middleware provides net/http middleware that observes render
// requests.
//
// This package includes:
//   - Prometheus metrics middleware
//   - OpenTelemetry tracing middleware
//   - RecordRenderError for handlers to report render failures
//
// # Prometheus Metrics
//
// Metrics collected:
//   - hiccup_requests_total: requests by path and status code
//   - hiccup_render_duration_seconds: request handling duration by path
//   - hiccup_render_errors_total: render failures by path and error category
//   - hiccup_response_bytes: size of response bodies
//
//	reg := prometheus.NewRegistry()
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r.Use(m.Handler)
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// # OpenTelemetry
//
// OpenTelemetry starts a server span per request. The tracer comes from
// the global provider unless WithTracerProvider is given:
//
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("docs-preview"),
//	    middleware.WithFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/metrics"
//	    }),
//	))
//
// # Render Errors
//
// Handlers call RecordRenderError when rendering fails. Both middlewares
// pick the error up: metrics count it by category and tracing records it
// on the span.
package middleware
