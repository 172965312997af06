package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Route areas group endpoints on dashboards.
const (
	AreaSearch = "search"
	AreaAdmin  = "admin"
	AreaOps    = "ops"

	unmatchedRoute = "unmatched"
)

// HTTP Prometheus metrics. Routes are labelled by chi pattern, never by raw
// path, so hotel ids do not create series.
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelsearch",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by area, route, method and status code",
		},
		[]string{"area", "route", "method", "code"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotelsearch",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by area and route",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 30},
		},
		[]string{"area", "route"},
	)

	HTTPInFlight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "hotelsearch",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Requests currently being served by area",
		},
		[]string{"area"},
	)
)

// Middleware records request count, latency and concurrency per route.
// It must be mounted on the chi router so the route pattern is resolved.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			area := areaOf(r.URL.Path)

			inFlight := HTTPInFlight.WithLabelValues(area)
			inFlight.Inc()
			defer inFlight.Dec()

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			code := ww.Status()
			if code == 0 {
				code = http.StatusOK
			}
			route := routeOf(r)

			HTTPRequestsTotal.WithLabelValues(area, route, r.Method, strconv.Itoa(code)).Inc()
			HTTPRequestDuration.WithLabelValues(area, route).Observe(time.Since(start).Seconds())
		})
	}
}

// routeOf returns the matched chi pattern, read after the handler ran.
func routeOf(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}

func areaOf(path string) string {
	switch {
	case strings.HasPrefix(path, "/hotel/"):
		return AreaSearch
	case strings.HasPrefix(path, "/admin/"):
		return AreaAdmin
	default:
		return AreaOps
	}
}
