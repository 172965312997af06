package hotelsearch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// sdkMetrics holds the client call collectors.
type sdkMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotelsearch",
			Subsystem: "sdk",
			Name:      "calls_total",
			Help:      "Client calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hotelsearch",
			Subsystem: "sdk",
			Name:      "call_duration_seconds",
			Help:      "Client call latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.calls); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("hotelsearch: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("hotelsearch: register metric: %w", err)
	}
	return nil
}

// operation names a client call in logs and metrics.
type operation string

const (
	opSearch  operation = "search"
	opFacets  operation = "facets"
	opSuggest operation = "suggest"
	opPing    operation = "ping"
)

// Outcome labels. Engine failures are split from malformed responses so a
// mapping drift is visible apart from a cluster outage.
const (
	outcomeOK        = "ok"
	outcomeInvalid   = "invalid_params"
	outcomeEngine    = "engine_unavailable"
	outcomeMalformed = "malformed_response"
	outcomeOther     = "error"
)

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrInvalidRequest):
		return outcomeInvalid
	case errors.Is(err, ErrMalformedResponse):
		return outcomeMalformed
	case errors.Is(err, ErrSearchFailed):
		return outcomeEngine
	default:
		return outcomeOther
	}
}

// observer records one log line and one metric sample per client call.
// A nil observer records nothing.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

func (o *observer) observe(op operation, start time.Time, err error) {
	if o == nil {
		return
	}
	took := time.Since(start)
	result := outcome(err)

	if o.metrics != nil {
		o.metrics.calls.WithLabelValues(string(op), result).Inc()
		o.metrics.duration.WithLabelValues(string(op)).Observe(took.Seconds())
	}
	if o.logger == nil {
		return
	}

	attrs := []slog.Attr{
		slog.String("op", string(op)),
		slog.String("outcome", result),
		slog.Duration("took", took),
	}
	level := slog.LevelWarn
	switch result {
	case outcomeOK:
		level = slog.LevelDebug
	case outcomeInvalid:
		level = slog.LevelInfo
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	o.logger.LogAttrs(context.Background(), level, "hotelsearch call", attrs...)
}
