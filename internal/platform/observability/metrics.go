package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const metricNamespace = "github.com/Xnn511/kiwa/internal/platform/observability"

// MenuQuery describes one filter run for metrics.
type MenuQuery struct {
	Lang      string
	Searching bool
	Selected  int
	Results   int
	Duration  time.Duration
}

// MenuMetrics records menu query counts, result sizes and latency.
// The zero value and nil pointer record nothing.
type MenuMetrics struct {
	queries metric.Int64Counter
	results metric.Int64Histogram
	latency metric.Float64Histogram
}

// NewMenuMetrics registers instruments on meter, or on the global provider when nil.
// Instruments that fail to register are skipped with a warning.
func NewMenuMetrics(meter metric.Meter, logger *zap.Logger) *MenuMetrics {
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(metricNamespace)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &MenuMetrics{}
	var err error
	m.queries, err = meter.Int64Counter(
		"menu.queries",
		metric.WithDescription("Count of menu filter runs"),
	)
	if err != nil {
		logger.Warn("metrics: unable to register menu query counter", zap.Error(err))
	}
	m.results, err = meter.Int64Histogram(
		"menu.results",
		metric.WithDescription("Number of items visible after filtering"),
	)
	if err != nil {
		logger.Warn("metrics: unable to register menu results histogram", zap.Error(err))
	}
	m.latency, err = meter.Float64Histogram(
		"menu.query.latency",
		metric.WithUnit("ms"),
		metric.WithDescription("Latency in milliseconds for menu filter runs"),
	)
	if err != nil {
		logger.Warn("metrics: unable to register menu latency histogram", zap.Error(err))
	}
	return m
}

// Record reports q.
func (m *MenuMetrics) Record(ctx context.Context, q MenuQuery) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("lang", q.Lang),
		attribute.String("mode", queryMode(q)),
	)
	if m.queries != nil {
		m.queries.Add(ctx, 1, attrs)
	}
	if m.results != nil {
		m.results.Record(ctx, int64(q.Results), attrs)
	}
	if m.latency != nil {
		m.latency.Record(ctx, float64(q.Duration)/float64(time.Millisecond), attrs)
	}
}

func queryMode(q MenuQuery) string {
	switch {
	case q.Searching:
		return "search"
	case q.Selected > 0:
		return "tags"
	default:
		return "all"
	}
}
