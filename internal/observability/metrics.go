package observability

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsCollector manages all metrics for the recommendation service.
// A zero-value collector is valid and records nothing, so callers never
// need nil checks around instrumentation.
type MetricsCollector struct {
	meter metric.Meter

	// Decision pipeline metrics
	recommendRequests metric.Int64Counter
	recommendLatency  metric.Float64Histogram
	triggerFired      metric.Int64Counter
	triggerSuppressed metric.Int64Counter
	lensesShown       metric.Int64Counter

	// Feedback metrics
	lensEvents metric.Int64Counter

	// Session metrics
	sessionsActive metric.Int64UpDownCounter

	// Server for Prometheus scraping
	prometheusServer *http.Server
}

// MetricsConfig configures the metrics collector
type MetricsConfig struct {
	Enabled        bool `yaml:"enabled"`
	PrometheusPort int  `yaml:"prometheus_port"`
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(config MetricsConfig) (*MetricsCollector, error) {
	if !config.Enabled {
		return &MetricsCollector{}, nil
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter("iris")

	recommendRequests, err := meter.Int64Counter(
		"iris.recommend.requests.total",
		metric.WithDescription("Total number of recommendation decisions"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create recommend_requests counter: %w", err)
	}

	recommendLatency, err := meter.Float64Histogram(
		"iris.recommend.latency",
		metric.WithDescription("Recommendation decision latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create recommend_latency histogram: %w", err)
	}

	triggerFired, err := meter.Int64Counter(
		"iris.trigger.fired.total",
		metric.WithDescription("Trigger gate decisions that fired, by reason"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trigger_fired counter: %w", err)
	}

	triggerSuppressed, err := meter.Int64Counter(
		"iris.trigger.suppressed.total",
		metric.WithDescription("Trigger gate decisions blocked by a suppression rule"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trigger_suppressed counter: %w", err)
	}

	lensesShown, err := meter.Int64Counter(
		"iris.lenses.shown.total",
		metric.WithDescription("Lens recommendations surfaced to users"),
		metric.WithUnit("{recommendation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create lenses_shown counter: %w", err)
	}

	lensEvents, err := meter.Int64Counter(
		"iris.lens.events.total",
		metric.WithDescription("User feedback events on recommendations"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create lens_events counter: %w", err)
	}

	sessionsActive, err := meter.Int64UpDownCounter(
		"iris.sessions.active",
		metric.WithDescription("Number of active sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sessions_active gauge: %w", err)
	}

	collector := &MetricsCollector{
		meter:             meter,
		recommendRequests: recommendRequests,
		recommendLatency:  recommendLatency,
		triggerFired:      triggerFired,
		triggerSuppressed: triggerSuppressed,
		lensesShown:       lensesShown,
		lensEvents:        lensEvents,
		sessionsActive:    sessionsActive,
	}

	if config.PrometheusPort > 0 {
		if err := collector.StartPrometheusServer(config.PrometheusPort); err != nil {
			return nil, fmt.Errorf("failed to start prometheus server: %w", err)
		}
	}

	return collector, nil
}

// StartPrometheusServer starts the Prometheus metrics server
func (m *MetricsCollector) StartPrometheusServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promclient.Handler())

	m.prometheusServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		log.Printf("Prometheus metrics server listening on :%d", port)
		if err := m.prometheusServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Prometheus server error: %v", err)
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the metrics collector
func (m *MetricsCollector) Shutdown(ctx context.Context) error {
	if m.prometheusServer != nil {
		return m.prometheusServer.Shutdown(ctx)
	}
	return nil
}

// RecordRecommendation records one complete decision. Outcome is one of
// recommended, suppressed, no_trigger, below_threshold.
func (m *MetricsCollector) RecordRecommendation(ctx context.Context, outcome string, latency time.Duration) {
	if m == nil || m.recommendRequests == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.recommendRequests.Add(ctx, 1, attrs)
	m.recommendLatency.Record(ctx, latency.Seconds(), attrs)
}

// RecordTriggerFired records a gate decision that fired.
func (m *MetricsCollector) RecordTriggerFired(ctx context.Context, reason string) {
	if m == nil || m.triggerFired == nil {
		return
	}
	m.triggerFired.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RecordTriggerSuppressed records a gate decision blocked by a
// suppression rule.
func (m *MetricsCollector) RecordTriggerSuppressed(ctx context.Context, cause string) {
	if m == nil || m.triggerSuppressed == nil {
		return
	}
	m.triggerSuppressed.Add(ctx, 1, metric.WithAttributes(attribute.String("cause", cause)))
}

// RecordLensShown records one surfaced recommendation.
func (m *MetricsCollector) RecordLensShown(ctx context.Context, lensID string) {
	if m == nil || m.lensesShown == nil {
		return
	}
	m.lensesShown.Add(ctx, 1, metric.WithAttributes(attribute.String("lens_id", lensID)))
}

// RecordLensEvent records user feedback on a recommendation. Event is
// opened or dismissed.
func (m *MetricsCollector) RecordLensEvent(ctx context.Context, lensID string, event string) {
	if m == nil || m.lensEvents == nil {
		return
	}
	m.lensEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("lens_id", lensID),
		attribute.String("event", event),
	))
}

// IncrementActiveSessions increments the active sessions counter
func (m *MetricsCollector) IncrementActiveSessions(ctx context.Context) {
	if m == nil || m.sessionsActive == nil {
		return
	}
	m.sessionsActive.Add(ctx, 1)
}

// DecrementActiveSessions decrements the active sessions counter
func (m *MetricsCollector) DecrementActiveSessions(ctx context.Context) {
	if m == nil || m.sessionsActive == nil {
		return
	}
	m.sessionsActive.Add(ctx, -1)
}
