package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PipelineMetrics tracks internal health of the decision pipeline:
// signal cache behavior, classified intents, and candidate volume.
// Nil receivers record nothing.
type PipelineMetrics struct {
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	primaryIntents  prometheus.CounterVec
	candidatesFound prometheus.Histogram
}

var (
	defaultPipelineMetrics     *PipelineMetrics
	defaultPipelineMetricsOnce sync.Once
)

// NewPipelineMetrics builds a PipelineMetrics recorder using the default registry.
func NewPipelineMetrics() *PipelineMetrics {
	defaultPipelineMetricsOnce.Do(func() {
		defaultPipelineMetrics = newPipelineMetrics(prometheus.DefaultRegisterer)
	})
	return defaultPipelineMetrics
}

// NewPipelineMetricsWithRegisterer allows tests to provide a dedicated registry.
func NewPipelineMetricsWithRegisterer(reg prometheus.Registerer) *PipelineMetrics {
	return newPipelineMetrics(reg)
}

func newPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &PipelineMetrics{
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "iris",
			Subsystem: "pipeline",
			Name:      "signal_cache_hit_total",
			Help:      "Number of signal extractions served from the per-message cache",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "iris",
			Subsystem: "pipeline",
			Name:      "signal_cache_miss_total",
			Help:      "Number of signal extractions that required a full rule-table pass",
		}),
		primaryIntents: *factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "iris",
			Subsystem: "pipeline",
			Name:      "primary_intent_total",
			Help:      "Messages classified per primary intent",
		}, []string{"intent"}),
		candidatesFound: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "iris",
			Subsystem: "pipeline",
			Name:      "candidates_found",
			Help:      "Lenses above the score threshold per fired trigger",
			Buckets:   []float64{0, 1, 2, 3},
		}),
	}
}

// RecordSignalCache counts one cache lookup.
func (m *PipelineMetrics) RecordSignalCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		if m.cacheHits != nil {
			m.cacheHits.Inc()
		}
		return
	}
	if m.cacheMisses != nil {
		m.cacheMisses.Inc()
	}
}

// RecordPrimaryIntent counts the primary intent of one classified message.
func (m *PipelineMetrics) RecordPrimaryIntent(intent string) {
	if m == nil {
		return
	}
	m.primaryIntents.WithLabelValues(intent).Inc()
}

// ObserveCandidates records how many lenses cleared the threshold for a
// fired trigger.
func (m *PipelineMetrics) ObserveCandidates(count int) {
	if m == nil || m.candidatesFound == nil {
		return
	}
	m.candidatesFound.Observe(float64(count))
}
