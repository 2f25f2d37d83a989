// Package recommend wires the decision pipeline together: extract
// signals, gate the turn, rank the catalog, assemble the output. The
// pipeline itself is pure; the engine only adds caching and
// instrumentation around it.
package recommend

import (
	"context"
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"iris/internal/catalog"
	"iris/internal/logging"
	"iris/internal/observability"
	"iris/internal/scoring"
	"iris/internal/session"
	"iris/internal/signals"
	"iris/internal/trigger"
)

// DefaultSignalCacheSize bounds the per-message signal cache. Repeated
// topic checks re-extract recent history every turn, so the same
// messages come back often.
const DefaultSignalCacheSize = 512

// Debug exposes the intermediate pipeline state so callers can tell a
// suppressed turn from one where nothing cleared the threshold.
type Debug struct {
	Signals        signals.Signals  `json:"signals"`
	Trigger        trigger.Result   `json:"trigger"`
	Scored         []scoring.Scored `json:"scored,omitempty"`
	BelowThreshold bool             `json:"below_threshold"`
}

// Result is the complete outcome of one decision.
type Result struct {
	Recommendations []Recommendation `json:"recommendations"`
	Debug           Debug            `json:"debug"`
}

// Config configures an Engine.
type Config struct {
	Catalog  *catalog.Catalog
	Logger   logging.Logger
	Metrics  *observability.MetricsCollector
	Pipeline *observability.PipelineMetrics
	Tracer   *observability.TracerProvider

	// SignalCacheSize overrides DefaultSignalCacheSize when positive.
	SignalCacheSize int
}

// Engine decides, per turn, whether to surface lens recommendations.
// Safe for concurrent use: the catalog is immutable and the signal
// cache is internally synchronized.
type Engine struct {
	catalog  *catalog.Catalog
	logger   logging.Logger
	metrics  *observability.MetricsCollector
	pipeline *observability.PipelineMetrics
	tracer   *observability.TracerProvider
	cache    *lru.Cache[string, signals.Signals]
}

// NewEngine builds an Engine from config. Catalog is required.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("recommend: catalog is required")
	}
	size := cfg.SignalCacheSize
	if size <= 0 {
		size = DefaultSignalCacheSize
	}
	cache, err := lru.New[string, signals.Signals](size)
	if err != nil {
		return nil, err
	}
	return &Engine{
		catalog:  cfg.Catalog,
		logger:   logging.OrNop(cfg.Logger),
		metrics:  cfg.Metrics,
		pipeline: cfg.Pipeline,
		tracer:   cfg.Tracer,
		cache:    cache,
	}, nil
}

func (e *Engine) startSpan(ctx context.Context) (context.Context, trace.Span) {
	if e.tracer == nil {
		return noop.NewTracerProvider().Tracer("iris").Start(ctx, observability.SpanRecommendDecide)
	}
	return e.tracer.StartSpan(ctx, observability.SpanRecommendDecide)
}

// extract returns the signals for a message, serving repeats from the
// cache. Extraction is pure, so cached results are indistinguishable
// from fresh ones.
func (e *Engine) extract(message string) signals.Signals {
	if sig, ok := e.cache.Get(message); ok {
		e.pipeline.RecordSignalCache(true)
		return sig
	}
	e.pipeline.RecordSignalCache(false)
	sig := signals.Extract(message)
	e.cache.Add(message, sig)
	return sig
}

// Recommend runs the full decision for one turn. The session is only
// read; recording the outcome back into it is the caller's job. ctx
// carries tracing and metrics scope, never cancellation: the decision
// completes in bounded time.
func (e *Engine) Recommend(ctx context.Context, message string, sess *session.Context) Result {
	start := time.Now()
	ctx, span := e.startSpan(ctx)
	defer span.End()

	sig := e.extract(message)
	e.pipeline.RecordPrimaryIntent(string(sig.Primary()))
	gate := trigger.Evaluate(sig, sess, e.extract)
	debug := Debug{Signals: sig, Trigger: gate}

	if !gate.ShouldRecommend {
		outcome := "no_trigger"
		if gate.Suppression != "" {
			outcome = "suppressed"
			e.metrics.RecordTriggerSuppressed(ctx, string(gate.Suppression))
		}
		e.metrics.RecordRecommendation(ctx, outcome, time.Since(start))
		e.logger.Debug("turn %d: %s", sess.CurrentTurn, outcome)
		return Result{Debug: debug}
	}
	e.metrics.RecordTriggerFired(ctx, string(gate.Reason))

	scored := scoring.Rank(sig, sess, e.catalog)
	debug.Scored = scored
	e.pipeline.ObserveCandidates(len(scored))
	span.SetAttributes(observability.TriggerAttrs(string(gate.Reason), len(scored))...)
	if len(scored) == 0 {
		debug.BelowThreshold = true
		e.metrics.RecordRecommendation(ctx, "below_threshold", time.Since(start))
		e.logger.Debug("turn %d: trigger %s fired but no lens cleared the threshold", sess.CurrentTurn, gate.Reason)
		return Result{Debug: debug}
	}

	limit := maxRecommendations(message)
	if limit > len(scored) {
		limit = len(scored)
	}

	recs := make([]Recommendation, 0, limit)
	for _, sc := range scored[:limit] {
		entry, ok := e.catalog.Get(sc.LensID)
		if !ok {
			continue
		}
		recs = append(recs, assemble(message, sig, sc, entry))
		e.metrics.RecordLensShown(ctx, sc.LensID)
	}

	e.metrics.RecordRecommendation(ctx, "recommended", time.Since(start))
	e.logger.Info("turn %d: %s fired, recommending %d of %d candidates",
		sess.CurrentTurn, gate.Reason, len(recs), len(scored))
	return Result{Recommendations: recs, Debug: debug}
}

// RecommendedIDs returns the lens ids of a result in order, for
// recording into session history.
func (r Result) RecommendedIDs() []string {
	if len(r.Recommendations) == 0 {
		return nil
	}
	ids := make([]string, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		ids[i] = rec.LensID
	}
	return ids
}
