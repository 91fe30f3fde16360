// Package observe holds the OpenTelemetry metric instruments for the coach
// service and the Prometheus bridge that exposes them on /metrics. Tests
// should build their own [Metrics] with [NewMetrics] and a ManualReader.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "interview-coach-go"

// Enrichment outcomes recorded on the analyses counter.
const (
	OutcomeBaseline = "baseline" // no enricher configured
	OutcomeEnriched = "enriched"
	OutcomeFallback = "fallback" // enricher failed or timed out
)

// Metrics holds all instruments. The OTel types are safe for concurrent use.
type Metrics struct {
	// Analyses counts scored transcripts, by attribute "enrichment" (one of the Outcome constants).
	Analyses metric.Int64Counter

	// OverallScore records the distribution of overall scores.
	OverallScore metric.Int64Histogram

	// EnrichmentDuration tracks enrichment latency, by "provider" and "status".
	EnrichmentDuration metric.Float64Histogram

	// HTTPRequestDuration tracks handler latency, by "method", "path" and "status".
	HTTPRequestDuration metric.Float64Histogram
}

var latencyBuckets = []float64{
	0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30,
}

var scoreBuckets = []float64{
	10, 20, 30, 40, 50, 60, 70, 80, 90, 100,
}

// NewMetrics creates the instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Analyses, err = m.Int64Counter("coach.analyses",
		metric.WithDescription("Number of transcripts scored."),
	); err != nil {
		return nil, err
	}
	if met.OverallScore, err = m.Int64Histogram("coach.overall_score",
		metric.WithDescription("Overall score of scored transcripts."),
		metric.WithExplicitBucketBoundaries(scoreBuckets...),
	); err != nil {
		return nil, err
	}
	if met.EnrichmentDuration, err = m.Float64Histogram("coach.enrichment.duration",
		metric.WithDescription("Latency of the enrichment provider call."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("coach.http.request.duration",
		metric.WithDescription("Latency of HTTP requests."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns a package-level instance built on the global
// MeterProvider. It panics if instrument creation fails.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordAnalysis counts one scored transcript and records its overall score.
func (m *Metrics) RecordAnalysis(ctx context.Context, outcome string, overall int) {
	m.Analyses.Add(ctx, 1, metric.WithAttributes(attribute.String("enrichment", outcome)))
	m.OverallScore.Record(ctx, int64(overall))
}

// RecordEnrichment records the latency of one enrichment call.
func (m *Metrics) RecordEnrichment(ctx context.Context, provider, status string, d time.Duration) {
	m.EnrichmentDuration.Record(ctx, d.Seconds(),
		metric.WithAttributes(
			attribute.String("provider", provider),
			attribute.String("status", status),
		),
	)
}
