// Package processor runs the full scoring pipeline for one transcript:
// extraction, optional enrichment under a deadline, merge and scoring.
package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"interview-coach-go/internal/analysis"
	"interview-coach-go/internal/enrichment"
	"interview-coach-go/internal/observe"
	"interview-coach-go/internal/types"
)

// DefaultTimeout bounds the enrichment call when none is configured.
const DefaultTimeout = 15 * time.Second

// Processor is safe for concurrent use.
type Processor struct {
	extractor *analysis.Extractor
	enricher  enrichment.Enricher
	timeout   time.Duration
	log       *logrus.Entry
	metrics   *observe.Metrics
	fetcher   Fetcher
}

// Option configures a Processor.
type Option func(*Processor)

// WithExtractor sets the extractor, e.g. one built with a custom filler lexicon.
func WithExtractor(e *analysis.Extractor) Option {
	return func(p *Processor) { p.extractor = e }
}

// WithEnricher sets the enrichment provider. A nil enricher scores on the baseline.
func WithEnricher(e enrichment.Enricher) Option {
	return func(p *Processor) { p.enricher = e }
}

// WithTimeout bounds every enrichment call.
func WithTimeout(d time.Duration) Option {
	return func(p *Processor) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithLogger sets the entry enrichment failures are logged to.
func WithLogger(l *logrus.Entry) Option {
	return func(p *Processor) { p.log = l }
}

// WithMetrics sets the instruments analyses are recorded on.
func WithMetrics(m *observe.Metrics) Option {
	return func(p *Processor) { p.metrics = m }
}

// New returns a Processor using the default extractor and no enricher
// unless overridden by opts.
func New(opts ...Option) *Processor {
	p := &Processor{
		extractor: analysis.NewExtractor(nil),
		timeout:   DefaultTimeout,
		log:       logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, o := range opts {
		o(p)
	}
	if p.metrics == nil {
		p.metrics = observe.DefaultMetrics()
	}
	return p
}

// EnricherName reports the configured provider, or "none".
func (p *Processor) EnricherName() string {
	if p.enricher == nil {
		return enrichment.ProviderNone
	}
	return p.enricher.Name()
}

// Analyze scores transcript. durationSeconds <= 0 means unknown. It never
// fails: any enrichment problem falls back to the baseline values.
func (p *Processor) Analyze(ctx context.Context, transcript string, durationSeconds float64) types.ScoredResult {
	m := p.extractor.Extract(transcript, durationSeconds)

	outcome := observe.OutcomeBaseline
	in := analysis.Baseline(m)
	if p.enricher != nil && m.TotalWords > 0 {
		e, err := p.enrich(ctx, m)
		if err != nil {
			p.log.WithFields(logrus.Fields{
				"provider": p.enricher.Name(),
				"error":    err.Error(),
			}).Warn("enrichment failed, using baseline")
			outcome = observe.OutcomeFallback
		} else {
			in = analysis.Merge(m, e)
			outcome = observe.OutcomeEnriched
		}
	}

	res := analysis.Score(in)
	p.metrics.RecordAnalysis(ctx, outcome, res.OverallScore)
	return res
}

type enrichResult struct {
	e   *types.Enrichment
	err error
}

// enrich makes one attempt under the processor timeout. The provider call
// is abandoned, not awaited, once the deadline passes.
func (p *Processor) enrich(parent context.Context, m types.TranscriptMetrics) (*types.Enrichment, error) {
	ctx, cancel := context.WithTimeout(parent, p.timeout)
	defer cancel()

	start := time.Now()
	ch := make(chan enrichResult, 1)
	go func() {
		var r enrichResult
		if me, ok := p.enricher.(enrichment.MetricsEnricher); ok {
			r.e, r.err = me.EnrichMetrics(ctx, m)
		} else {
			r.e, r.err = p.enricher.Enrich(ctx, m.CleanedText)
		}
		ch <- r
	}()

	var (
		e   *types.Enrichment
		err error
	)
	select {
	case <-ctx.Done():
		err = fmt.Errorf("enrichment timeout: %w", ctx.Err())
	case r := <-ch:
		e, err = r.e, r.err
		if err == nil && e == nil {
			err = errors.New("enrichment returned nothing")
		}
	}

	p.metrics.RecordEnrichment(parent, p.enricher.Name(), status(err), time.Since(start))
	return e, err
}

func status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}
