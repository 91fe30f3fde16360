package enrichment

import (
	"context"

	"interview-coach-go/internal/analysis"
	"interview-coach-go/internal/types"
)

// Lexicon is the offline provider. From text alone it supplies a sentiment
// score computed from the positive and negative word lists; given the
// extracted metrics it also supplies the heuristic clarity and confidence.
type Lexicon struct{}

// Name implements Enricher.
func (Lexicon) Name() string { return ProviderLexicon }

// Enrich implements Enricher.
func (Lexicon) Enrich(ctx context.Context, text string) (*types.Enrichment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	score, ok := analysis.LexiconSentiment(text)
	if !ok {
		return &types.Enrichment{}, nil
	}
	return &types.Enrichment{SentimentScore: &score}, nil
}

// EnrichMetrics implements MetricsEnricher. Confidence counts a positive
// lexicon sentiment; no sentiment word leaves the score unset.
func (l Lexicon) EnrichMetrics(ctx context.Context, m types.TranscriptMetrics) (*types.Enrichment, error) {
	e, err := l.Enrich(ctx, m.CleanedText)
	if err != nil {
		return nil, err
	}
	sentiment := 0.0
	if e.SentimentScore != nil {
		sentiment = *e.SentimentScore
	}
	clarity := analysis.OfflineClarity(m)
	confidence := analysis.OfflineConfidence(m, sentiment)
	e.ClarityScore = &clarity
	e.ConfidenceScore = &confidence
	return e, nil
}

// Static returns fixed overrides. It backs the "mock" provider used for demos
// and offline runs.
type Static struct {
	Enrichment types.Enrichment
	Err        error
}

// NewStatic returns a Static with deterministic demo values.
func NewStatic() *Static {
	score, clarity, confidence := 0.4, 0.8, 0.7
	label, tone := analysis.Positive, "composed"
	return &Static{Enrichment: types.Enrichment{
		SentimentScore:  &score,
		SentimentLabel:  &label,
		ClarityScore:    &clarity,
		ConfidenceScore: &confidence,
		Suggestions:     []string{"Structure answers as situation, action, result."},
		Tone:            &tone,
	}}
}

// Name implements Enricher.
func (s *Static) Name() string { return ProviderMock }

// Enrich implements Enricher.
func (s *Static) Enrich(ctx context.Context, _ string) (*types.Enrichment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	e := s.Enrichment
	e.Suggestions = append([]string(nil), s.Enrichment.Suggestions...)
	return &e, nil
}
