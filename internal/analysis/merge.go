package analysis

import (
	"math"
	"strings"

	"interview-coach-go/internal/types"
)

// Baseline returns the ScoreInput used when no enrichment is available:
// neutral sentiment, clarity from vocabulary richness, confidence 0.5.
func Baseline(m types.TranscriptMetrics) ScoreInput {
	return ScoreInput{
		Metrics:         m,
		SentimentScore:  0,
		ClarityScore:    math.Min(1, float64(m.VocabularyRichness)/100),
		ConfidenceScore: defaultConfidence,
		Suggestions:     []string{},
	}
}

// Merge applies enrichment overrides on top of the baseline field by field.
// A field that is absent, non-finite or (for the label) not a known sentiment
// label keeps its baseline value. A nil enrichment yields the baseline.
func Merge(m types.TranscriptMetrics, e *types.Enrichment) ScoreInput {
	in := Baseline(m)
	if e == nil {
		return in
	}
	if e.SentimentScore != nil && finite(*e.SentimentScore) {
		in.SentimentScore = *e.SentimentScore
	}
	if e.SentimentLabel != nil {
		in.SentimentLabel = canonicalLabel(*e.SentimentLabel)
	}
	if e.ClarityScore != nil && finite(*e.ClarityScore) {
		in.ClarityScore = *e.ClarityScore
	}
	if e.ConfidenceScore != nil && finite(*e.ConfidenceScore) {
		in.ConfidenceScore = *e.ConfidenceScore
	}
	if e.Suggestions != nil {
		in.Suggestions = append([]string{}, e.Suggestions...)
	}
	if e.Tone != nil && strings.TrimSpace(*e.Tone) != "" {
		tone := *e.Tone
		in.Tone = &tone
	}
	return in
}

// canonicalLabel returns the known label matching s case-insensitively, or ""
// when s is not a sentiment label.
func canonicalLabel(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	for _, l := range sentimentLabels {
		if strings.EqualFold(s, l) {
			return l
		}
	}
	return ""
}
