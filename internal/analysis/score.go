package analysis

import (
	"fmt"
	"math"
	"slices"

	"interview-coach-go/internal/types"
)

// Sub-score weights. They sum to 1.
const (
	weightWPM        = 0.25
	weightFiller     = 0.20
	weightVocab      = 0.20
	weightClarity    = 0.20
	weightConfidence = 0.15
)

const (
	idealWPM         = 130
	wpmTolerance     = 60
	fillerCeiling    = 10
	longSentence     = 25
	maxLengthPenalty = 10

	defaultConfidence = 0.5
)

// Sentiment labels, strongest positive first.
const (
	VeryPositive     = "Very Positive"
	Positive         = "Positive"
	Neutral          = "Neutral"
	SlightlyNegative = "Slightly Negative"
	Negative         = "Negative"
	VeryNegative     = "Very Negative"
)

var sentimentLabels = []string{VeryPositive, Positive, Neutral, SlightlyNegative, Negative, VeryNegative}

// ScoreInput is what the scoring engine consumes: the extracted metrics plus
// the resolved sentiment, clarity and confidence values. Build it with Merge.
type ScoreInput struct {
	Metrics         types.TranscriptMetrics
	SentimentScore  float64
	SentimentLabel  string // derived from SentimentScore when empty
	ClarityScore    float64
	ConfidenceScore float64
	Suggestions     []string
	Tone            *string
}

// SentimentLabelFor maps a sentiment score in [-1,1] to its label.
func SentimentLabelFor(score float64) string {
	switch {
	case score >= 0.6:
		return VeryPositive
	case score >= 0.2:
		return Positive
	case score > -0.2:
		return Neutral
	case score > -0.6:
		return Negative
	default:
		return VeryNegative
	}
}

// Score computes the sub-scores, the weighted overall score and the
// suggestion list. It never fails: out-of-range numbers are clamped and
// non-finite ones replaced by their documented defaults. The input is not
// modified.
func Score(in ScoreInput) types.ScoredResult {
	m := in.Metrics

	filler := max(m.TotalFillerCount, 0)
	vocab := float64(m.VocabularyRichness)
	clarity := in.ClarityScore
	if !finite(clarity) {
		clarity = math.Min(1, vocab/100)
	}
	confidence := in.ConfidenceScore
	if !finite(confidence) {
		confidence = defaultConfidence
	}
	sentiment := in.SentimentScore
	if !finite(sentiment) {
		sentiment = 0
	}
	avgLen := m.AverageSentenceLength
	if !finite(avgLen) {
		avgLen = 0
	}

	wpmScore := math.Max(0, 1-math.Min(1, math.Abs(float64(m.WordsPerMinute)-idealWPM)/wpmTolerance)) * 100
	fillerScore := math.Max(0, 1-math.Min(1, float64(filler)/fillerCeiling)) * 100
	vocabScore := clamp(vocab, 0, 100)
	clarityScore := clamp(clarity*100, 0, 100)
	confidenceScore := clamp(confidence*100, 0, 100)
	sentencePenalty := math.Max(0, (avgLen-longSentence)/longSentence)

	overall := roundHalfUp(wpmScore*weightWPM +
		fillerScore*weightFiller +
		vocabScore*weightVocab +
		clarityScore*weightClarity +
		confidenceScore*weightConfidence -
		math.Min(maxLengthPenalty, sentencePenalty*10))

	label := in.SentimentLabel
	if label == "" {
		label = SentimentLabelFor(sentiment)
	}

	res := types.ScoredResult{
		TranscriptMetrics: m,
		FillerWords:       m.FillerWords(),
		SentimentScore:    clamp(sentiment, -1, 1),
		SentimentLabel:    label,
		ClarityScore:      clamp(clarity, 0, 1),
		ConfidenceScore:   clamp(confidence, 0, 1),
		ScoringBreakdown: types.ScoringBreakdown{
			WPMScore:        int(roundHalfUp(wpmScore)),
			FillerScore:     int(roundHalfUp(fillerScore)),
			VocabScore:      int(roundHalfUp(vocabScore)),
			ClarityScore:    int(roundHalfUp(clarityScore)),
			ConfidenceScore: int(roundHalfUp(confidenceScore)),
		},
		OverallScore: int(clamp(overall, 0, 100)),
		Suggestions:  suggestions(in.Suggestions, filler, m.WordsPerMinute, m.VocabularyRichness, avgLen),
		Tone:         in.Tone,
	}
	res.FillerCounts = slices.Clone(m.FillerCounts)
	res.WordRepetitions = slices.Clone(m.WordRepetitions)
	return res
}

// suggestions appends the threshold-triggered tips to the supplied ones, in
// fixed order: filler, slow pace, fast pace, vocabulary, sentence length.
func suggestions(supplied []string, filler, wpm, vocab int, avgLen float64) []string {
	out := make([]string, 0, len(supplied)+5)
	out = append(out, supplied...)
	if filler > 2 {
		out = append(out, fmt.Sprintf("Reduce filler words — heard %d times.", filler))
	}
	if wpm < 100 {
		out = append(out, fmt.Sprintf("Try increasing pace: current %d WPM; aim for 110-160 WPM.", wpm))
	}
	if wpm > 170 {
		out = append(out, fmt.Sprintf("Try slowing down a bit: current %d WPM.", wpm))
	}
	if vocab < 40 {
		out = append(out, "Work on varied vocabulary to improve richness.")
	}
	if avgLen > longSentence {
		out = append(out, "Use shorter sentences to improve clarity.")
	}
	return out
}
