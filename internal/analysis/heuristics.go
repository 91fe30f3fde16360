package analysis

import "interview-coach-go/internal/types"

// OfflineClarity estimates clarity in [0,1] from filler density and sentence
// length: 100 less ten points per filler percent, less ten when the average
// sentence is under 10 or over 30 words, rounded and clamped to 0..100.
func OfflineClarity(m types.TranscriptMetrics) float64 {
	fillerPct := 0.0
	if m.TotalWords > 0 {
		fillerPct = float64(m.TotalFillerCount) / float64(m.TotalWords) * 100
	}
	c := 100 - fillerPct*10
	if m.AverageSentenceLength > 30 {
		c -= 10
	}
	if m.AverageSentenceLength < 10 {
		c -= 10
	}
	return clamp(roundHalfUp(c), 0, 100) / 100
}

// OfflineConfidence estimates confidence in [0,1] from 50 plus bonuses for
// pace (25 within 100-160 WPM, 15 within 80-180), vocabulary richness (15 at
// 50 or more, 10 at 35 or more) and positive sentiment (10).
func OfflineConfidence(m types.TranscriptMetrics, sentiment float64) float64 {
	c := 50.0
	switch wpm := m.WordsPerMinute; {
	case wpm >= 100 && wpm <= 160:
		c += 25
	case wpm >= 80 && wpm <= 180:
		c += 15
	}
	switch {
	case m.VocabularyRichness >= 50:
		c += 15
	case m.VocabularyRichness >= 35:
		c += 10
	}
	if sentiment > 0 {
		c += 10
	}
	return clamp(c, 0, 100) / 100
}
