package actionable

import (
	"fmt"

	"interview-coach-go/internal/analysis"
	"interview-coach-go/internal/types"
)

// Dimensions reported by Generate, in output order.
const (
	Pace           = "pace"
	Fillers        = "fillers"
	Vocabulary     = "vocabulary"
	Sentiment      = "sentiment"
	Clarity        = "clarity"
	Confidence     = "confidence"
	Repetition     = "repetition"
	SentenceLength = "sentenceLength"
)

// Rating labels shared by several dimensions.
const (
	Excellent        = "Excellent"
	Good             = "Good"
	NeedsImprovement = "Needs Improvement"
	Poor             = "Poor"
)

// Card is a per-dimension rating with coaching advice.
type Card struct {
	Dimension string `json:"dimension"`
	Label     string `json:"label"`
	Value     string `json:"value"`
	Advice    string `json:"advice"`
}

// Generate rates every dimension of a scored result.
func Generate(r types.ScoredResult) []Card {
	fillerPct := 0.0
	if r.TotalWords > 0 {
		fillerPct = float64(r.TotalFillerCount) / float64(r.TotalWords) * 100
	}
	repeated := 0
	for _, wc := range r.WordRepetitions {
		if wc.Count > 2 {
			repeated++
		}
	}

	return []Card{
		pace(r.WordsPerMinute),
		fillers(fillerPct),
		vocabulary(r.VocabularyRichness),
		sentiment(r.SentimentLabel, r.SentimentScore),
		graded(Clarity, r.ClarityScore*100, clarityAdvice),
		graded(Confidence, r.ConfidenceScore*100, confidenceAdvice),
		repetition(repeated),
		sentenceLength(r.AverageSentenceLength),
	}
}

func pace(wpm int) Card {
	c := Card{Dimension: Pace, Value: fmt.Sprintf("%d WPM", wpm)}
	switch {
	case wpm < 100:
		c.Label, c.Advice = "Too Slow", "Your pace is slower than ideal. Try to speak a bit faster to maintain engagement."
	case wpm <= 160:
		c.Label, c.Advice = Excellent, "Perfect speaking pace! You're maintaining an engaging and clear delivery."
	case wpm <= 180:
		c.Label, c.Advice = "Slightly Fast", "You're speaking a bit quickly. Try to slow down slightly for better clarity."
	default:
		c.Label, c.Advice = "Too Fast", "Slow down! Speaking too fast can make you harder to understand and seem nervous."
	}
	return c
}

func fillers(pct float64) Card {
	c := Card{Dimension: Fillers, Value: fmt.Sprintf("%.1f%%", pct)}
	switch {
	case pct <= 2:
		c.Label, c.Advice = Excellent, "Great job! You're using very few filler words."
	case pct <= 5:
		c.Label, c.Advice = Good, "You're doing well, but try to reduce filler words even more."
	case pct <= 8:
		c.Label, c.Advice = NeedsImprovement, `Focus on reducing filler words. Pause instead of saying "um" or "like".`
	default:
		c.Label, c.Advice = Poor, "Too many filler words! Practice pausing and thinking before speaking."
	}
	return c
}

func vocabulary(richness int) Card {
	c := Card{Dimension: Vocabulary, Value: fmt.Sprintf("%d%%", richness)}
	switch {
	case richness >= 60:
		c.Label, c.Advice = Excellent, "Outstanding vocabulary variety! You're using diverse and rich language."
	case richness >= 45:
		c.Label, c.Advice = Good, "Good vocabulary usage. Consider using more varied terms to sound more professional."
	case richness >= 30:
		c.Label, c.Advice = "Fair", "Try to use more varied vocabulary. Avoid repeating the same words frequently."
	default:
		c.Label, c.Advice = "Limited", "Expand your vocabulary! Using more diverse words will make your answers more engaging."
	}
	return c
}

var sentimentAdvice = map[string]string{
	analysis.VeryPositive:     "Great positive energy! Your enthusiasm comes through clearly.",
	analysis.Positive:         "Good positive tone. This helps create a favorable impression.",
	analysis.Neutral:          "Neutral tone. Consider adding more enthusiasm to show your passion for the role.",
	analysis.SlightlyNegative: "Try to frame things more positively, even when discussing challenges.",
}

func sentiment(label string, score float64) Card {
	advice, ok := sentimentAdvice[label]
	if !ok {
		advice = "Reframe negative language. Focus on solutions and learning rather than problems."
	}
	return Card{Dimension: Sentiment, Label: label, Value: fmt.Sprintf("%.2f", score), Advice: advice}
}

var clarityAdvice = [4]string{
	"Your speech is clear and easy to follow. Keep it up!",
	"Your speech is mostly clear. Try to reduce filler words and improve sentence structure.",
	"Your speech is a bit unclear. Focus on reducing filler words and improving sentence structure.",
	"Your speech is unclear. Practice reducing filler words and improving sentence structure.",
}

var confidenceAdvice = [4]string{
	"Your confidence is high. Keep it up!",
	"Your confidence is good. Try to speak a bit faster and use more varied vocabulary.",
	"Your confidence is a bit low. Focus on speaking faster, using varied vocabulary, and maintaining a positive tone.",
	"Your confidence is low. Practice speaking faster, using varied vocabulary, and maintaining a positive tone.",
}

// graded rates a 0-100 value on the 80/60/40 scale.
func graded(dim string, v float64, advice [4]string) Card {
	c := Card{Dimension: dim, Value: fmt.Sprintf("%.0f%%", v)}
	switch {
	case v >= 80:
		c.Label, c.Advice = Excellent, advice[0]
	case v >= 60:
		c.Label, c.Advice = Good, advice[1]
	case v >= 40:
		c.Label, c.Advice = NeedsImprovement, advice[2]
	default:
		c.Label, c.Advice = Poor, advice[3]
	}
	return c
}

func repetition(n int) Card {
	c := Card{Dimension: Repetition, Value: fmt.Sprintf("%d words", n)}
	switch {
	case n == 0:
		c.Label, c.Advice = Excellent, "You're using a variety of words. Great job!"
	case n <= 2:
		c.Label, c.Advice = Good, "You're using a variety of words. Consider using even more varied terms."
	case n <= 4:
		c.Label, c.Advice = NeedsImprovement, "You're repeating some words. Try to use more varied vocabulary."
	default:
		c.Label, c.Advice = Poor, "You're repeating words frequently. Practice using more varied vocabulary."
	}
	return c
}

func sentenceLength(avg float64) Card {
	c := Card{Dimension: SentenceLength, Value: fmt.Sprintf("%.1f words", avg)}
	switch {
	case avg >= 10 && avg <= 30:
		c.Label, c.Advice = Excellent, "Your sentences are well-structured and easy to follow. Keep it up!"
	case avg >= 8 && avg <= 32:
		c.Label, c.Advice = Good, "Your sentences are mostly well-structured. Try to keep them within 10-30 words."
	case avg >= 6 && avg <= 34:
		c.Label, c.Advice = NeedsImprovement, "Your sentences are a bit long or short. Try to keep them within 10-30 words."
	default:
		c.Label, c.Advice = Poor, "Your sentences are too long or short. Practice keeping them within 10-30 words."
	}
	return c
}
