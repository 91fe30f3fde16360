package analysis

import "strings"

var positiveWords = wordSet(
	"good", "great", "excellent", "amazing", "wonderful", "fantastic", "love",
	"happy", "excited", "passionate", "enjoy", "succeed", "success", "achieve",
	"accomplishment", "proud", "confident", "best", "better", "improve", "growth",
	"opportunity", "innovative", "creative", "effective", "efficient", "skilled",
	"experienced", "capable", "qualified", "professional", "dedicated", "motivated",
)

var negativeWords = wordSet(
	"bad", "terrible", "awful", "horrible", "hate", "worst", "poor", "fail",
	"failure", "difficult", "problem", "issue", "struggle", "worry", "concerned",
	"unfortunate", "disappointed", "frustrated", "hard", "weak", "unable", "cannot",
	"never", "boring", "tired", "stressed", "anxious", "nervous", "scared",
)

func wordSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// LexiconSentiment scores text against the positive and negative word lists.
// Tokens are lower-cased whitespace-separated words matched exactly. ok is
// false when no sentiment word occurs. The score is the net count per word,
// scaled by 10, clamped to [-1,1] and rounded to two decimals.
func LexiconSentiment(text string) (score float64, ok bool) {
	words := strings.Fields(strings.ToLower(text))
	var pos, neg int
	for _, w := range words {
		if _, hit := positiveWords[w]; hit {
			pos++
		}
		if _, hit := negativeWords[w]; hit {
			neg++
		}
	}
	if pos+neg == 0 {
		return 0, false
	}
	raw := float64(pos-neg) / float64(len(words))
	return round2(clamp(raw*10, -1, 1)), true
}
