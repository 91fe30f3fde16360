package enrichment

import (
	"encoding/json"
	"fmt"
	"strings"

	"interview-coach-go/internal/types"
)

// BuildPrompt asks the model for the enrichment keys and nothing else.
func BuildPrompt(transcript string) string {
	prompt := `You analyze spoken answers from interview practice sessions.

Read the transcript below and return ONLY a JSON object with these keys:
  "sentimentScore":  number between -1 and 1
  "sentimentLabel":  one of "Very Positive", "Positive", "Neutral", "Slightly Negative", "Negative", "Very Negative"
  "tone":            short phrase describing the speaker's tone
  "suggestions":     array of short improvement tips
  "clarityScore":    number between 0 and 1
  "confidenceScore": number between 0 and 1

Do not wrap the JSON in backticks and do not add commentary.

TRANSCRIPT:
%s
`
	return fmt.Sprintf(prompt, transcript)
}

// ParseEnrichment reads the first JSON object in content, starting at the
// first '{' and ignoring anything after the object. Each key is checked on
// its own: a missing or mistyped key leaves the corresponding field nil
// rather than failing the whole response.
func ParseEnrichment(content string) (*types.Enrichment, error) {
	start := strings.Index(content, "{")
	if start == -1 {
		return nil, ErrNoJSON
	}
	var raw map[string]any
	if err := json.NewDecoder(strings.NewReader(content[start:])).Decode(&raw); err != nil {
		return nil, fmt.Errorf("enrichment: decode: %w", err)
	}
	return fromMap(raw), nil
}

func fromMap(raw map[string]any) *types.Enrichment {
	e := &types.Enrichment{
		SentimentScore:  number(raw["sentimentScore"]),
		SentimentLabel:  text(raw["sentimentLabel"]),
		ClarityScore:    number(raw["clarityScore"]),
		ConfidenceScore: number(raw["confidenceScore"]),
		Tone:            text(raw["tone"]),
	}
	e.Suggestions = stringList(raw["suggestions"])
	if e.Suggestions == nil {
		e.Suggestions = stringList(raw["tips"])
	}
	return e
}

func number(v any) *float64 {
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}

func text(v any) *string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}
	s = strings.TrimSpace(s)
	return &s
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, it := range items {
		if s := text(it); s != nil {
			out = append(out, *s)
		}
	}
	return out
}
