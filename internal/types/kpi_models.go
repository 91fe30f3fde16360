// internal/types/kpi_models.go
package types

import "encoding/json"

// --------------------------------------------
// Request accepted by /analyze
// --------------------------------------------
type AnalyzeRequest struct {
	Transcript    string   `json:"transcript"`
	Duration      *float64 `json:"duration"`
	TranscriptURL string   `json:"transcript_url,omitempty"`
}

// UnmarshalJSON decodes each field on its own. A field of the wrong JSON
// type is treated as absent, so a non-numeric duration falls back to the
// estimate instead of rejecting the request.
func (r *AnalyzeRequest) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = AnalyzeRequest{}
	if s, ok := raw["transcript"].(string); ok {
		r.Transcript = s
	}
	if d, ok := raw["duration"].(float64); ok {
		r.Duration = &d
	}
	if s, ok := raw["transcript_url"].(string); ok {
		r.TranscriptURL = s
	}
	return nil
}

// --------------------------------------------
// Sub-scores, each an integer in [0,100]
// --------------------------------------------
type ScoringBreakdown struct {
	WPMScore        int `json:"wpmScore"`
	FillerScore     int `json:"fillerScore"`
	VocabScore      int `json:"vocabScore"`
	ClarityScore    int `json:"clarityScore"`
	ConfidenceScore int `json:"confidenceScore"`
}

// --------------------------------------------
// FINAL output of the scoring engine
// --------------------------------------------
type ScoredResult struct {
	TranscriptMetrics

	FillerWords      []WordCount      `json:"fillerWords"`
	SentimentScore   float64          `json:"sentimentScore"`
	SentimentLabel   string           `json:"sentimentLabel"`
	ClarityScore     float64          `json:"clarityScore"`    // 0..1
	ConfidenceScore  float64          `json:"confidenceScore"` // 0..1
	ScoringBreakdown ScoringBreakdown `json:"scoringBreakdown"`
	OverallScore     int              `json:"overallScore"`
	Suggestions      []string         `json:"suggestions"`
	Tone             *string          `json:"tone"`
}

// --------------------------------------------
// One row of a batch workbook
// --------------------------------------------
type Session struct {
	ID            string  `json:"id"`
	Question      string  `json:"question,omitempty"`
	Transcript    string  `json:"transcript"`
	Duration      float64 `json:"duration,omitempty"` // seconds; 0 when unknown
	TranscriptURL string  `json:"transcript_url,omitempty"`
}

// --------------------------------------------
// Batch output: the session and its score, or why it failed
// --------------------------------------------
type SessionResult struct {
	Session Session       `json:"session"`
	Result  *ScoredResult `json:"result,omitempty"`
	Error   string        `json:"error,omitempty"`
}
