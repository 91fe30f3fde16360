package types

// WordCount pairs a token or phrase with its occurrence count.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TranscriptMetrics holds the objective metrics derived from a transcript and
// its duration. Values are final once computed.
type TranscriptMetrics struct {
	CleanedText           string      `json:"transcript"`
	TotalWords            int         `json:"totalWords"`
	UniqueWordCount       int         `json:"uniqueWords"`
	DurationSeconds       float64     `json:"duration"`
	WordsPerMinute        int         `json:"wordsPerMinute"`
	FillerCounts          []WordCount `json:"fillerCounts"` // every lexicon phrase, lexicon order
	TotalFillerCount      int         `json:"totalFillerCount"`
	VocabularyRichness    int         `json:"vocabularyRichness"`
	SentenceCount         int         `json:"sentenceCount"`
	AverageSentenceLength float64     `json:"averageSentenceLength"`
	WordRepetitions       []WordCount `json:"wordRepetitions"`
}

// FillerCount returns the count recorded for phrase, or 0 when the phrase is
// not part of the lexicon.
func (m TranscriptMetrics) FillerCount(phrase string) int {
	for _, fc := range m.FillerCounts {
		if fc.Word == phrase {
			return fc.Count
		}
	}
	return 0
}

// FillerWords is the display view of FillerCounts: phrases heard at least once.
func (m TranscriptMetrics) FillerWords() []WordCount {
	out := []WordCount{}
	for _, fc := range m.FillerCounts {
		if fc.Count > 0 {
			out = append(out, fc)
		}
	}
	return out
}

// Enrichment carries the optional overrides produced by an enrichment
// provider. A nil field means "not supplied".
type Enrichment struct {
	SentimentScore  *float64 `json:"sentimentScore,omitempty"`
	SentimentLabel  *string  `json:"sentimentLabel,omitempty"`
	ClarityScore    *float64 `json:"clarityScore,omitempty"`
	ConfidenceScore *float64 `json:"confidenceScore,omitempty"`
	Suggestions     []string `json:"suggestions,omitempty"`
	Tone            *string  `json:"tone,omitempty"`
}

// Empty reports whether no override is present.
func (e *Enrichment) Empty() bool {
	return e == nil || (e.SentimentScore == nil && e.SentimentLabel == nil &&
		e.ClarityScore == nil && e.ConfidenceScore == nil &&
		e.Suggestions == nil && e.Tone == nil)
}
