package analysis

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"interview-coach-go/internal/types"
)

const (
	// estimatedWPM is used to derive a duration when none is supplied.
	estimatedWPM   = 150
	maxRepetitions = 10
)

var (
	lineBreaks     = regexp.MustCompile(`[\n\r]+`)
	sentenceBreaks = regexp.MustCompile(`[.!?]+`)
)

// Extractor derives TranscriptMetrics using a particular filler lexicon.
type Extractor struct {
	lexicon *Lexicon
}

// NewExtractor returns an Extractor for lex. A nil lexicon selects DefaultFillers.
func NewExtractor(lex *Lexicon) *Extractor {
	if lex == nil {
		lex = defaultLexicon
	}
	return &Extractor{lexicon: lex}
}

var (
	defaultLexicon   = NewLexicon(DefaultFillers)
	defaultExtractor = NewExtractor(defaultLexicon)
)

// Extract computes metrics with the default filler lexicon.
func Extract(transcript string, durationSeconds float64) types.TranscriptMetrics {
	return defaultExtractor.Extract(transcript, durationSeconds)
}

// Extract computes the objective metrics of transcript. A durationSeconds that
// is not a positive finite number is replaced by an estimate at 150 WPM,
// never less than one second. Degenerate input yields zero-valued metrics.
func (e *Extractor) Extract(transcript string, durationSeconds float64) types.TranscriptMetrics {
	clean := strings.TrimSpace(lineBreaks.ReplaceAllString(transcript, " "))
	words := strings.Fields(clean)
	total := len(words)

	dur := durationSeconds
	if !(dur > 0) || math.IsInf(dur, 0) {
		dur = math.Max(1, roundHalfUp(float64(total)/estimatedWPM*60))
	}

	m := types.TranscriptMetrics{
		CleanedText:     clean,
		TotalWords:      total,
		DurationSeconds: dur,
		WordsPerMinute:  int(roundHalfUp(float64(total) / dur * 60)),
		WordRepetitions: []types.WordCount{},
	}

	counts := e.lexicon.count(clean)
	m.FillerCounts = make([]types.WordCount, len(counts))
	for i, f := range e.lexicon.fillers {
		m.FillerCounts[i] = types.WordCount{Word: f.phrase, Count: counts[i]}
		m.TotalFillerCount += counts[i]
	}

	// frequency table in first-seen order; keys double as the unique set
	freq := map[string]int{}
	var order []string
	for _, w := range words {
		key := normalizeToken(w)
		if key == "" {
			continue
		}
		if _, ok := freq[key]; !ok {
			order = append(order, key)
		}
		freq[key]++
	}
	m.UniqueWordCount = len(order)
	if total > 0 {
		m.VocabularyRichness = int(roundHalfUp(float64(m.UniqueWordCount) / float64(total) * 100))
	}

	reps := make([]types.WordCount, len(order))
	for i, k := range order {
		reps[i] = types.WordCount{Word: k, Count: freq[k]}
	}
	sort.SliceStable(reps, func(i, j int) bool { return reps[i].Count > reps[j].Count })
	if len(reps) > maxRepetitions {
		reps = reps[:maxRepetitions]
	}
	m.WordRepetitions = append(m.WordRepetitions, reps...)

	for _, s := range sentenceBreaks.Split(clean, -1) {
		if strings.TrimSpace(s) != "" {
			m.SentenceCount++
		}
	}
	if m.SentenceCount > 0 {
		m.AverageSentenceLength = round1(float64(total) / float64(m.SentenceCount))
	} else {
		m.AverageSentenceLength = float64(total)
	}

	return m
}

// normalizeToken lower-cases w and keeps only ASCII letters and apostrophes.
func normalizeToken(w string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(w) {
		if (r >= 'a' && r <= 'z') || r == '\'' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
