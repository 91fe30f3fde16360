// Package analysis is the transcript-scoring core: a heuristic extractor that
// turns raw text and a duration into objective metrics, and a scoring engine
// that turns those metrics (plus optional enrichment overrides) into a
// weighted 0-100 score with suggestions.
//
// Everything here is pure and safe for concurrent use. Nothing logs, reads
// the environment or performs I/O.
package analysis

import (
	"regexp"
	"strings"
)

// DefaultFillers is the filler lexicon used when no other set is configured.
var DefaultFillers = []string{
	"um", "uh", "like", "you know", "so", "actually", "basically", "right",
	"i mean", "literally", "just", "really", "very", "kind of", "sort of",
}

type filler struct {
	phrase string
	re     *regexp.Regexp
}

// Lexicon is a fixed, ordered set of filler phrases with precompiled
// whole-word matchers.
type Lexicon struct {
	fillers []filler
}

// NewLexicon builds a Lexicon from phrases. Phrases are lower-cased and their
// inner whitespace collapsed; blanks and duplicates are dropped, order kept.
func NewLexicon(phrases []string) *Lexicon {
	l := &Lexicon{}
	seen := map[string]bool{}
	for _, p := range phrases {
		words := strings.Fields(strings.ToLower(p))
		if len(words) == 0 {
			continue
		}
		phrase := strings.Join(words, " ")
		if seen[phrase] {
			continue
		}
		seen[phrase] = true

		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = regexp.QuoteMeta(w)
		}
		// multi-word phrases only match as adjacent words
		re := regexp.MustCompile(`(?i)\b` + strings.Join(quoted, `\s+`) + `\b`)
		l.fillers = append(l.fillers, filler{phrase: phrase, re: re})
	}
	return l
}

// Phrases returns the normalized phrases in lexicon order.
func (l *Lexicon) Phrases() []string {
	out := make([]string, len(l.fillers))
	for i, f := range l.fillers {
		out[i] = f.phrase
	}
	return out
}

// count returns the number of non-overlapping matches of each phrase in text.
func (l *Lexicon) count(text string) []int {
	counts := make([]int, len(l.fillers))
	for i, f := range l.fillers {
		counts[i] = len(f.re.FindAllStringIndex(text, -1))
	}
	return counts
}
