package aggregator

import (
	"math"
	"sort"

	"interview-coach-go/internal/types"
)

// Breakdown holds the mean of each sub-score.
type Breakdown struct {
	WPM        float64 `json:"wpmScore"`
	Filler     float64 `json:"fillerScore"`
	Vocab      float64 `json:"vocabScore"`
	Clarity    float64 `json:"clarityScore"`
	Confidence float64 `json:"confidenceScore"`
}

// QuestionStat summarizes the sessions answering one question.
type QuestionStat struct {
	Question    string  `json:"question"`
	Sessions    int     `json:"sessions"`
	MeanOverall float64 `json:"meanOverall"`
}

// Summary is the aggregate view of a scored batch.
type Summary struct {
	Sessions        int               `json:"sessions"`
	Scored          int               `json:"scored"`
	Failed          int               `json:"failed"`
	MeanOverall     float64           `json:"meanOverall"`
	MinOverall      int               `json:"minOverall"`
	MaxOverall      int               `json:"maxOverall"`
	MeanWPM         float64           `json:"meanWordsPerMinute"`
	MeanBreakdown   Breakdown         `json:"meanBreakdown"`
	SentimentCounts map[string]int    `json:"sentimentCounts"`
	TopFillers      []types.WordCount `json:"topFillers"`
	ByQuestion      []QuestionStat    `json:"byQuestion"`
}

const maxTopFillers = 5

// Aggregate summarizes results. Failed sessions count toward Sessions and
// Failed only. Means are rounded to one decimal.
func Aggregate(results []types.SessionResult) Summary {
	s := Summary{
		Sessions:        len(results),
		SentimentCounts: map[string]int{},
		TopFillers:      []types.WordCount{},
		ByQuestion:      []QuestionStat{},
	}

	var overall, wpm float64
	var b Breakdown
	fillers := map[string]int{}
	var fillerOrder []string
	type qacc struct {
		n   int
		sum float64
	}
	questions := map[string]*qacc{}
	var questionOrder []string

	for _, r := range results {
		if r.Result == nil {
			s.Failed++
			continue
		}
		res := r.Result
		if s.Scored == 0 || res.OverallScore < s.MinOverall {
			s.MinOverall = res.OverallScore
		}
		if s.Scored == 0 || res.OverallScore > s.MaxOverall {
			s.MaxOverall = res.OverallScore
		}
		s.Scored++

		overall += float64(res.OverallScore)
		wpm += float64(res.WordsPerMinute)
		b.WPM += float64(res.ScoringBreakdown.WPMScore)
		b.Filler += float64(res.ScoringBreakdown.FillerScore)
		b.Vocab += float64(res.ScoringBreakdown.VocabScore)
		b.Clarity += float64(res.ScoringBreakdown.ClarityScore)
		b.Confidence += float64(res.ScoringBreakdown.ConfidenceScore)
		s.SentimentCounts[res.SentimentLabel]++

		for _, fc := range res.FillerCounts {
			if fc.Count == 0 {
				continue
			}
			if _, ok := fillers[fc.Word]; !ok {
				fillerOrder = append(fillerOrder, fc.Word)
			}
			fillers[fc.Word] += fc.Count
		}

		q := r.Session.Question
		if q == "" {
			continue
		}
		acc, ok := questions[q]
		if !ok {
			acc = &qacc{}
			questions[q] = acc
			questionOrder = append(questionOrder, q)
		}
		acc.n++
		acc.sum += float64(res.OverallScore)
	}

	if s.Scored == 0 {
		return s
	}
	n := float64(s.Scored)
	s.MeanOverall = round1(overall / n)
	s.MeanWPM = round1(wpm / n)
	s.MeanBreakdown = Breakdown{
		WPM:        round1(b.WPM / n),
		Filler:     round1(b.Filler / n),
		Vocab:      round1(b.Vocab / n),
		Clarity:    round1(b.Clarity / n),
		Confidence: round1(b.Confidence / n),
	}

	for _, w := range fillerOrder {
		s.TopFillers = append(s.TopFillers, types.WordCount{Word: w, Count: fillers[w]})
	}
	sort.SliceStable(s.TopFillers, func(i, j int) bool { return s.TopFillers[i].Count > s.TopFillers[j].Count })
	if len(s.TopFillers) > maxTopFillers {
		s.TopFillers = s.TopFillers[:maxTopFillers]
	}

	for _, q := range questionOrder {
		acc := questions[q]
		s.ByQuestion = append(s.ByQuestion, QuestionStat{
			Question:    q,
			Sessions:    acc.n,
			MeanOverall: round1(acc.sum / float64(acc.n)),
		})
	}
	return s
}

func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
