package processor

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"go.opentelemetry.io/otel/metric/noop"

	"interview-coach-go/internal/analysis"
	"interview-coach-go/internal/enrichment"
	"interview-coach-go/internal/observe"
	"interview-coach-go/internal/transcription"
	"interview-coach-go/internal/types"
)

const sample = "This is a test transcript to exercise heuristics. I said um and like a couple times."

func testMetrics(t *testing.T) *observe.Metrics {
	t.Helper()
	m, err := observe.NewMetrics(noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m
}

func newTestProcessor(t *testing.T, opts ...Option) (*Processor, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	base := []Option{WithMetrics(testMetrics(t)), WithLogger(logrus.NewEntry(log))}
	return New(append(base, opts...)...), hook
}

func baseline() types.ScoredResult {
	return analysis.Score(analysis.Baseline(analysis.Extract(sample, 30)))
}

// slowEnricher blocks until its context ends.
type slowEnricher struct{}

func (slowEnricher) Name() string { return "slow" }

func (slowEnricher) Enrich(ctx context.Context, _ string) (*types.Enrichment, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// nilEnricher returns neither a value nor an error.
type nilEnricher struct{}

func (nilEnricher) Name() string { return "nil" }

func (nilEnricher) Enrich(context.Context, string) (*types.Enrichment, error) { return nil, nil }

func TestAnalyze_NoEnricher(t *testing.T) {
	p, hook := newTestProcessor(t)
	got := p.Analyze(context.Background(), sample, 30)
	if !reflect.DeepEqual(got, baseline()) {
		t.Errorf("got %+v\nwant %+v", got, baseline())
	}
	if got.OverallScore != 61 || got.SentimentLabel != analysis.Neutral {
		t.Errorf("overall=%d label=%q", got.OverallScore, got.SentimentLabel)
	}
	if len(hook.Entries) != 0 {
		t.Errorf("unexpected log entries: %d", len(hook.Entries))
	}
	if p.EnricherName() != enrichment.ProviderNone {
		t.Errorf("EnricherName = %q", p.EnricherName())
	}
}

func TestAnalyze_TimeoutFallsBack(t *testing.T) {
	p, hook := newTestProcessor(t, WithEnricher(slowEnricher{}), WithTimeout(20*time.Millisecond))

	start := time.Now()
	got := p.Analyze(context.Background(), sample, 30)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Analyze took %v", elapsed)
	}
	if !reflect.DeepEqual(got, baseline()) {
		t.Errorf("timeout result differs from baseline: %+v", got)
	}
	if e := hook.LastEntry(); e == nil || e.Level != logrus.WarnLevel {
		t.Fatal("expected a warning")
	}
}

func TestAnalyze_ErrorFallsBack(t *testing.T) {
	for _, enr := range []enrichment.Enricher{
		&enrichment.Static{Err: errors.New("upstream 500")},
		nilEnricher{},
	} {
		p, hook := newTestProcessor(t, WithEnricher(enr))
		got := p.Analyze(context.Background(), sample, 30)
		if !reflect.DeepEqual(got, baseline()) {
			t.Errorf("%s: result differs from baseline", enr.Name())
		}
		if len(hook.Entries) != 1 {
			t.Errorf("%s: log entries = %d, want 1", enr.Name(), len(hook.Entries))
		}
	}
}

func TestAnalyze_CanceledContextFallsBack(t *testing.T) {
	p, _ := newTestProcessor(t, WithEnricher(slowEnricher{}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := p.Analyze(ctx, sample, 30); !reflect.DeepEqual(got, baseline()) {
		t.Errorf("canceled result differs from baseline")
	}
}

func TestAnalyze_EnrichmentApplied(t *testing.T) {
	p, hook := newTestProcessor(t, WithEnricher(enrichment.NewStatic()))
	got := p.Analyze(context.Background(), sample, 30)

	if got.SentimentScore != 0.4 || got.SentimentLabel != analysis.Positive {
		t.Errorf("sentiment = %v %q", got.SentimentScore, got.SentimentLabel)
	}
	if got.ClarityScore != 0.8 || got.ConfidenceScore != 0.7 {
		t.Errorf("clarity=%v confidence=%v", got.ClarityScore, got.ConfidenceScore)
	}
	if got.Tone == nil || *got.Tone != "composed" {
		t.Errorf("tone = %v", got.Tone)
	}
	if got.Suggestions[0] != "Structure answers as situation, action, result." {
		t.Errorf("suggestions = %v", got.Suggestions)
	}
	// Objective metrics are untouched by enrichment.
	if !reflect.DeepEqual(got.TranscriptMetrics, baseline().TranscriptMetrics) {
		t.Error("metrics changed by enrichment")
	}
	if len(hook.Entries) != 0 {
		t.Errorf("unexpected log entries: %d", len(hook.Entries))
	}
}

func TestAnalyze_LexiconUsesMetrics(t *testing.T) {
	p, hook := newTestProcessor(t, WithEnricher(enrichment.Lexicon{}))
	got := p.Analyze(context.Background(), sample, 30)

	// 2 fillers in 16 words and 8-word sentences drive clarity to 0;
	// richness 94 lifts confidence to 0.65.
	if got.ClarityScore != 0 || got.ConfidenceScore != 0.65 {
		t.Errorf("clarity=%v confidence=%v", got.ClarityScore, got.ConfidenceScore)
	}
	if got.SentimentScore != 0 || got.SentimentLabel != analysis.Neutral {
		t.Errorf("sentiment = %v %q", got.SentimentScore, got.SentimentLabel)
	}
	if got.OverallScore != 45 {
		t.Errorf("overall = %d, want 45", got.OverallScore)
	}
	if len(hook.Entries) != 0 {
		t.Errorf("unexpected log entries: %d", len(hook.Entries))
	}
}

func TestAnalyze_EmptyTranscriptSkipsEnrichment(t *testing.T) {
	st := &enrichment.Static{Err: errors.New("should not be called")}
	p, hook := newTestProcessor(t, WithEnricher(st))
	got := p.Analyze(context.Background(), "", 0)
	if got.TotalWords != 0 || got.VocabularyRichness != 0 {
		t.Errorf("got %+v", got.TranscriptMetrics)
	}
	if len(hook.Entries) != 0 {
		t.Error("enricher called for empty transcript")
	}
}

func TestAnalyze_CustomLexicon(t *testing.T) {
	ex := analysis.NewExtractor(analysis.NewLexicon([]string{"basically"}))
	p, _ := newTestProcessor(t, WithExtractor(ex))
	got := p.Analyze(context.Background(), "Basically it works. Um, basically.", 10)
	if got.TotalFillerCount != 2 || len(got.FillerCounts) != 1 {
		t.Errorf("fillers = %+v", got.FillerCounts)
	}
}

type stubFetcher struct {
	res   transcription.Result
	err   error
	calls int
}

func (s *stubFetcher) Fetch(context.Context, string) (transcription.Result, error) {
	s.calls++
	return s.res, s.err
}

func TestAnalyzeRequest(t *testing.T) {
	dur := 30.0
	f := &stubFetcher{res: transcription.Result{Transcript: sample, Duration: 30}}
	p, _ := newTestProcessor(t, WithFetcher(f))
	ctx := context.Background()

	got, err := p.AnalyzeRequest(ctx, types.AnalyzeRequest{Transcript: sample, Duration: &dur})
	if err != nil || got.OverallScore != 61 {
		t.Errorf("inline: overall=%d err=%v", got.OverallScore, err)
	}
	if f.calls != 0 {
		t.Error("fetcher used for inline transcript")
	}

	got, err = p.AnalyzeRequest(ctx, types.AnalyzeRequest{TranscriptURL: "http://x/t.txt"})
	if err != nil || got.OverallScore != 61 || got.DurationSeconds != 30 {
		t.Errorf("url: overall=%d duration=%v err=%v", got.OverallScore, got.DurationSeconds, err)
	}

	if _, err := p.AnalyzeRequest(ctx, types.AnalyzeRequest{}); !errors.Is(err, ErrNoTranscript) {
		t.Errorf("missing: err = %v", err)
	}

	blank, err := p.AnalyzeRequest(ctx, types.AnalyzeRequest{Transcript: " \n\t "})
	if err != nil {
		t.Fatalf("whitespace-only transcript rejected: %v", err)
	}
	if blank.TotalWords != 0 || blank.DurationSeconds != 1 || blank.CleanedText != "" {
		t.Errorf("whitespace-only metrics = %+v", blank.TranscriptMetrics)
	}
	if f.calls != 1 {
		t.Errorf("fetcher calls = %d, whitespace text should not trigger a fetch", f.calls)
	}

	f.err = errors.New("404")
	if _, err := p.AnalyzeRequest(ctx, types.AnalyzeRequest{TranscriptURL: "http://x/t.txt"}); !errors.Is(err, ErrFetch) {
		t.Errorf("fetch failure: err = %v", err)
	}
}

// countingEnricher tracks how many calls run at once.
type countingEnricher struct {
	inFlight, peak atomic.Int32
}

func (c *countingEnricher) Name() string { return "counting" }

func (c *countingEnricher) Enrich(ctx context.Context, _ string) (*types.Enrichment, error) {
	n := c.inFlight.Add(1)
	defer c.inFlight.Add(-1)
	for {
		p := c.peak.Load()
		if n <= p || c.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	return &types.Enrichment{}, nil
}

func TestAnalyzeBatch(t *testing.T) {
	enr := &countingEnricher{}
	p, _ := newTestProcessor(t, WithEnricher(enr))

	sessions := []types.Session{
		{ID: "a", Transcript: sample, Duration: 30},
		{ID: "b", Transcript: ""},
		{ID: "c", Transcript: "Short answer."},
		{ID: "d", Transcript: sample, Duration: 30},
		{ID: "e", Transcript: sample},
	}
	got := p.AnalyzeBatch(context.Background(), sessions, 2)

	if len(got) != len(sessions) {
		t.Fatalf("results = %d", len(got))
	}
	for i, r := range got {
		if r.Session.ID != sessions[i].ID {
			t.Errorf("result %d is session %q, want %q", i, r.Session.ID, sessions[i].ID)
		}
	}
	if got[1].Result != nil || got[1].Error != ErrNoTranscript.Error() {
		t.Errorf("empty session = %+v", got[1])
	}
	if got[0].Result == nil || got[0].Result.OverallScore != 61 {
		t.Errorf("session a = %+v", got[0])
	}
	if peak := enr.peak.Load(); peak > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", peak)
	}
}
