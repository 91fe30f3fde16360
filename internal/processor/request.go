package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"interview-coach-go/internal/transcription"
	"interview-coach-go/internal/types"
)

var (
	// ErrNoTranscript is returned when a request carries neither a transcript nor a URL.
	ErrNoTranscript = errors.New("transcript required")
	// ErrFetch wraps failures to download a transcript_url.
	ErrFetch = errors.New("transcript fetch failed")
)

// Fetcher downloads a transcript by URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (transcription.Result, error)
}

// WithFetcher enables transcript_url requests.
func WithFetcher(f Fetcher) Option {
	return func(p *Processor) { p.fetcher = f }
}

// AnalyzeRequest resolves the transcript of req, downloading it when only
// transcript_url is set, and scores it. Whitespace-only text is scored like
// any other degenerate input. An explicit duration wins over one
// reported by the transcript source.
func (p *Processor) AnalyzeRequest(ctx context.Context, req types.AnalyzeRequest) (types.ScoredResult, error) {
	text := req.Transcript
	var duration float64
	if req.Duration != nil {
		duration = *req.Duration
	}

	if text == "" {
		url := strings.TrimSpace(req.TranscriptURL)
		if url == "" || p.fetcher == nil {
			return types.ScoredResult{}, ErrNoTranscript
		}
		res, err := p.fetcher.Fetch(ctx, url)
		if err != nil {
			return types.ScoredResult{}, fmt.Errorf("%w: %v", ErrFetch, err)
		}
		text = res.Transcript
		if duration <= 0 {
			duration = res.Duration
		}
	}
	return p.Analyze(ctx, text, duration), nil
}
