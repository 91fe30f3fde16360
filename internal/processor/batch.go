package processor

import (
	"context"

	"golang.org/x/sync/errgroup"

	"interview-coach-go/internal/types"
)

// AnalyzeBatch scores sessions with at most concurrency in flight. Results
// keep the input order; a session that cannot be scored carries its error
// instead of aborting the batch.
func (p *Processor) AnalyzeBatch(ctx context.Context, sessions []types.Session, concurrency int) []types.SessionResult {
	if concurrency < 1 {
		concurrency = 1
	}
	out := make([]types.SessionResult, len(sessions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, s := range sessions {
		g.Go(func() error {
			out[i].Session = s
			req := types.AnalyzeRequest{Transcript: s.Transcript, TranscriptURL: s.TranscriptURL}
			if s.Duration > 0 {
				d := s.Duration
				req.Duration = &d
			}
			res, err := p.AnalyzeRequest(gctx, req)
			if err != nil {
				p.log.WithField("session", s.ID).WithError(err).Warn("session not scored")
				out[i].Error = err.Error()
				return nil
			}
			out[i].Result = &res
			return nil
		})
	}
	_ = g.Wait()
	return out
}
