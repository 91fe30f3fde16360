package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"interview-coach-go/internal/actionable"
	"interview-coach-go/internal/aggregator"
	"interview-coach-go/internal/analysis"
	"interview-coach-go/internal/config"
	"interview-coach-go/internal/dataset"
	"interview-coach-go/internal/enrichment"
	"interview-coach-go/internal/logger"
	"interview-coach-go/internal/processor"
	"interview-coach-go/internal/transcription"
	"interview-coach-go/internal/types"
)

func newApp(log *logger.Logger) *cli.App {
	return &cli.App{
		Name:  "coach",
		Usage: "score interview answer transcripts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "provider", Usage: "enrichment provider (none, openai, lexicon, mock); overrides config"},
		},
		Commands: []*cli.Command{
			{
				Name:      "score",
				Usage:     "score one transcript read from a file or stdin",
				ArgsUsage: "[file|-]",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "duration", Aliases: []string{"d"}, Usage: "spoken duration in seconds; estimated when omitted"},
					&cli.BoolFlag{Name: "feedback", Aliases: []string{"f"}, Usage: "include per-dimension feedback cards"},
				},
				Action: func(c *cli.Context) error { return scoreAction(c, log) },
			},
			{
				Name:      "batch",
				Usage:     "score every row of an xlsx workbook and write a report",
				ArgsUsage: "<sessions.xlsx>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "report.xlsx", Usage: "report path"},
					&cli.IntFlag{Name: "concurrency", Aliases: []string{"c"}, Usage: "sessions scored at once; defaults to BATCH_CONCURRENCY"},
				},
				Action: func(c *cli.Context) error { return batchAction(c, log) },
			},
		},
	}
}

// buildProcessor wires the processor from config, honoring the global --provider flag.
func buildProcessor(c *cli.Context, log *logger.Logger) (*processor.Processor, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	if p := c.String("provider"); p != "" {
		cfg.Enrichment.Provider = p
	}
	enr, err := enrichment.New(cfg.Enrichment)
	if errors.Is(err, enrichment.ErrNoCredentials) {
		log.WithField("provider", cfg.Enrichment.Provider).Warn("enrichment disabled: no credentials, scoring on baseline")
		enr, err = nil, nil
	}
	if err != nil {
		return nil, cfg, err
	}
	proc := processor.New(
		processor.WithExtractor(analysis.NewExtractor(analysis.NewLexicon(cfg.Fillers))),
		processor.WithEnricher(enr),
		processor.WithTimeout(cfg.Enrichment.Timeout),
		processor.WithLogger(log.Component("processor")),
		processor.WithFetcher(transcription.NewClient(log.Component("transcription"))),
	)
	return proc, cfg, nil
}

func scoreAction(c *cli.Context, log *logger.Logger) error {
	proc, _, err := buildProcessor(c, log)
	if err != nil {
		return err
	}

	var r io.Reader = c.App.Reader
	if name := c.Args().First(); name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("open transcript: %w", err)
		}
		defer f.Close()
		r = f
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	req := types.AnalyzeRequest{Transcript: string(text)}
	if c.IsSet("duration") {
		d := c.Float64("duration")
		req.Duration = &d
	}
	res, err := proc.AnalyzeRequest(c.Context, req)
	if err != nil {
		return err
	}

	var out interface{} = res
	if c.Bool("feedback") {
		out = struct {
			types.ScoredResult
			Feedback []actionable.Card `json:"feedback"`
		}{res, actionable.Generate(res)}
	}
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func batchAction(c *cli.Context, log *logger.Logger) error {
	path := c.Args().First()
	if path == "" {
		return errors.New("batch: workbook path required")
	}
	proc, cfg, err := buildProcessor(c, log)
	if err != nil {
		return err
	}
	sessions, err := dataset.Load(path)
	if err != nil {
		return err
	}

	concurrency := cfg.BatchConcurrency
	if n := c.Int("concurrency"); n > 0 {
		concurrency = n
	}
	results := proc.AnalyzeBatch(c.Context, sessions, concurrency)
	sum := aggregator.Aggregate(results)

	out := c.String("out")
	if err := dataset.SaveReport(out, results, sum); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.WithField("sessions", sum.Sessions).
		WithField("failed", sum.Failed).
		WithField("mean_overall", sum.MeanOverall).
		WithField("report", out).
		Info("batch complete")
	fmt.Fprintf(c.App.Writer, "scored %d/%d sessions, mean overall %.1f -> %s\n", sum.Scored, sum.Sessions, sum.MeanOverall, out)
	return nil
}
