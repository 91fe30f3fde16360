package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"interview-coach-go/internal/analysis"
	"interview-coach-go/internal/config"
	"interview-coach-go/internal/enrichment"
	"interview-coach-go/internal/logger"
	"interview-coach-go/internal/observe"
	"interview-coach-go/internal/processor"
	"interview-coach-go/internal/transcription"
)

func main() {
	log := logger.New()
	log.WithField("service", "interview-coach-go").Info("starting service")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	mp, err := observe.InitProvider()
	if err != nil {
		log.WithError(err).Fatal("failed to init metrics provider")
	}
	metrics := observe.DefaultMetrics()

	enr, err := enrichment.New(cfg.Enrichment)
	switch {
	case errors.Is(err, enrichment.ErrNoCredentials):
		log.WithField("provider", cfg.Enrichment.Provider).Warn("enrichment disabled: no credentials, scoring on baseline")
		enr = nil
	case err != nil:
		log.WithError(err).Fatal("failed to build enricher")
	}

	proc := processor.New(
		processor.WithExtractor(analysis.NewExtractor(analysis.NewLexicon(cfg.Fillers))),
		processor.WithEnricher(enr),
		processor.WithTimeout(cfg.Enrichment.Timeout),
		processor.WithLogger(log.Component("processor")),
		processor.WithMetrics(metrics),
		processor.WithFetcher(transcription.NewClient(log.Component("transcription"))),
	)
	log.WithField("enrichment", proc.EnricherName()).WithField("fillers", len(cfg.Fillers)).Info("processor ready")

	s := &server{proc: proc, log: log, batchConcurrency: cfg.BatchConcurrency}

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.routes(metrics),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("addr", addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server terminated")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown")
	}
	if err := mp.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("metrics shutdown")
	}
}
