package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"interview-coach-go/internal/actionable"
	"interview-coach-go/internal/aggregator"
	"interview-coach-go/internal/dataset"
	"interview-coach-go/internal/logger"
	"interview-coach-go/internal/observe"
	"interview-coach-go/internal/processor"
	"interview-coach-go/internal/types"
)

const (
	maxAnalyzeBody = 1 << 20
	maxUpload      = 32 << 20
	xlsxType       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type server struct {
	proc             *processor.Processor
	log              *logger.Logger
	batchConcurrency int
}

// analyzeResponse is the scored result plus its feedback cards.
type analyzeResponse struct {
	types.ScoredResult
	Feedback []actionable.Card `json:"feedback"`
}

func (s *server) routes(m *observe.Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	})
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /batch", s.handleBatch)
	mux.Handle("GET /metrics", promhttp.Handler())
	return observe.Middleware(m, s.log)(mux)
}

func (s *server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "analyze")

	var req types.AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAnalyzeBody)).Decode(&req); err != nil {
		reqLog.WithError(err).Warn("invalid request body")
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.proc.AnalyzeRequest(r.Context(), req)
	switch {
	case errors.Is(err, processor.ErrNoTranscript):
		writeError(w, http.StatusBadRequest, "transcript required")
		return
	case errors.Is(err, processor.ErrFetch):
		reqLog.WithError(err).WithField("transcript_url", req.TranscriptURL).Warn("transcript fetch failed")
		writeError(w, http.StatusBadGateway, "could not fetch transcript_url")
		return
	case err != nil:
		reqLog.WithError(err).Error("analyze failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	reqLog.WithField("overall", res.OverallScore).WithField("words", res.TotalWords).Info("transcript scored")
	writeJSON(w, http.StatusOK, analyzeResponse{ScoredResult: res, Feedback: actionable.Generate(res)})
}

func (s *server) handleBatch(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "batch")

	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field \"file\" required")
		return
	}
	defer file.Close()

	sessions, err := dataset.Read(file)
	if err != nil {
		reqLog.WithError(err).Warn("unreadable workbook")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results := s.proc.AnalyzeBatch(r.Context(), sessions, s.batchConcurrency)
	sum := aggregator.Aggregate(results)
	reqLog.WithField("sessions", sum.Sessions).WithField("failed", sum.Failed).Info("batch scored")

	w.Header().Set("Content-Type", xlsxType)
	w.Header().Set("Content-Disposition", `attachment; filename="report.xlsx"`)
	if err := dataset.WriteReport(w, results, sum); err != nil {
		reqLog.WithError(err).Error("failed to write report")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
