package observe

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"interview-coach-go/internal/logger"
)

// newTestMetrics returns a Metrics instance backed by a ManualReader for
// programmatic metric inspection.
func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestRecordAnalysis(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordAnalysis(ctx, OutcomeBaseline, 61)
	m.RecordAnalysis(ctx, OutcomeBaseline, 70)
	m.RecordAnalysis(ctx, OutcomeFallback, 40)

	rm := collect(t, reader)
	got := findMetric(rm, "coach.analyses")
	if got == nil {
		t.Fatal("coach.analyses not found")
	}
	sum, ok := got.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("unexpected data type %T", got.Data)
	}
	counts := map[string]int64{}
	for _, dp := range sum.DataPoints {
		v, _ := dp.Attributes.Value(attribute.Key("enrichment"))
		counts[v.AsString()] = dp.Value
	}
	if counts[OutcomeBaseline] != 2 || counts[OutcomeFallback] != 1 {
		t.Errorf("counts = %v", counts)
	}

	hist := findMetric(rm, "coach.overall_score")
	if hist == nil {
		t.Fatal("coach.overall_score not found")
	}
	h, ok := hist.Data.(metricdata.Histogram[int64])
	if !ok {
		t.Fatalf("unexpected data type %T", hist.Data)
	}
	if len(h.DataPoints) != 1 || h.DataPoints[0].Count != 3 || h.DataPoints[0].Sum != 171 {
		t.Errorf("score histogram = %+v", h.DataPoints)
	}
}

func TestRecordEnrichment(t *testing.T) {
	m, reader := newTestMetrics(t)
	m.RecordEnrichment(context.Background(), "openai", "timeout", 1500*time.Millisecond)

	rm := collect(t, reader)
	got := findMetric(rm, "coach.enrichment.duration")
	if got == nil {
		t.Fatal("coach.enrichment.duration not found")
	}
	h := got.Data.(metricdata.Histogram[float64])
	if len(h.DataPoints) != 1 {
		t.Fatalf("data points = %d", len(h.DataPoints))
	}
	dp := h.DataPoints[0]
	if dp.Sum != 1.5 {
		t.Errorf("sum = %v, want 1.5", dp.Sum)
	}
	if v, _ := dp.Attributes.Value("status"); v.AsString() != "timeout" {
		t.Errorf("status = %q", v.AsString())
	}
}

func TestMiddleware(t *testing.T) {
	m, reader := newTestMetrics(t)
	var buf bytes.Buffer
	log := logger.NewWithOutput(&buf)

	var seen string
	h := Middleware(m, log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(logger.RequestIDHeader)
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	req.Header.Set(logger.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("code = %d", rec.Code)
	}
	if seen != "abc-123" || rec.Header().Get(logger.RequestIDHeader) != "abc-123" {
		t.Errorf("request id not propagated: handler=%q response=%q", seen, rec.Header().Get(logger.RequestIDHeader))
	}
	if !strings.Contains(buf.String(), "request completed") {
		t.Errorf("log output missing completion line: %s", buf.String())
	}

	rm := collect(t, reader)
	got := findMetric(rm, "coach.http.request.duration")
	if got == nil {
		t.Fatal("coach.http.request.duration not found")
	}
	dp := got.Data.(metricdata.Histogram[float64]).DataPoints[0]
	if v, _ := dp.Attributes.Value("status"); v.AsString() != "418" {
		t.Errorf("status attr = %q", v.AsString())
	}
	if v, _ := dp.Attributes.Value("path"); v.AsString() != "/analyze" {
		t.Errorf("path attr = %q", v.AsString())
	}
}

func TestMiddleware_GeneratesRequestID(t *testing.T) {
	m, _ := newTestMetrics(t)
	log := logger.NewWithOutput(&bytes.Buffer{})
	h := Middleware(m, log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if id := rec.Header().Get(logger.RequestIDHeader); len(id) != 36 {
		t.Errorf("generated request id = %q", id)
	}
}
