package observe

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"interview-coach-go/internal/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request duration and logs completion. The request id
// (incoming X-Request-ID or a new uuid) is echoed on the response and
// forwarded to the handler in the request header.
func Middleware(m *Metrics, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := logger.RequestID(r)
			r.Header.Set(logger.RequestIDHeader, reqID)
			w.Header().Set(logger.RequestIDHeader, reqID)

			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			m.HTTPRequestDuration.Record(r.Context(), duration.Seconds(),
				metric.WithAttributes(
					attribute.String("method", r.Method),
					attribute.String("path", r.URL.Path),
					attribute.String("status", strconv.Itoa(rec.statusCode)),
				),
			)
			log.WithRequest(r).WithFields(logrus.Fields{
				"status":      rec.statusCode,
				"duration_ms": duration.Milliseconds(),
			}).Info("request completed")
		})
	}
}
