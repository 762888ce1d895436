package controller

import (
	"net/http"
	"strconv"
	"time"
	"urljournal/pkg/metrics"
)

// WithMetrics returns a middleware observing the latency of every request in
// metrics.HTTPRequestDuration.
func WithMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		metrics.HTTPRequestDuration.
			WithLabelValues(r.Method, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}
