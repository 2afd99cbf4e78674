package middleware

import (
	"context"
	"net/http"
	"time"
)

// MetricsFlusher publishes buffered metrics
type MetricsFlusher interface {
	Flush(ctx context.Context)
}

// FlushMetrics publishes buffered metrics after every request, so a Lambda
// invocation never leaves samples behind when the container is frozen.
func FlushMetrics(flusher MetricsFlusher) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)

			ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 2*time.Second)
			defer cancel()
			flusher.Flush(ctx)
		})
	}
}
