package middleware

import (
	"net/http"

	"social-backend/pkg/observability"

	"github.com/go-chi/chi/v5/middleware"
)

// Trace wraps each request in an X-Ray segment. A disabled tracer passes
// requests through untouched.
func Trace(tracer *observability.Tracer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, seg := tracer.StartSegment(r.Context(), "http")
			if seg == nil {
				next.ServeHTTP(w, r)
				return
			}

			tracer.AddAnnotation(ctx, "path", r.URL.Path)
			tracer.AddMetadata(ctx, "request_id", middleware.GetReqID(ctx))

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			tracer.AddMetadata(ctx, "status", ww.Status())
			seg.Close(nil)
		})
	}
}
