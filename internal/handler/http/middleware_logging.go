package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// withLogging writes one access log entry per request. Server errors are
// logged at error level, everything else at info.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(lw, r)

		level := zerolog.InfoLevel
		if lw.status >= http.StatusInternalServerError {
			level = zerolog.ErrorLevel
		}

		event := logger.FromRequest(r).WithLevel(level).
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", lw.status).
			Int("size", lw.size).
			Dur("duration", time.Since(start))
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			event = event.Str("route", rctx.RoutePattern())
		}
		event.Send()
	})
}
