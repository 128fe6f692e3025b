package http

import (
	"net/http"

	"github.com/MKhiriev/go-task-manager/internal/utils"
)

const traceIDHeader = "X-Trace-ID"

// withTraceID attaches a child logger carrying trace_id to the request
// context. The id is taken from X-Trace-ID or generated, and echoed back in
// the response.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = utils.NewTraceID()
		}

		l := h.logger.With().Str("trace_id", traceID).Logger()
		w.Header().Set(traceIDHeader, traceID)

		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}
