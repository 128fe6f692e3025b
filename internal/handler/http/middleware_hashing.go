package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/go-task-manager/internal/utils"
)

// maxHashedBodySize caps the body withHashing buffers in memory.
const maxHashedBodySize = 1 << 20

// withHashing checks the HMAC-SHA256 of the request body against the
// HashSHA256 header. Requests without the header, and all requests when no
// hash key is configured, pass through unchanged.
func (h *Handler) withHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := r.Header.Get(utils.HashHeader)
		if h.hasher == nil || expected == "" || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}

		// read bytes from body
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxHashedBodySize))
		if err != nil {
			h.logger.Err(err).Str("func", "*Handler.withHashing").Msg("failed to read request body")
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				err = ErrRequestTooLarge
			}
			writeError(w, r, err)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		if !h.hasher.Equal(body, expected) {
			h.logger.Error().Str("func", "*Handler.withHashing").
				Str("hash from request", expected).
				Msg("hashes are not equal")
			writeError(w, r, ErrIntegrityCheckFailed)
			return
		}

		next.ServeHTTP(w, r)
	})
}
