package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/internal/utils"
)

const reasonInternalServerError = "internal server error"

// errorStatusMap lists the errors that reach clients with their own reason.
// Everything else is an internal error.
var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrUnauthorized:        http.StatusUnauthorized,

	store.ErrUsernameTaken:     http.StatusBadRequest,
	store.ErrEmailTaken:        http.StatusBadRequest,
	store.ErrUserAlreadyExists: http.StatusBadRequest,
	store.ErrTaskNotFound:      http.StatusNotFound,

	ErrInvalidJSON:          http.StatusBadRequest,
	ErrInvalidForm:          http.StatusBadRequest,
	ErrInvalidTaskID:        http.StatusBadRequest,
	ErrIntegrityCheckFailed: http.StatusBadRequest,
	ErrRequestTooLarge:      http.StatusRequestEntityTooLarge,
	ErrRouteNotFound:        http.StatusNotFound,
}

// statusFromError returns the HTTP status for err and the sentinel it
// matched, or 500 and nil.
func statusFromError(err error) (int, error) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status, target
		}
	}
	return http.StatusInternalServerError, nil
}

// writeError logs err and answers with {"error": reason}. The reason is the
// matched sentinel's text, so wrapped causes never reach the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status, target := statusFromError(err)
	reason := reasonInternalServerError
	if target != nil {
		reason = target.Error()
	}

	if status == http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	utils.WriteError(w, reason, status)
}
