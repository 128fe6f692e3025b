package http

import (
	"net/http"

	"github.com/MKhiriev/go-task-manager/internal/utils"
)

func (h *Handler) getServerStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.Status(r.Context()), http.StatusOK)
}
