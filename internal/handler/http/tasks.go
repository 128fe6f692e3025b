package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/models"
	"github.com/go-chi/chi/v5"
)

// errNoUserInContext means a protected handler ran without the auth
// middleware. It is reported as an internal error.
var errNoUserInContext = errors.New("no authenticated user in request context")

func (h *Handler) addTask(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, errNoUserInContext)
		return
	}

	var req models.TaskCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	task, err := h.services.TaskService.CreateTask(r.Context(), user.UserID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("task_id", task.ID).Int64("user_id", user.UserID).Msg("task created")
	utils.WriteJSON(w, task, http.StatusOK)
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, errNoUserInContext)
		return
	}

	tasks, err := h.services.TaskService.ListTasks(r.Context(), user.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	utils.WriteJSON(w, tasks, http.StatusOK)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	user, taskID, ok := h.taskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.services.TaskService.GetTask(r.Context(), user.UserID, taskID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	user, taskID, ok := h.taskRequest(w, r)
	if !ok {
		return
	}

	var update models.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	task, err := h.services.TaskService.UpdateTask(r.Context(), user.UserID, taskID, update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	user, taskID, ok := h.taskRequest(w, r)
	if !ok {
		return
	}

	if err := h.services.TaskService.DeleteTask(r.Context(), user.UserID, taskID); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("task_id", taskID).Int64("user_id", user.UserID).Msg("task deleted")
	utils.WriteJSON(w, models.TaskDeletedResponse(taskID), http.StatusOK)
}

// taskRequest resolves the caller and the {id} path parameter. It writes the
// error response itself and reports false when either is missing.
func (h *Handler) taskRequest(w http.ResponseWriter, r *http.Request) (models.User, int64, bool) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, errNoUserInContext)
		return models.User{}, 0, false
	}

	taskID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || taskID <= 0 {
		writeError(w, r, ErrInvalidTaskID)
		return models.User{}, 0, false
	}

	return user, taskID, true
}
