package http

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("id", registeredUser.UserID).Msg("user registered")
	utils.WriteJSON(w, registeredUser.ToResponse(), http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	req, err := decodeLoginRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.TokenResponse{
		AccessToken: token.SignedString,
		TokenType:   models.TokenTypeBearer,
	}, http.StatusOK)
}

// decodeLoginRequest accepts a JSON body or an OAuth2 password form
// (application/x-www-form-urlencoded with username and password).
func decodeLoginRequest(r *http.Request) (models.LoginRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return models.LoginRequest{}, fmt.Errorf("%w: %w", ErrInvalidForm, err)
		}
		return models.LoginRequest{
			Username: r.PostForm.Get("username"),
			Password: r.PostForm.Get("password"),
		}, nil
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return models.LoginRequest{}, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return req, nil
}

// me returns the caller resolved by the auth middleware.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, errNoUserInContext)
		return
	}

	utils.WriteJSON(w, user.ToResponse(), http.StatusOK)
}
