package models

import (
	"fmt"
	"time"
)

// UserResponse is the public representation of a [User]. It never carries
// the password or its hash.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a short machine-readable reason.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is returned by the service banner endpoint.
type StatusResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// TaskDeletedResponse builds the confirmation returned after deleting a task.
func TaskDeletedResponse(taskID int64) MessageResponse {
	return MessageResponse{Message: fmt.Sprintf("task %d deleted successfully", taskID)}
}
