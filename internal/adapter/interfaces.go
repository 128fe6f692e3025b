// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the typed REST client of the task manager API.
//
// [ServerAdapter] hides the transport from the client application and the
// terminal UI. Non-2xx responses are mapped by mapHTTPError to the sentinel
// errors in errors.go, so callers can use [errors.Is] (e.g. [ErrNotFound]
// for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-task-manager/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the task manager API.
// Implementations own serialisation, the bearer token and error mapping.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	// Status calls GET / and returns the service banner.
	Status(ctx context.Context) (models.StatusResponse, error)

	// Register creates an account. It does not log the user in.
	Register(ctx context.Context, req models.RegisterRequest) (models.UserResponse, error)

	// Login exchanges credentials for a bearer token and stores it via
	// SetToken.
	Login(ctx context.Context, req models.LoginRequest) (models.TokenResponse, error)

	// Me returns the user the stored token belongs to.
	Me(ctx context.Context) (models.UserResponse, error)

	AddTask(ctx context.Context, req models.TaskCreate) (models.Task, error)
	ListTasks(ctx context.Context) ([]models.Task, error)
	GetTask(ctx context.Context, taskID int64) (models.Task, error)
	UpdateTask(ctx context.Context, taskID int64, update models.TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, taskID int64) error
}
