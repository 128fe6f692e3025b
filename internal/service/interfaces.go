package service

import (
	"context"

	"github.com/MKhiriev/go-task-manager/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// Authorize resolves a raw bearer token to an active user. Every failure
	// is reported as ErrUnauthorized.
	Authorize(ctx context.Context, tokenString string) (models.User, error)
}

// TaskService manages the tasks of a single owner. userID always comes from
// the resolved caller.
type TaskService interface {
	CreateTask(ctx context.Context, userID int64, req models.TaskCreate) (models.Task, error)
	ListTasks(ctx context.Context, userID int64) ([]models.Task, error)
	GetTask(ctx context.Context, userID, taskID int64) (models.Task, error)
	UpdateTask(ctx context.Context, userID, taskID int64, update models.TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, userID, taskID int64) error
}

// AppInfoService describes the running API instance.
type AppInfoService interface {
	// Status returns the banner served on GET /.
	Status(ctx context.Context) models.StatusResponse
}

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// validating.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// TaskServiceWrapper defines middleware composition for TaskService.
type TaskServiceWrapper interface {
	Wrap(TaskService) TaskService
}
