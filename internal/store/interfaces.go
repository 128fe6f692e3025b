package store

import (
	"context"

	"github.com/MKhiriev/go-task-manager/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists and looks up user accounts.
type UserRepository interface {
	// CreateUser inserts user and returns the stored record with its
	// generated id.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername returns the user with the given username or
	// [ErrNoUserWasFound].
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// FindUserByEmail returns the user with the given email or
	// [ErrNoUserWasFound].
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// TaskRepository persists tasks. Every read, update and delete is filtered
// by the owning user id.
type TaskRepository interface {
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	ListTasks(ctx context.Context, userID int64) ([]models.Task, error)
	GetTask(ctx context.Context, userID, taskID int64) (models.Task, error)
	UpdateTask(ctx context.Context, task models.Task) (models.Task, error)
	DeleteTask(ctx context.Context, userID, taskID int64) error
}

// Transactor runs fn inside a database transaction. Repositories called with
// the context passed to fn take part in that transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
