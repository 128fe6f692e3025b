package store

import "github.com/MKhiriev/go-task-manager/internal/logger"

// Repositories groups every repository backed by a single [DB].
type Repositories struct {
	UserRepository UserRepository
	TaskRepository TaskRepository
	Transactor     Transactor
}

// NewRepositories wires all repositories to db.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository: NewUserRepository(db, logger.Component("users")),
		TaskRepository: NewTaskRepository(db, logger.Component("tasks")),
		Transactor:     db,
	}
}
