package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/models"
)

// taskService implements TaskService. Every operation runs inside a single
// transaction and every lookup is scoped by the owner id.
type taskService struct {
	taskRepository store.TaskRepository
	transactor     store.Transactor

	now func() time.Time

	logger *logger.Logger
}

func NewTaskService(repositories *store.Repositories, logger *logger.Logger) TaskService {
	return &taskService{
		taskRepository: repositories.TaskRepository,
		transactor:     repositories.Transactor,
		now:            now,
		logger:         logger,
	}
}

// CreateTask stores a new task for userID. Status defaults to false and
// priority to models.DefaultTaskPriority; the creation time is assigned here.
func (s *taskService) CreateTask(ctx context.Context, userID int64, req models.TaskCreate) (models.Task, error) {
	task := models.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.DefaultTaskPriority,
		CreatedAt:   s.now(),
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}

	var created models.Task
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.taskRepository.CreateTask(ctx, task)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*taskService.CreateTask").Int64("user_id", userID).Msg("error creating task")
		return models.Task{}, fmt.Errorf("error creating task: %w", err)
	}

	return created, nil
}

func (s *taskService) ListTasks(ctx context.Context, userID int64) ([]models.Task, error) {
	var tasks []models.Task
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		tasks, err = s.taskRepository.ListTasks(ctx, userID)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*taskService.ListTasks").Int64("user_id", userID).Msg("error listing tasks")
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}

	return tasks, nil
}

// GetTask returns store.ErrTaskNotFound for a task that is missing or owned
// by another user.
func (s *taskService) GetTask(ctx context.Context, userID, taskID int64) (models.Task, error) {
	var task models.Task
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		task, err = s.taskRepository.GetTask(ctx, userID, taskID)
		return err
	})
	if err != nil {
		return models.Task{}, fmt.Errorf("error getting task %d: %w", taskID, err)
	}

	return task, nil
}

// UpdateTask loads the owned task, overwrites the fields present in update
// and stores the result. An update without fields returns the task as is.
func (s *taskService) UpdateTask(ctx context.Context, userID, taskID int64, update models.TaskUpdate) (models.Task, error) {
	var updated models.Task
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		task, err := s.taskRepository.GetTask(ctx, userID, taskID)
		if err != nil {
			return err
		}

		if update.IsEmpty() {
			updated = task
			return nil
		}

		task.Apply(update)
		updated, err = s.taskRepository.UpdateTask(ctx, task)
		return err
	})
	if err != nil {
		return models.Task{}, fmt.Errorf("error updating task %d: %w", taskID, err)
	}

	return updated, nil
}

func (s *taskService) DeleteTask(ctx context.Context, userID, taskID int64) error {
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		return s.taskRepository.DeleteTask(ctx, userID, taskID)
	})
	if err != nil {
		return fmt.Errorf("error deleting task %d: %w", taskID, err)
	}

	return nil
}
