// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
)

// taskRepository is the SQL implementation of [TaskRepository] over the
// "tasks" table. Reads, updates and deletes always filter on user_id, so a
// task owned by another user behaves exactly like a missing one.
type taskRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTaskRepository constructs a [TaskRepository] backed by db.
func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating task repository")
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTask inserts task and returns the stored row with its generated id.
func (r *taskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertTaskQuery(r.db.builder, task)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.CreateTask").Msg("error building query")
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	r.db.logQuery(ctx, query, args)

	created, err := scanTask(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.CreateTask").Msg("error inserting task")
		return models.Task{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// ListTasks returns every task owned by userID ordered by id. An empty
// result is a non-nil empty slice.
func (r *taskRepository) ListTasks(ctx context.Context, userID int64) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectTasksQuery(r.db.builder, userID)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.ListTasks").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	r.db.logQuery(ctx, query, args)

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.ListTasks").Msg("error selecting tasks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Err(err).Str("func", "*taskRepository.ListTasks").Msg("error scanning task")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		tasks = append(tasks, task)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*taskRepository.ListTasks").Msg("error iterating tasks")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tasks, nil
}

// GetTask returns the task with taskID owned by userID or [ErrTaskNotFound].
func (r *taskRepository) GetTask(ctx context.Context, userID, taskID int64) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectTaskQuery(r.db.builder, userID, taskID)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.GetTask").Msg("error building query")
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	r.db.logQuery(ctx, query, args)

	task, err := scanTask(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrTaskNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.GetTask").Msg("error selecting task")
		return models.Task{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return task, nil
}

// UpdateTask overwrites the mutable columns of the task identified by
// task.ID and task.UserID and returns the stored row.
func (r *taskRepository) UpdateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateTaskQuery(r.db.builder, task)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.UpdateTask").Msg("error building query")
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	r.db.logQuery(ctx, query, args)

	updated, err := scanTask(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrTaskNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.UpdateTask").Msg("error updating task")
		return models.Task{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return updated, nil
}

// DeleteTask removes the task with taskID owned by userID. It returns
// [ErrTaskNotFound] when no row was deleted.
func (r *taskRepository) DeleteTask(ctx context.Context, userID, taskID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteTaskQuery(r.db.builder, userID, taskID)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.DeleteTask").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	r.db.logQuery(ctx, query, args)

	result, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.DeleteTask").Msg("error deleting task")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	return nil
}
