// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"

	"github.com/MKhiriev/go-task-manager/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	usersTable = "users"
	tasksTable = "tasks"
)

var (
	userColumns = []string{"id", "username", "email", "hashed_password", "is_active", "created_at"}
	taskColumns = []string{"id", "user_id", "title", "description", "status", "priority", "created"}
)

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns("username", "email", "hashed_password", "is_active", "created_at").
		Values(user.Username, user.Email, user.PasswordHash, user.IsActive, user.CreatedAt).
		Suffix(returning(userColumns)).
		ToSql()
}

// buildSelectUserQuery selects the user whose column equals value.
func buildSelectUserQuery(b sq.StatementBuilderType, column string, value any) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{column: value}).
		Limit(1).
		ToSql()
}

func buildInsertTaskQuery(b sq.StatementBuilderType, task models.Task) (string, []any, error) {
	return b.Insert(tasksTable).
		Columns("user_id", "title", "description", "status", "priority", "created").
		Values(task.UserID, task.Title, task.Description, task.Status, task.Priority, task.CreatedAt).
		Suffix(returning(taskColumns)).
		ToSql()
}

func buildSelectTasksQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select(taskColumns...).
		From(tasksTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id").
		ToSql()
}

func buildSelectTaskQuery(b sq.StatementBuilderType, userID, taskID int64) (string, []any, error) {
	return b.Select(taskColumns...).
		From(tasksTable).
		Where(sq.And{sq.Eq{"id": taskID}, sq.Eq{"user_id": userID}}).
		ToSql()
}

// buildUpdateTaskQuery overwrites every mutable column of the task matching
// both task.ID and task.UserID.
func buildUpdateTaskQuery(b sq.StatementBuilderType, task models.Task) (string, []any, error) {
	return b.Update(tasksTable).
		Set("title", task.Title).
		Set("description", task.Description).
		Set("status", task.Status).
		Set("priority", task.Priority).
		Where(sq.And{sq.Eq{"id": task.ID}, sq.Eq{"user_id": task.UserID}}).
		Suffix(returning(taskColumns)).
		ToSql()
}

func buildDeleteTaskQuery(b sq.StatementBuilderType, userID, taskID int64) (string, []any, error) {
	return b.Delete(tasksTable).
		Where(sq.And{sq.Eq{"id": taskID}, sq.Eq{"user_id": userID}}).
		ToSql()
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(&user.UserID, &user.Username, &user.Email, &user.PasswordHash, &user.IsActive, &user.CreatedAt)
	return user, err
}

func scanTask(row rowScanner) (models.Task, error) {
	var task models.Task
	err := row.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Status, &task.Priority, &task.CreatedAt)
	return task, err
}
