package models

import "time"

// DefaultTaskPriority is assigned to tasks created without an explicit priority.
const DefaultTaskPriority = "medium"

// Task is a to-do item owned by exactly one user.
type Task struct {
	// ID is the unique, database-generated identifier of the task.
	ID int64 `json:"id"`

	// UserID references the owning user. It is always taken from the
	// authenticated caller, never from client input.
	UserID int64 `json:"-"`

	// Title is the required, non-empty task title.
	Title string `json:"title"`

	// Description is optional; nil means "no description".
	Description *string `json:"description"`

	// Status reports whether the task is completed.
	Status bool `json:"status"`

	// Priority is a free-form priority label ("medium" by default).
	Priority string `json:"priority"`

	// CreatedAt is assigned by the server when the task is persisted.
	CreatedAt time.Time `json:"created"`
}

// Apply overwrites every field of t for which update carries a non-nil value
// and leaves the remaining fields untouched.
func (t *Task) Apply(update TaskUpdate) {
	if update.Title != nil {
		t.Title = *update.Title
	}
	if update.Description != nil {
		description := *update.Description
		t.Description = &description
	}
	if update.Status != nil {
		t.Status = *update.Status
	}
	if update.Priority != nil {
		t.Priority = *update.Priority
	}
}
