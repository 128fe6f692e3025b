package tui

import (
	"github.com/MKhiriev/go-task-manager/models"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	pageMenu     = "menu"
	pageLogin    = "login"
	pageRegister = "register"
)

// NavigateTo switches the active page of [RootModel]. Payload, when set, is
// delivered to the new page instead of its Init command.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult finishes the login flow when Err is nil.
type LoginResult struct {
	Username string
	Err      error
}

type RegisterResult struct {
	Username string
	Err      error
}

// RegisterSuccessNotice is shown by the menu after a registration.
type RegisterSuccessNotice struct {
	Username string
}

type tasksLoadedMsg struct {
	tasks []models.Task
	err   error
}

type taskSavedMsg struct {
	task    models.Task
	created bool
	err     error
}

type taskDeletedMsg struct {
	taskID int64
	err    error
}

type copiedMsg struct {
	err error
}
