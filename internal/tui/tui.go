// Package tui is the interactive terminal client built with Bubble Tea.
//
// The UI has two programs: the login flow (menu, login, register) and the
// main loop that lists and edits the caller's tasks. Both talk to the API
// through [adapter.ServerAdapter].
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-task-manager/internal/adapter"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("user quit")

type TUI struct {
	adapter   adapter.ServerAdapter
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(serverAdapter adapter.ServerAdapter, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{adapter: serverAdapter, buildInfo: buildInfo, logger: logger}
}

// LoginFlow runs the menu until the user logs in. On success the adapter
// holds the new token. It returns [ErrUserQuit] when the user leaves.
func (t *TUI) LoginFlow(ctx context.Context) (username string, err error) {
	pages := map[string]tea.Model{
		pageMenu:     NewMenuModel(),
		pageLogin:    NewLoginModel(ctx, t.adapter),
		pageRegister: NewRegisterModel(ctx, t.adapter),
	}

	root := NewRootModel(pages, pageMenu, t.buildInfo)
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return "", runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return "", tea.ErrProgramKilled
	}
	if result.quitByUser || result.username == "" {
		return "", ErrUserQuit
	}

	t.logger.Debug().Str("username", result.username).Msg("logged in")
	return result.username, nil
}

// MainLoop runs the task screen. logout reports that the user asked to log
// out rather than quit.
func (t *TUI) MainLoop(ctx context.Context, username string) (logout bool, err error) {
	model := newMainLoopModel(ctx, t.adapter, username)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
