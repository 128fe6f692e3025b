package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/MKhiriev/go-task-manager/internal/adapter"
	"github.com/MKhiriev/go-task-manager/internal/mock"
	"github.com/MKhiriev/go-task-manager/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

// typeInto sends text to a model and tabs to the next field.
func typeInto(m tea.Model, fields ...string) tea.Model {
	for i, field := range fields {
		m, _ = m.Update(keyRunes(field))
		if i < len(fields)-1 {
			m, _ = m.Update(keyTab)
		}
	}
	return m
}

func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func ptr[T any](v T) *T {
	return &v
}

// ─────────────────────────────────────────────
// RootModel
// ─────────────────────────────────────────────

func TestRootModel_Navigation(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)
	ctx := context.Background()

	root := NewRootModel(map[string]tea.Model{
		pageMenu:     NewMenuModel(),
		pageLogin:    NewLoginModel(ctx, serverAdapter),
		pageRegister: NewRegisterModel(ctx, serverAdapter),
	}, pageMenu, models.NewAppBuildInfo("1.2.3", "", "abc"))

	model, cmd := root.Update(keyDown)
	model, cmd = model.Update(keyEnter)
	nav := run(t, cmd)
	assert.Equal(t, NavigateTo{Page: pageRegister}, nav)

	model, _ = model.Update(nav)
	_, isRegister := model.(RootModel).current.(*RegisterModel)
	assert.True(t, isRegister)

	model, _ = model.Update(NavigateTo{Page: "missing"})
	_, isRegister = model.(RootModel).current.(*RegisterModel)
	assert.True(t, isRegister)

	model, cmd = model.Update(NavigateTo{Page: pageMenu, Payload: RegisterSuccessNotice{Username: "alice"}})
	model, _ = model.Update(run(t, cmd))
	assert.Contains(t, model.View(), "user alice registered")
}

func TestRootModel_BuildInfo(t *testing.T) {
	root := NewRootModel(map[string]tea.Model{pageMenu: NewMenuModel()}, pageMenu, models.NewAppBuildInfo("1.2.3", "", "abc"))

	model, _ := root.Update(keyRunes("v"))
	view := model.View()
	assert.Contains(t, view, "Version: 1.2.3")
	assert.Contains(t, view, "Date: N/A")

	model, _ = model.Update(keyEsc)
	assert.NotContains(t, model.View(), "Version: 1.2.3")
}

func TestRootModel_FinishAndQuit(t *testing.T) {
	root := NewRootModel(map[string]tea.Model{pageMenu: NewMenuModel()}, pageMenu, models.AppBuildInfo{})

	model, cmd := root.Update(LoginResult{Username: "alice"})
	require.NotNil(t, cmd)
	assert.Equal(t, "alice", model.(RootModel).username)

	model, _ = root.Update(LoginResult{Username: "alice", Err: errors.New("nope")})
	assert.Empty(t, model.(RootModel).username)

	model, cmd = root.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, model.(RootModel).quitByUser)
}

// ─────────────────────────────────────────────
// Login and register
// ─────────────────────────────────────────────

func TestLoginModel(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)

	var model tea.Model = NewLoginModel(context.Background(), serverAdapter)

	model, cmd := model.Update(keyEnter)
	assert.Nil(t, cmd)
	assert.Contains(t, model.View(), "username and password are required")

	model = typeInto(model, "alice", "pw")

	serverAdapter.EXPECT().
		Login(gomock.Any(), models.LoginRequest{Username: "alice", Password: "pw"}).
		Return(models.TokenResponse{AccessToken: "tok", TokenType: "bearer"}, nil)

	model, cmd = model.Update(keyEnter)
	assert.Equal(t, LoginResult{Username: "alice"}, run(t, cmd))
	assert.Contains(t, model.View(), "Logging in...")

	_, cmd = model.Update(keyEnter)
	assert.Nil(t, cmd, "second submit while in flight")

	model, _ = model.Update(LoginResult{Username: "alice", Err: fmt.Errorf("%w: %s", adapter.ErrUnauthorized, "incorrect username or password")})
	assert.Contains(t, model.View(), "Error: incorrect username or password")
	assert.NotContains(t, model.View(), "pw")
}

func TestRegisterModel(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)

	t.Run("passwords must match", func(t *testing.T) {
		var model tea.Model = NewRegisterModel(context.Background(), serverAdapter)
		model = typeInto(model, "alice", "alice@example.com", "pw1", "pw2")

		model, cmd := model.Update(keyEnter)

		assert.Nil(t, cmd)
		assert.Contains(t, model.View(), "passwords do not match")
	})

	t.Run("success returns to menu", func(t *testing.T) {
		var model tea.Model = NewRegisterModel(context.Background(), serverAdapter)
		model = typeInto(model, "alice", "alice@example.com", "pw", "pw")

		serverAdapter.EXPECT().
			Register(gomock.Any(), models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "pw"}).
			Return(models.UserResponse{ID: 1, Username: "alice"}, nil)

		model, cmd := model.Update(keyEnter)
		result := run(t, cmd)
		assert.Equal(t, RegisterResult{Username: "alice"}, result)

		_, cmd = model.Update(result)
		assert.Equal(t, NavigateTo{Page: pageMenu, Payload: RegisterSuccessNotice{Username: "alice"}}, run(t, cmd))
	})

	t.Run("conflict is shown", func(t *testing.T) {
		var model tea.Model = NewRegisterModel(context.Background(), serverAdapter)

		model, cmd := model.Update(RegisterResult{Username: "alice", Err: fmt.Errorf("%w: %s", adapter.ErrBadRequest, "username already registered")})

		assert.Nil(t, cmd)
		assert.Contains(t, model.View(), "Error: username already registered")
	})
}

// ─────────────────────────────────────────────
// Main loop
// ─────────────────────────────────────────────

func loadedMainLoop(t *testing.T, serverAdapter adapter.ServerAdapter, tasks ...models.Task) tea.Model {
	t.Helper()
	m := newMainLoopModel(context.Background(), serverAdapter, "alice")
	model, _ := m.Update(tasksLoadedMsg{tasks: tasks})
	return model
}

func TestMainLoop_LoadTasks(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)

	m := newMainLoopModel(context.Background(), serverAdapter, "alice")
	assert.Contains(t, m.View(), "loading")

	tasks := []models.Task{{ID: 1, Title: "milk", Priority: "high"}, {ID: 2, Title: "bread", Status: true, Priority: "medium"}}
	serverAdapter.EXPECT().ListTasks(gomock.Any()).Return(tasks, nil)

	msg := m.cmdLoadTasks()()
	model, _ := m.Update(msg)

	view := model.View()
	assert.Contains(t, view, "TASKS OF ALICE")
	assert.Contains(t, view, "milk")
	assert.Contains(t, view, "[x]")

	model, _ = model.Update(tasksLoadedMsg{err: fmt.Errorf("%w: %s", adapter.ErrUnauthorized, "could not validate credentials")})
	assert.Contains(t, model.View(), "could not validate credentials")
}

func TestMainLoop_ToggleStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)

	model := loadedMainLoop(t, serverAdapter, models.Task{ID: 1, Title: "a"}, models.Task{ID: 2, Title: "b"})
	model, _ = model.Update(keyDown)

	serverAdapter.EXPECT().
		UpdateTask(gomock.Any(), int64(2), models.TaskUpdate{Status: ptr(true)}).
		Return(models.Task{ID: 2, Title: "b", Status: true}, nil)

	model, cmd := model.Update(keySpace)
	saved := run(t, cmd)
	assert.Equal(t, taskSavedMsg{task: models.Task{ID: 2, Title: "b", Status: true}}, saved)

	serverAdapter.EXPECT().ListTasks(gomock.Any()).Return(nil, nil)
	model, cmd = model.Update(saved)
	assert.Contains(t, model.View(), "task 2 updated")
	assert.IsType(t, tasksLoadedMsg{}, run(t, cmd))
}

func TestMainLoop_CreateTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)

	model := loadedMainLoop(t, serverAdapter)
	assert.Contains(t, model.View(), "no tasks yet")

	model, _ = model.Update(keyRunes("n"))
	assert.Contains(t, model.View(), "NEW TASK")

	model, cmd := model.Update(keyEnter)
	assert.Nil(t, cmd)
	assert.Contains(t, model.View(), "title is required")

	model = typeInto(model, "buy milk", "", "high")

	serverAdapter.EXPECT().
		AddTask(gomock.Any(), models.TaskCreate{Title: "buy milk", Priority: ptr("high")}).
		Return(models.Task{ID: 7, Title: "buy milk", Priority: "high"}, nil)

	model, cmd = model.Update(keyEnter)
	saved := run(t, cmd)
	assert.Equal(t, taskSavedMsg{task: models.Task{ID: 7, Title: "buy milk", Priority: "high"}, created: true}, saved)

	model, _ = model.Update(saved)
	assert.Equal(t, screenList, model.(mainLoopModel).screen)
	assert.Contains(t, model.View(), "task 7 added")
}

func TestMainLoop_EditSendsChangedFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)

	model := loadedMainLoop(t, serverAdapter, models.Task{ID: 3, Title: "old", Priority: "medium"})

	model, _ = model.Update(keyEnter)
	assert.Contains(t, model.View(), "Title       │ old")

	model, _ = model.Update(keyRunes("e"))
	assert.Contains(t, model.View(), "EDIT TASK 3")

	// focus the description field and type into it
	model, _ = model.Update(keyTab)
	model, _ = model.Update(keyRunes("details"))

	serverAdapter.EXPECT().
		UpdateTask(gomock.Any(), int64(3), models.TaskUpdate{Description: ptr("details")}).
		Return(models.Task{ID: 3, Title: "old", Description: ptr("details"), Priority: "medium"}, nil)

	_, cmd := model.Update(keyEnter)
	assert.IsType(t, taskSavedMsg{}, run(t, cmd))
}

func TestMainLoop_DeleteTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)

	model := loadedMainLoop(t, serverAdapter, models.Task{ID: 4, Title: "gone"})

	model, _ = model.Update(keyRunes("d"))
	assert.Contains(t, model.View(), `Delete task 4 "gone"?`)

	model, _ = model.Update(keyRunes("n"))
	assert.Equal(t, screenList, model.(mainLoopModel).screen)

	model, _ = model.Update(keyRunes("d"))
	serverAdapter.EXPECT().DeleteTask(gomock.Any(), int64(4)).Return(nil)
	model, cmd := model.Update(keyRunes("y"))
	deleted := run(t, cmd)
	assert.Equal(t, taskDeletedMsg{taskID: 4}, deleted)

	model, _ = model.Update(taskDeletedMsg{taskID: 4, err: fmt.Errorf("%w: %s", adapter.ErrNotFound, "task not found")})
	assert.Contains(t, model.View(), "Error: task not found")
}

func TestMainLoop_LogoutAndQuit(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)

	model, cmd := loadedMainLoop(t, serverAdapter).Update(keyRunes("l"))
	require.NotNil(t, cmd)
	assert.True(t, model.(mainLoopModel).logout)

	model, cmd = loadedMainLoop(t, serverAdapter).Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.False(t, model.(mainLoopModel).logout)
}

func TestMainLoop_CopiedMessage(t *testing.T) {
	model := loadedMainLoop(t, nil)

	model, _ = model.Update(copiedMsg{})
	assert.Contains(t, model.View(), "token copied")

	model, _ = model.Update(copiedMsg{err: errors.New("no clipboard")})
	assert.Contains(t, model.View(), "copy failed: no clipboard")
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func TestHumanizeError(t *testing.T) {
	assert.Empty(t, humanizeError(nil))
	assert.Equal(t, "network is down or the server is unavailable",
		humanizeError(errors.New(`Get "http://localhost:8080/tasks": dial tcp [::1]:8080: connect: connection refused`)))
	assert.Equal(t, "task not found", humanizeError(fmt.Errorf("%w: %s", adapter.ErrNotFound, "task not found")))
	assert.Equal(t, "boom", humanizeError(errors.New("boom")))
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "short", fitText("short", 10))
	assert.Equal(t, "abcdefg...", fitText("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", fitText("abcdef", 2))
	assert.Equal(t, "задач...", fitText("задача номер один", 8))
}
