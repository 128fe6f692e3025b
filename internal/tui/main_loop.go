package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-task-manager/internal/adapter"
	"github.com/MKhiriev/go-task-manager/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenList screen = iota
	screenDetail
	screenForm
	screenConfirmDelete
)

const (
	fieldTitle = iota
	fieldDescription
	fieldPriority
)

type mainLoopModel struct {
	ctx      context.Context
	adapter  adapter.ServerAdapter
	username string

	tasks   []models.Task
	idx     int
	loading bool
	spinner spinner.Model
	screen  screen

	form       inputForm
	editing    *models.Task
	formSaving bool

	status string
	errMsg string

	logout bool
}

func newMainLoopModel(ctx context.Context, serverAdapter adapter.ServerAdapter, username string) mainLoopModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return mainLoopModel{
		ctx:      ctx,
		adapter:  serverAdapter,
		username: username,
		loading:  true,
		spinner:  s,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoadTasks())
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading && !m.formSaving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tasksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.tasks = msg.tasks
		m.clampIdx()
		return m, nil
	case taskSavedMsg:
		m.formSaving = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		if m.screen == screenForm {
			m.screen = screenList
		}
		m.editing = nil
		m.errMsg = ""
		if msg.created {
			m.status = fmt.Sprintf("task %d added", msg.task.ID)
		} else {
			m.status = fmt.Sprintf("task %d updated", msg.task.ID)
		}
		m.loading = true
		return m, m.cmdLoadTasks()
	case taskDeletedMsg:
		m.screen = screenList
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.status = fmt.Sprintf("task %d deleted", msg.taskID)
		m.loading = true
		return m, m.cmdLoadTasks()
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("copy failed: %v", msg.err)
			return m, nil
		}
		m.status = "token copied to clipboard"
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.screen == screenForm {
			return m, m.form.update(msg)
		}
		return m, nil
	}

	if keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case screenForm:
		return m.updateForm(keyMsg)
	case screenConfirmDelete:
		return m.updateConfirmDelete(keyMsg)
	case screenDetail:
		return m.updateDetail(keyMsg)
	default:
		return m.updateList(keyMsg)
	}
}

func (m mainLoopModel) updateList(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.tasks)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		if _, ok := m.current(); !ok {
			m.status = "no tasks"
			return m, nil
		}
		m.screen = screenDetail
	case key.Matches(keyMsg, keys.newItem):
		m.startForm(nil)
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.logout):
		m.logout = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.copy):
		return m, m.cmdCopyToken()
	default:
		return m.updateTaskAction(keyMsg)
	}
	return m, nil
}

func (m mainLoopModel) updateDetail(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(keyMsg, keys.esc) {
		m.screen = screenList
		return m, nil
	}
	if key.Matches(keyMsg, keys.quit) {
		return m, tea.Quit
	}
	return m.updateTaskAction(keyMsg)
}

// updateTaskAction handles the keys that act on the selected task in both
// the list and the detail screen.
func (m mainLoopModel) updateTaskAction(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	task, ok := m.current()

	switch {
	case key.Matches(keyMsg, keys.reload):
		m.loading = true
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, m.cmdLoadTasks())
	case !ok:
		return m, nil
	case key.Matches(keyMsg, keys.toggle):
		status := !task.Status
		return m, m.cmdSave(task.ID, models.TaskUpdate{Status: &status})
	case key.Matches(keyMsg, keys.edit):
		m.startForm(&task)
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.delete):
		m.screen = screenConfirmDelete
	}
	return m, nil
}

func (m mainLoopModel) updateConfirmDelete(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.yes):
		task, ok := m.current()
		if !ok {
			m.screen = screenList
			return m, nil
		}
		return m, m.cmdDelete(task.ID)
	case key.Matches(keyMsg, keys.no):
		m.screen = screenList
	}
	return m, nil
}

func (m *mainLoopModel) startForm(task *models.Task) {
	title := newInput("title", 200)
	description := newInput("description (optional)", 1000)
	priority := newInput(models.DefaultTaskPriority, 32)

	if task != nil {
		title.SetValue(task.Title)
		description.SetValue(valueOrEmpty(task.Description))
		priority.SetValue(task.Priority)
	}

	m.form = newInputForm([]string{"Title", "Description", "Priority"}, []textinput.Model{title, description, priority})
	m.editing = task
	m.errMsg = ""
	m.status = ""
	m.screen = screenForm
}

func (m mainLoopModel) updateForm(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.esc):
		m.screen = screenList
		m.editing = nil
		m.errMsg = ""
		return m, nil
	case key.Matches(keyMsg, keys.enter):
		if m.formSaving {
			return m, nil
		}

		title := strings.TrimSpace(m.form.value(fieldTitle))
		if title == "" {
			m.errMsg = "title is required"
			return m, nil
		}

		m.errMsg = ""
		m.formSaving = true
		if m.editing == nil {
			return m, m.cmdCreate(m.taskCreate(title))
		}
		return m, m.cmdSave(m.editing.ID, m.taskUpdate(title))
	}

	return m, m.form.update(keyMsg)
}

func (m mainLoopModel) taskCreate(title string) models.TaskCreate {
	req := models.TaskCreate{Title: title}
	if description := strings.TrimSpace(m.form.value(fieldDescription)); description != "" {
		req.Description = &description
	}
	if priority := strings.TrimSpace(m.form.value(fieldPriority)); priority != "" {
		req.Priority = &priority
	}
	return req
}

// taskUpdate sends only the fields that differ from the edited task.
func (m mainLoopModel) taskUpdate(title string) models.TaskUpdate {
	var update models.TaskUpdate
	if title != m.editing.Title {
		update.Title = &title
	}
	if description := strings.TrimSpace(m.form.value(fieldDescription)); description != valueOrEmpty(m.editing.Description) {
		update.Description = &description
	}
	if priority := strings.TrimSpace(m.form.value(fieldPriority)); priority != "" && priority != m.editing.Priority {
		update.Priority = &priority
	}
	return update
}

func (m mainLoopModel) current() (models.Task, bool) {
	if len(m.tasks) == 0 || m.idx < 0 || m.idx >= len(m.tasks) {
		return models.Task{}, false
	}
	return m.tasks[m.idx], true
}

func (m *mainLoopModel) clampIdx() {
	if m.idx >= len(m.tasks) {
		m.idx = len(m.tasks) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m mainLoopModel) cmdLoadTasks() tea.Cmd {
	ctx, serverAdapter := m.ctx, m.adapter
	return func() tea.Msg {
		tasks, err := serverAdapter.ListTasks(ctx)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (m mainLoopModel) cmdCreate(req models.TaskCreate) tea.Cmd {
	ctx, serverAdapter := m.ctx, m.adapter
	return func() tea.Msg {
		task, err := serverAdapter.AddTask(ctx, req)
		return taskSavedMsg{task: task, created: true, err: err}
	}
}

func (m mainLoopModel) cmdSave(taskID int64, update models.TaskUpdate) tea.Cmd {
	ctx, serverAdapter := m.ctx, m.adapter
	return func() tea.Msg {
		task, err := serverAdapter.UpdateTask(ctx, taskID, update)
		return taskSavedMsg{task: task, err: err}
	}
}

func (m mainLoopModel) cmdDelete(taskID int64) tea.Cmd {
	ctx, serverAdapter := m.ctx, m.adapter
	return func() tea.Msg {
		return taskDeletedMsg{taskID: taskID, err: serverAdapter.DeleteTask(ctx, taskID)}
	}
}

func (m mainLoopModel) cmdCopyToken() tea.Cmd {
	token := m.adapter.Token()
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(token)}
	}
}

func valueOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
