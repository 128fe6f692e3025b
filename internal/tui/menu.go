package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type MenuModel struct {
	items  []string
	idx    int
	status string
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		items: []string{"Log in", "Register"},
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if notice, ok := msg.(RegisterSuccessNotice); ok {
		m.status = fmt.Sprintf("user %s registered, you can log in now", notice.Username)
		m.idx = 0
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		if m.idx == 0 {
			return m, func() tea.Msg { return NavigateTo{Page: pageLogin} }
		}
		return m, func() tea.Msg { return NavigateTo{Page: pageRegister} }
	}

	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder

	if m.status != "" {
		b.WriteString(statusStyle.Render("OK: " + m.status))
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %d. %s\n", cursor, i+1, item))
	}

	return renderPage("TASK MANAGER", strings.TrimRight(b.String(), "\n"), "enter: select │ ↑/↓: move │ v: version")
}
