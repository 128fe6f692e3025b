// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-task-manager/internal/adapter"
	"github.com/MKhiriev/go-task-manager/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginModel is the login screen. On submit it calls the adapter and emits a
// [LoginResult], which [RootModel] uses to finish the flow.
type LoginModel struct {
	ctx     context.Context
	adapter adapter.ServerAdapter

	form       inputForm
	submitting bool
	errMsg     string
}

func NewLoginModel(ctx context.Context, serverAdapter adapter.ServerAdapter) *LoginModel {
	return &LoginModel{
		ctx:     ctx,
		adapter: serverAdapter,
		form: newInputForm(
			[]string{"Username", "Password"},
			[]textinput.Model{newInput("username", 64), newPasswordInput("password")},
		),
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(LoginResult); ok {
		m.submitting = false
		m.errMsg = humanizeError(result.Err)
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case key.Matches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}

			username := strings.TrimSpace(m.form.value(0))
			password := m.form.value(1)
			if username == "" || password == "" {
				m.errMsg = "username and password are required"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLogin(username, password)
		}
	}

	return m, m.form.update(msg)
}

func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())

	if m.submitting {
		b.WriteString("\n[Logging in...]\n")
	} else {
		b.WriteString("\n[Log in]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("LOG IN", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *LoginModel) cmdLogin(username, password string) tea.Cmd {
	ctx := m.ctx
	serverAdapter := m.adapter

	return func() tea.Msg {
		_, err := serverAdapter.Login(ctx, models.LoginRequest{Username: username, Password: password})
		return LoginResult{Username: username, Err: err}
	}
}
