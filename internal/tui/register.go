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

const (
	registerUsername = iota
	registerEmail
	registerPassword
	registerConfirm
)

// RegisterModel is the sign-up screen. A successful registration returns to
// the menu with a [RegisterSuccessNotice].
type RegisterModel struct {
	ctx     context.Context
	adapter adapter.ServerAdapter

	form       inputForm
	submitting bool
	errMsg     string
}

func NewRegisterModel(ctx context.Context, serverAdapter adapter.ServerAdapter) *RegisterModel {
	return &RegisterModel{
		ctx:     ctx,
		adapter: serverAdapter,
		form: newInputForm(
			[]string{"Username", "E-mail", "Password", "Repeat"},
			[]textinput.Model{
				newInput("username", 64),
				newInput("name@example.com", 254),
				newPasswordInput("password"),
				newPasswordInput("repeat password"),
			},
		),
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(RegisterResult); ok {
		m.submitting = false
		if result.Err != nil {
			m.errMsg = humanizeError(result.Err)
			return m, nil
		}
		m.errMsg = ""
		return m, func() tea.Msg {
			return NavigateTo{Page: pageMenu, Payload: RegisterSuccessNotice{Username: result.Username}}
		}
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

			req, errMsg := m.request()
			if errMsg != "" {
				m.errMsg = errMsg
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRegister(req)
		}
	}

	return m, m.form.update(msg)
}

func (m *RegisterModel) request() (models.RegisterRequest, string) {
	req := models.RegisterRequest{
		Username: strings.TrimSpace(m.form.value(registerUsername)),
		Email:    strings.TrimSpace(m.form.value(registerEmail)),
		Password: m.form.value(registerPassword),
	}

	switch {
	case req.Username == "" || req.Email == "" || req.Password == "":
		return req, "all fields are required"
	case !strings.Contains(req.Email, "@"):
		return req, "e-mail looks invalid"
	case req.Password != m.form.value(registerConfirm):
		return req, "passwords do not match"
	}
	return req, ""
}

func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())

	if m.submitting {
		b.WriteString("\n[Registering...]\n")
	} else {
		b.WriteString("\n[Register]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("REGISTER", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *RegisterModel) cmdRegister(req models.RegisterRequest) tea.Cmd {
	ctx := m.ctx
	serverAdapter := m.adapter

	return func() tea.Msg {
		_, err := serverAdapter.Register(ctx, req)
		return RegisterResult{Username: req.Username, Err: err}
	}
}
