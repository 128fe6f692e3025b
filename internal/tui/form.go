package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// inputForm is a column of labelled text inputs with tab focus cycling.
type inputForm struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	return in
}

func newPasswordInput(placeholder string) textinput.Model {
	in := newInput(placeholder, 72)
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '*'
	return in
}

func newInputForm(labels []string, inputs []textinput.Model) inputForm {
	f := inputForm{labels: labels, inputs: inputs}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f *inputForm) value(i int) string {
	return f.inputs[i].Value()
}

// update handles focus keys and forwards the rest to the focused input.
func (f *inputForm) update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.tab), keyMsg.String() == "down":
			f.move(1)
			return nil
		case key.Matches(keyMsg, keys.backtab), keyMsg.String() == "up":
			f.move(-1)
			return nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *inputForm) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *inputForm) view() string {
	width := 0
	for _, label := range f.labels {
		if len(label) > width {
			width = len(label)
		}
	}

	var b strings.Builder
	for i, label := range f.labels {
		b.WriteString(label)
		b.WriteString(strings.Repeat(" ", width-len(label)))
		b.WriteString(" │ [")
		b.WriteString(f.inputs[i].View())
		b.WriteString("]\n")
	}
	return b.String()
}
