package tui

import (
	"fmt"
	"strings"
)

func (m mainLoopModel) View() string {
	switch m.screen {
	case screenForm:
		return m.viewForm()
	case screenDetail:
		return m.viewDetail()
	case screenConfirmDelete:
		task, _ := m.current()
		return renderPage("DELETE TASK", fmt.Sprintf("Delete task %d %q?", task.ID, task.Title), "y: yes │ n/esc: no")
	default:
		return m.viewList()
	}
}

func (m mainLoopModel) viewList() string {
	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" loading...\n")
	case len(m.tasks) == 0:
		b.WriteString("no tasks yet, press n to add one\n")
	default:
		for i, task := range m.tasks {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			mark := "[ ]"
			title := fitText(task.Title, 40)
			if task.Status {
				mark = "[x]"
				title = doneStyle.Render(title)
			}
			b.WriteString(fmt.Sprintf("%s %s #%-4d %-8s %s\n", cursor, mark, task.ID, fitText(task.Priority, 8), title))
		}
	}

	m.writeFooter(&b)

	return renderPage("TASKS OF "+strings.ToUpper(m.username), strings.TrimRight(b.String(), "\n"),
		"enter: open │ n: new │ e: edit │ space: done │ d: delete │ r: reload │ c: copy token │ l: logout │ q: quit")
}

func (m mainLoopModel) viewDetail() string {
	task, ok := m.current()
	if !ok {
		return renderPage("TASK", "", "esc: back")
	}

	status := "open"
	if task.Status {
		status = "done"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("ID          │ %d\n", task.ID))
	b.WriteString(fmt.Sprintf("Title       │ %s\n", task.Title))
	b.WriteString(fmt.Sprintf("Description │ %s\n", valueOrDash(task.Description)))
	b.WriteString(fmt.Sprintf("Status      │ %s\n", status))
	b.WriteString(fmt.Sprintf("Priority    │ %s\n", task.Priority))
	b.WriteString(fmt.Sprintf("Created     │ %s\n", task.CreatedAt.Local().Format("2006-01-02 15:04")))

	m.writeFooter(&b)

	return renderPage("TASK", strings.TrimRight(b.String(), "\n"), "esc: back │ e: edit │ space: done │ d: delete")
}

func (m mainLoopModel) viewForm() string {
	title := "NEW TASK"
	if m.editing != nil {
		title = fmt.Sprintf("EDIT TASK %d", m.editing.ID)
	}

	var b strings.Builder
	b.WriteString(m.form.view())
	if m.formSaving {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(" saving...\n")
	}
	m.writeFooter(&b)

	return renderPage(title, strings.TrimRight(b.String(), "\n"), "esc: cancel │ tab: next field │ enter: save")
}

func (m mainLoopModel) writeFooter(b *strings.Builder) {
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}
}
