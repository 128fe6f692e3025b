package client

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/models"
)

type command struct {
	usage   string
	summary string
	minArgs int
	// maxArgs < 0 means unbounded.
	maxArgs int
	run     func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"status": {
		summary: "show the server banner",
		run:     (*App).status,
	},
	"register": {
		usage: "<username> <email> <password>", summary: "create an account",
		minArgs: 3, maxArgs: 3,
		run: (*App).register,
	},
	"login": {
		usage: "<username> <password>", summary: "log in and save the token",
		minArgs: 2, maxArgs: 2,
		run: (*App).login,
	},
	"logout": {
		summary: "forget the saved token",
		run:     (*App).logout,
	},
	"whoami": {
		summary: "show the logged in user",
		run:     (*App).whoami,
	},
	"tasks": {
		summary: "list your tasks",
		run:     (*App).listTasks,
	},
	"add": {
		usage: "<title> [description] [priority]", summary: "create a task",
		minArgs: 1, maxArgs: 3,
		run: (*App).addTask,
	},
	"get": {
		usage: "<id>", summary: "show one task",
		minArgs: 1, maxArgs: 1,
		run: (*App).getTask,
	},
	"done": {
		usage: "<id>", summary: "mark a task completed",
		minArgs: 1, maxArgs: 1,
		run: (*App).doneTask,
	},
	"update": {
		usage: "<id> field=value...", summary: "change title, description, priority or status",
		minArgs: 2, maxArgs: -1,
		run: (*App).updateTask,
	},
	"delete": {
		usage: "<id>", summary: "delete a task",
		minArgs: 1, maxArgs: 1,
		run: (*App).deleteTask,
	},
	"ui": {
		summary: "start the interactive terminal UI",
		run: func(a *App, ctx context.Context, _ []string) error {
			return a.runUI(ctx)
		},
	},
}

func (a *App) help() error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "commands:")
	for _, name := range names {
		cmd := commands[name]
		fmt.Fprintf(w, "  %s %s\t%s\n", name, cmd.usage, cmd.summary)
	}
	return w.Flush()
}

func (a *App) status(ctx context.Context, _ []string) error {
	status, err := a.adapter.Status(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (version %s)\n", status.Message, status.Version)
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	user, err := a.adapter.Register(ctx, models.RegisterRequest{Username: args[0], Email: args[1], Password: args[2]})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "registered user %s (id %d), now run: login %s <password>\n", user.Username, user.ID, user.Username)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	token, err := a.adapter.Login(ctx, models.LoginRequest{Username: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	if err = a.token.save(token.AccessToken); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "logged in as %s\n", args[0])
	return nil
}

func (a *App) logout(context.Context, []string) error {
	username, _ := utils.ParseUsernameFromJWT(a.adapter.Token())

	a.adapter.SetToken("")
	if err := a.token.remove(); err != nil {
		return err
	}

	if username == "" {
		fmt.Fprintln(a.out, "logged out")
		return nil
	}
	fmt.Fprintf(a.out, "logged out %s\n", username)
	return nil
}

func (a *App) whoami(ctx context.Context, _ []string) error {
	user, err := a.adapter.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s> (id %d)\n", user.Username, user.Email, user.ID)
	return nil
}

func (a *App) listTasks(ctx context.Context, _ []string) error {
	tasks, err := a.adapter.ListTasks(ctx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "no tasks")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tPRIORITY\tTITLE")
	for _, task := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", task.ID, doneMark(task.Status), task.Priority, task.Title)
	}
	return w.Flush()
}

func (a *App) addTask(ctx context.Context, args []string) error {
	req := models.TaskCreate{Title: args[0]}
	if len(args) > 1 && args[1] != "" {
		req.Description = &args[1]
	}
	if len(args) > 2 && args[2] != "" {
		req.Priority = &args[2]
	}

	task, err := a.adapter.AddTask(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "added task %d\n", task.ID)
	return nil
}

func (a *App) getTask(ctx context.Context, args []string) error {
	taskID, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	task, err := a.adapter.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	a.printTask(task)
	return nil
}

func (a *App) doneTask(ctx context.Context, args []string) error {
	taskID, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	done := true
	task, err := a.adapter.UpdateTask(ctx, taskID, models.TaskUpdate{Status: &done})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "task %d completed\n", task.ID)
	return nil
}

func (a *App) updateTask(ctx context.Context, args []string) error {
	taskID, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	update, err := parseTaskUpdate(args[1:])
	if err != nil {
		return err
	}

	task, err := a.adapter.UpdateTask(ctx, taskID, update)
	if err != nil {
		return err
	}
	a.printTask(task)
	return nil
}

func (a *App) deleteTask(ctx context.Context, args []string) error {
	taskID, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	if err = a.adapter.DeleteTask(ctx, taskID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "task %d deleted\n", taskID)
	return nil
}

func (a *App) printTask(task models.Task) {
	description := "-"
	if task.Description != nil {
		description = *task.Description
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "id\t%d\n", task.ID)
	fmt.Fprintf(w, "title\t%s\n", task.Title)
	fmt.Fprintf(w, "description\t%s\n", description)
	fmt.Fprintf(w, "done\t%s\n", doneMark(task.Status))
	fmt.Fprintf(w, "priority\t%s\n", task.Priority)
	fmt.Fprintf(w, "created\t%s\n", task.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	_ = w.Flush()
}

func parseTaskID(raw string) (int64, error) {
	taskID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || taskID <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTaskID, raw)
	}
	return taskID, nil
}

// parseTaskUpdate reads field=value pairs. status accepts anything
// strconv.ParseBool does.
func parseTaskUpdate(pairs []string) (models.TaskUpdate, error) {
	var update models.TaskUpdate
	for _, pair := range pairs {
		field, value, ok := strings.Cut(pair, "=")
		if !ok {
			return models.TaskUpdate{}, fmt.Errorf("%w: %q, expected field=value", ErrUsage, pair)
		}

		switch strings.ToLower(field) {
		case "title":
			update.Title = &value
		case "description":
			update.Description = &value
		case "priority":
			update.Priority = &value
		case "status", "done":
			status, err := strconv.ParseBool(value)
			if err != nil {
				return models.TaskUpdate{}, fmt.Errorf("%w: status=%q", ErrUsage, value)
			}
			update.Status = &status
		default:
			return models.TaskUpdate{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}
	return update, nil
}

func doneMark(done bool) string {
	if done {
		return "x"
	}
	return " "
}
