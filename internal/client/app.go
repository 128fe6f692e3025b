package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-task-manager/internal/adapter"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/tui"
)

type App struct {
	adapter adapter.ServerAdapter
	ui      UI
	token   tokenFile
	out     io.Writer

	logger *logger.Logger
}

func NewApp(serverAdapter adapter.ServerAdapter, ui UI, tokenPath string, out io.Writer, logger *logger.Logger) (*App, error) {
	app := &App{
		adapter: serverAdapter,
		ui:      ui,
		token:   tokenFile{path: tokenPath},
		out:     out,
		logger:  logger,
	}

	token, err := app.token.load()
	if err != nil {
		return nil, err
	}
	if token != "" {
		serverAdapter.SetToken(token)
	}

	return app, nil
}

// Run executes one sub-command. No arguments start the interactive UI.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.runUI(ctx)
	}
	if args[0] == "help" {
		return a.help()
	}

	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w %q, run \"help\" for the list", ErrUnknownCommand, args[0])
	}
	if len(args)-1 < cmd.minArgs || (cmd.maxArgs >= 0 && len(args)-1 > cmd.maxArgs) {
		return fmt.Errorf("%w: %s %s", ErrUsage, args[0], cmd.usage)
	}

	a.logger.Debug().Str("command", args[0]).Msg("running command")
	return cmd.run(a, ctx, args[1:])
}

// runUI restores the saved session when the server still accepts it and
// otherwise starts with the login flow. Logging out returns to the login
// flow.
func (a *App) runUI(ctx context.Context) error {
	username := ""
	if a.adapter.Token() != "" {
		me, err := a.adapter.Me(ctx)
		switch {
		case err == nil:
			username = me.Username
		case errors.Is(err, adapter.ErrUnauthorized):
			a.adapter.SetToken("")
		default:
			return fmt.Errorf("restore session: %w", err)
		}
	}

	for {
		if username == "" {
			var err error
			username, err = a.ui.LoginFlow(ctx)
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			if err != nil {
				return err
			}
			if err = a.token.save(a.adapter.Token()); err != nil {
				return err
			}
		}

		logout, err := a.ui.MainLoop(ctx, username)
		if err != nil {
			return err
		}
		if !logout {
			return nil
		}

		a.adapter.SetToken("")
		if err = a.token.remove(); err != nil {
			return err
		}
		username = ""
	}
}
