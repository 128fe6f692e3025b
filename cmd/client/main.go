package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/MKhiriev/go-task-manager/internal/adapter"
	"github.com/MKhiriev/go-task-manager/internal/client"
	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/tui"
	"github.com/MKhiriev/go-task-manager/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const logFileName = "go-task-client.log"

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error getting configs:", err)
		os.Exit(2)
	}

	log, logFile, err := logger.NewFileLogger("go-task-client", cfg.LogLevel, filepath.Join(os.TempDir(), logFileName))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.HashKey, log)
	if err != nil {
		log.Error().Err(err).Msg("create server adapter")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ui := tui.New(serverAdapter, buildInfo, log)

	app, err := client.NewApp(serverAdapter, ui, cfg.Adapter.TokenFile, os.Stdout, log)
	if err != nil {
		log.Error().Err(err).Msg("init client app error")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx, cfg.Command); err != nil {
		log.Error().Err(err).Strs("command", cfg.Command).Msg("client run error")
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		logFile.Close()
		os.Exit(1)
	}
}
