package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/handler"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/server"
	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("go-task-server", "").Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" && buildVersion != "N/A" {
		cfg.App.Version = buildVersion
	}

	log := logger.NewLogger("go-task-server", cfg.App.LogLevel)
	log.Debug().Str("driver", cfg.Storage.DB.Driver).Str("address", cfg.Server.HTTPAddress).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewDB(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if !cfg.Storage.DB.SkipMigrations {
		if err = db.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("error applying migrations")
		}
	}

	services, err := service.NewServices(store.NewRepositories(db, log), *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("server stopped")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
