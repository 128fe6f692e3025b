package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
)

const statusMessage = "Task Manager API is running!"

type appInfoService struct {
	version   string
	startedAt time.Time

	logger *logger.Logger
}

// NewAppInfoService fails with [ErrVersionIsNotSpecified] when cfg carries no
// version.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		version:   cfg.Version,
		startedAt: time.Now(),
		logger:    logger,
	}, nil
}

func (s *appInfoService) Status(ctx context.Context) models.StatusResponse {
	s.logger.Debug().Dur("uptime", time.Since(s.startedAt)).Msg("status requested")

	return models.StatusResponse{
		Message: statusMessage,
		Version: s.version,
	}
}
