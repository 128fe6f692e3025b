package http

import (
	"time"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/internal/utils"
)

type Handler struct {
	services *service.Services

	// hasher verifies the HashSHA256 request header; nil disables the check.
	hasher *utils.Hasher

	allowedOrigins []string
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	h := &Handler{
		services:       services,
		allowedOrigins: cfg.Server.AllowedOrigins,
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
	if cfg.App.HashKey != "" {
		h.hasher = utils.NewHasher(cfg.App.HashKey)
	}

	logger.Info().Msg("http handler created")
	return h
}
