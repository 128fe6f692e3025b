package service

import (
	"fmt"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/crypto"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/internal/validators"
)

type Services struct {
	AuthService    AuthService
	TaskService    TaskService
	AppInfoService AppInfoService
}

func NewServices(repositories *store.Repositories, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	validator := validators.NewRequestValidator()
	hasher := crypto.NewBcryptHasher(cfg.App.PasswordHashCost)

	return &Services{
		AuthService:    NewAuthValidationService(validator).Wrap(NewAuthService(repositories, hasher, cfg.App, logger.Component("auth"))),
		TaskService:    NewTaskValidationService(validator).Wrap(NewTaskService(repositories, logger.Component("tasks"))),
		AppInfoService: appInfoService,
	}, nil
}
