package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-task-manager/internal/validators"
	"github.com/MKhiriev/go-task-manager/models"
)

// AuthValidationService validates register and login requests before they
// reach the wrapped AuthService.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService(validator validators.Validator) AuthServiceWrapper {
	return &AuthValidationService{validator: validator}
}

func (v *AuthValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}

func (v *AuthValidationService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.RegisterUser(ctx, req)
}

// Login reports a request that fails validation as ErrInvalidCredentials, so
// an empty password is indistinguishable from a wrong one.
func (v *AuthValidationService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	return v.inner.Login(ctx, req)
}

func (v *AuthValidationService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return v.inner.CreateToken(ctx, user)
}

func (v *AuthValidationService) Authorize(ctx context.Context, tokenString string) (models.User, error) {
	if tokenString == "" {
		return models.User{}, ErrUnauthorized
	}

	return v.inner.Authorize(ctx, tokenString)
}

// TaskValidationService validates task payloads and ids before they reach
// the wrapped TaskService.
type TaskValidationService struct {
	inner     TaskService
	validator validators.Validator
}

func NewTaskValidationService(validator validators.Validator) TaskServiceWrapper {
	return &TaskValidationService{validator: validator}
}

func (v *TaskValidationService) Wrap(inner TaskService) TaskService {
	v.inner = inner
	return v
}

func (v *TaskValidationService) CreateTask(ctx context.Context, userID int64, req models.TaskCreate) (models.Task, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateTask(ctx, userID, req)
}

func (v *TaskValidationService) ListTasks(ctx context.Context, userID int64) ([]models.Task, error) {
	return v.inner.ListTasks(ctx, userID)
}

func (v *TaskValidationService) GetTask(ctx context.Context, userID, taskID int64) (models.Task, error) {
	return v.inner.GetTask(ctx, userID, taskID)
}

func (v *TaskValidationService) UpdateTask(ctx context.Context, userID, taskID int64, update models.TaskUpdate) (models.Task, error) {
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateTask(ctx, userID, taskID, update)
}

func (v *TaskValidationService) DeleteTask(ctx context.Context, userID, taskID int64) error {
	return v.inner.DeleteTask(ctx, userID, taskID)
}
