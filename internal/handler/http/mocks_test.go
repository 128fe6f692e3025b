package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	loginFn        func(ctx context.Context, req models.LoginRequest) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	authorizeFn    func(ctx context.Context, tokenString string) (models.User, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return m.registerUserFn(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) Authorize(ctx context.Context, tokenString string) (models.User, error) {
	if m.authorizeFn == nil {
		return models.User{}, service.ErrUnauthorized
	}
	return m.authorizeFn(ctx, tokenString)
}

// ─────────────────────────────────────────────
// Mock TaskService
// ─────────────────────────────────────────────

type mockTaskService struct {
	createTaskFn func(ctx context.Context, userID int64, req models.TaskCreate) (models.Task, error)
	listTasksFn  func(ctx context.Context, userID int64) ([]models.Task, error)
	getTaskFn    func(ctx context.Context, userID, taskID int64) (models.Task, error)
	updateTaskFn func(ctx context.Context, userID, taskID int64, update models.TaskUpdate) (models.Task, error)
	deleteTaskFn func(ctx context.Context, userID, taskID int64) error
}

func (m *mockTaskService) CreateTask(ctx context.Context, userID int64, req models.TaskCreate) (models.Task, error) {
	return m.createTaskFn(ctx, userID, req)
}

func (m *mockTaskService) ListTasks(ctx context.Context, userID int64) ([]models.Task, error) {
	return m.listTasksFn(ctx, userID)
}

func (m *mockTaskService) GetTask(ctx context.Context, userID, taskID int64) (models.Task, error) {
	return m.getTaskFn(ctx, userID, taskID)
}

func (m *mockTaskService) UpdateTask(ctx context.Context, userID, taskID int64, update models.TaskUpdate) (models.Task, error) {
	return m.updateTaskFn(ctx, userID, taskID, update)
}

func (m *mockTaskService) DeleteTask(ctx context.Context, userID, taskID int64) error {
	return m.deleteTaskFn(ctx, userID, taskID)
}

// ─────────────────────────────────────────────
// Mock AppInfoService
// ─────────────────────────────────────────────

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) Status(_ context.Context) models.StatusResponse {
	return models.StatusResponse{Message: "Task Manager API is running!", Version: m.version}
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const validToken = "valid-token"

var alice = models.User{UserID: 1, Username: "alice", Email: "alice@example.com", PasswordHash: "secret-hash", IsActive: true}

// authorizeAlice accepts validToken only.
func authorizeAlice(_ context.Context, tokenString string) (models.User, error) {
	if tokenString != validToken {
		return models.User{}, service.ErrUnauthorized
	}
	return alice, nil
}

func newTestHandler(t *testing.T, auth service.AuthService, tasks service.TaskService) *Handler {
	t.Helper()

	if auth == nil {
		auth = &mockAuthService{authorizeFn: authorizeAlice}
	}

	svcs := &service.Services{
		AuthService:    auth,
		TaskService:    tasks,
		AppInfoService: &mockAppInfoService{version: "test-version"},
	}
	return NewHandler(svcs, config.StructuredConfig{}, logger.Nop())
}

// serve sends a request through the full router.
func serve(t *testing.T, h *Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	require.NotNil(t, rr)
	return rr
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
