package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newSQLiteHandler wires the real store, services and router over a migrated
// in-memory database. go-sqlite3 needs cgo, so the test is skipped when the
// driver cannot open a connection.
func newSQLiteHandler(t *testing.T) *Handler {
	t.Helper()

	ctx := context.Background()
	db, err := store.NewDB(ctx, config.DB{DSN: ":memory:", Driver: config.DriverSQLite}, logger.Nop())
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(ctx))

	cfg := config.StructuredConfig{App: config.App{
		TokenSignKey:     "router-test-key",
		TokenIssuer:      "go-task-manager",
		TokenDuration:    30 * time.Minute,
		PasswordHashCost: bcrypt.MinCost,
		Version:          "test-version",
	}}
	svcs, err := service.NewServices(store.NewRepositories(db, logger.Nop()), cfg, logger.Nop())
	require.NoError(t, err)

	return NewHandler(svcs, cfg, logger.Nop())
}

// signUp registers username and returns its bearer header.
func signUp(t *testing.T, h *Handler, username string) map[string]string {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"email":"%s@example.com","password":"secret"}`, username, username)
	rr := serve(t, h, http.MethodPost, "/register", body, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = serve(t, h, http.MethodPost, "/login", fmt.Sprintf(`{"username":%q,"password":"secret"}`, username), nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	token := decodeBody[models.TokenResponse](t, rr.Body.Bytes())

	return bearer(token.AccessToken)
}

func TestRouter_SQLite_TasksAreOwnerScoped(t *testing.T) {
	h := newSQLiteHandler(t)
	aliceAuth := signUp(t, h, "alice")
	bobAuth := signUp(t, h, "bob")

	rr := serve(t, h, http.MethodPost, "/tasks/add", `{"title":"buy milk"}`, aliceAuth)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	task := decodeBody[models.Task](t, rr.Body.Bytes())
	require.NotZero(t, task.ID)

	taskPath := fmt.Sprintf("/tasks/%d", task.ID)
	updatePath := fmt.Sprintf("/tasks/update/%d", task.ID)
	deletePath := fmt.Sprintf("/tasks/delete/%d", task.ID)
	missingPath := fmt.Sprintf("/tasks/%d", task.ID+1000)

	t.Run("another user gets not found", func(t *testing.T) {
		requests := []struct {
			method, target, body string
		}{
			{http.MethodGet, taskPath, ""},
			{http.MethodPut, updatePath, `{"title":"stolen"}`},
			{http.MethodDelete, deletePath, ""},
		}
		for _, req := range requests {
			rr := serve(t, h, req.method, req.target, req.body, bobAuth)
			assert.Equal(t, http.StatusNotFound, rr.Code, "%s %s", req.method, req.target)
		}
	})

	t.Run("foreign and missing ids answer the same", func(t *testing.T) {
		foreign := serve(t, h, http.MethodGet, taskPath, "", bobAuth)
		missing := serve(t, h, http.MethodGet, missingPath, "", aliceAuth)

		assert.Equal(t, missing.Code, foreign.Code)
		assert.Equal(t, missing.Body.String(), foreign.Body.String())
	})

	t.Run("owner still sees the task unchanged", func(t *testing.T) {
		rr := serve(t, h, http.MethodGet, taskPath, "", aliceAuth)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, "buy milk", decodeBody[models.Task](t, rr.Body.Bytes()).Title)
	})

	t.Run("owner can delete", func(t *testing.T) {
		rr := serve(t, h, http.MethodDelete, deletePath, "", aliceAuth)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		rr = serve(t, h, http.MethodGet, taskPath, "", aliceAuth)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestRouter_SQLite_AuthRejections(t *testing.T) {
	h := newSQLiteHandler(t)
	signUp(t, h, "alice")

	t.Run("password over 72 bytes", func(t *testing.T) {
		body := fmt.Sprintf(`{"username":"carol","email":"carol@example.com","password":%q}`, strings.Repeat("é", 40))
		rr := serve(t, h, http.MethodPost, "/register", body, nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
	})

	t.Run("empty and wrong password look the same", func(t *testing.T) {
		empty := serve(t, h, http.MethodPost, "/login", `{"username":"alice","password":""}`, nil)
		wrong := serve(t, h, http.MethodPost, "/login", `{"username":"alice","password":"nope"}`, nil)

		assert.Equal(t, http.StatusUnauthorized, empty.Code)
		assert.Equal(t, wrong.Code, empty.Code)
		assert.Equal(t, wrong.Body.String(), empty.Body.String())
	})
}
