package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openSQLite returns a migrated in-memory database. go-sqlite3 needs cgo, so
// the test is skipped when the driver cannot open a connection.
func openSQLite(t *testing.T) *DB {
	t.Helper()

	ctx := context.Background()
	db, err := NewConnectSQLite(ctx, config.DB{DSN: ":memory:", Driver: config.DriverSQLite}, logger.Nop())
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(ctx))
	return db
}

func TestSQLite_UserAndTaskLifecycle(t *testing.T) {
	db := openSQLite(t)
	repos := NewRepositories(db, logger.Nop())
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	alice, err := repos.UserRepository.CreateUser(ctx, models.User{
		Username: "alice", Email: "alice@example.com", PasswordHash: "h1", IsActive: true, CreatedAt: now,
	})
	require.NoError(t, err)
	require.NotZero(t, alice.UserID)

	bob, err := repos.UserRepository.CreateUser(ctx, models.User{
		Username: "bob", Email: "bob@example.com", PasswordHash: "h2", IsActive: true, CreatedAt: now,
	})
	require.NoError(t, err)

	_, err = repos.UserRepository.CreateUser(ctx, models.User{
		Username: "alice", Email: "other@example.com", PasswordHash: "h3", IsActive: true, CreatedAt: now,
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = repos.UserRepository.CreateUser(ctx, models.User{
		Username: "carol", Email: "alice@example.com", PasswordHash: "h3", IsActive: true, CreatedAt: now,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	found, err := repos.UserRepository.FindUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, found.UserID)
	assert.True(t, found.CreatedAt.Equal(now))

	description := "two liters"
	created, err := repos.TaskRepository.CreateTask(ctx, models.Task{
		UserID: alice.UserID, Title: "buy milk", Description: &description, Priority: "high", CreatedAt: now,
	})
	require.NoError(t, err)

	got, err := repos.TaskRepository.GetTask(ctx, alice.UserID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, description, *got.Description)
	assert.True(t, got.CreatedAt.Equal(now))

	_, err = repos.TaskRepository.GetTask(ctx, bob.UserID, created.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.ErrorIs(t, repos.TaskRepository.DeleteTask(ctx, bob.UserID, created.ID), ErrTaskNotFound)

	got.Status = true
	got.Description = nil
	updated, err := repos.TaskRepository.UpdateTask(ctx, got)
	require.NoError(t, err)
	assert.True(t, updated.Status)
	assert.Nil(t, updated.Description)

	list, err := repos.TaskRepository.ListTasks(ctx, bob.UserID)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, repos.TaskRepository.DeleteTask(ctx, alice.UserID, created.ID))
	_, err = repos.TaskRepository.GetTask(ctx, alice.UserID, created.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestSQLite_WithinTxRollsBack(t *testing.T) {
	db := openSQLite(t)
	repos := NewRepositories(db, logger.Nop())
	ctx := context.Background()
	errAbort := errors.New("abort")

	err := repos.Transactor.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := repos.UserRepository.CreateUser(ctx, models.User{
			Username: "dave", Email: "dave@example.com", PasswordHash: "h", IsActive: true, CreatedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	_, err = repos.UserRepository.FindUserByUsername(ctx, "dave")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestSQLite_DeletingUserCascadesToTasks(t *testing.T) {
	db := openSQLite(t)
	repos := NewRepositories(db, logger.Nop())
	ctx := context.Background()

	user, err := repos.UserRepository.CreateUser(ctx, models.User{
		Username: "erin", Email: "erin@example.com", PasswordHash: "h", IsActive: true, CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	_, err = repos.TaskRepository.CreateTask(ctx, models.Task{UserID: user.UserID, Title: "t", Priority: "low", CreatedAt: time.Now().UTC()})
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", user.UserID)
	require.NoError(t, err)

	tasks, err := repos.TaskRepository.ListTasks(ctx, user.UserID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
