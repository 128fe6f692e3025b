// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/crypto"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/mock"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

// passthroughTx makes the transactor mock run fn directly.
func passthroughTx(tx *mock.MockTransactor) {
	tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()
}

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockUserRepository, *mock.MockPasswordHasher) {
	t.Helper()

	users := mock.NewMockUserRepository(ctrl)
	hasher := mock.NewMockPasswordHasher(ctrl)
	tx := mock.NewMockTransactor(ctrl)
	passthroughTx(tx)

	repositories := &store.Repositories{UserRepository: users, Transactor: tx}
	svc := NewAuthService(repositories, hasher, config.App{
		TokenSignKey:  "secret",
		TokenIssuer:   "go-task-manager",
		TokenDuration: 30 * time.Minute,
	}, logger.Nop()).(*authService)
	svc.now = func() time.Time { return testNow }

	return svc, users, hasher
}

// ── RegisterUser ─────────────────────────────────────────────────────────────

func TestAuthService_RegisterUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, hasher := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	req := models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "s3cret"}

	gomock.InOrder(
		hasher.EXPECT().Hash("s3cret").Return("digest", nil),
		users.EXPECT().FindUserByUsername(gomock.Any(), "alice").Return(models.User{}, store.ErrNoUserWasFound),
		users.EXPECT().FindUserByEmail(gomock.Any(), "alice@example.com").Return(models.User{}, store.ErrNoUserWasFound),
		users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				assert.Equal(t, "digest", u.PasswordHash)
				assert.True(t, u.IsActive)
				assert.Equal(t, testNow, u.CreatedAt)
				u.UserID = 1
				return u, nil
			},
		),
	)

	user, err := svc.RegisterUser(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.UserID)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthService_RegisterUser_UsernameCheckedFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, hasher := newTestAuthSvc(t, ctrl)

	hasher.EXPECT().Hash(gomock.Any()).Return("digest", nil)
	users.EXPECT().FindUserByUsername(gomock.Any(), "alice").Return(models.User{UserID: 1}, nil)

	_, err := svc.RegisterUser(context.Background(), models.RegisterRequest{Username: "alice", Email: "taken@example.com", Password: "pw"})
	assert.ErrorIs(t, err, store.ErrUsernameTaken)
}

func TestAuthService_RegisterUser_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, hasher := newTestAuthSvc(t, ctrl)

	hasher.EXPECT().Hash(gomock.Any()).Return("digest", nil)
	users.EXPECT().FindUserByUsername(gomock.Any(), "bob").Return(models.User{}, store.ErrNoUserWasFound)
	users.EXPECT().FindUserByEmail(gomock.Any(), "alice@example.com").Return(models.User{UserID: 1}, nil)

	_, err := svc.RegisterUser(context.Background(), models.RegisterRequest{Username: "bob", Email: "alice@example.com", Password: "pw"})
	assert.ErrorIs(t, err, store.ErrEmailTaken)
}

func TestAuthService_RegisterUser_ConstraintRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, hasher := newTestAuthSvc(t, ctrl)

	hasher.EXPECT().Hash(gomock.Any()).Return("digest", nil)
	users.EXPECT().FindUserByUsername(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrNoUserWasFound)
	users.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrNoUserWasFound)
	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrUsernameTaken)

	_, err := svc.RegisterUser(context.Background(), models.RegisterRequest{Username: "a", Email: "a@b.c", Password: "pw"})
	assert.ErrorIs(t, err, store.ErrUsernameTaken)
}

func TestAuthService_RegisterUser_PasswordTooLong(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, hasher := newTestAuthSvc(t, ctrl)

	hasher.EXPECT().Hash(gomock.Any()).Return("", crypto.ErrPasswordTooLong)

	_, err := svc.RegisterUser(context.Background(), models.RegisterRequest{Username: "a", Email: "a@b.c", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.NotErrorIs(t, err, ErrHashingPassword)
}

func TestAuthService_RegisterUser_HashError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, hasher := newTestAuthSvc(t, ctrl)

	hasher.EXPECT().Hash(gomock.Any()).Return("", errors.New("rand: entropy exhausted"))

	_, err := svc.RegisterUser(context.Background(), models.RegisterRequest{Username: "a", Email: "a@b.c", Password: "pw"})
	assert.ErrorIs(t, err, ErrHashingPassword)
}

func TestAuthService_RegisterUser_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, hasher := newTestAuthSvc(t, ctrl)
	errDB := errors.New("db down")

	hasher.EXPECT().Hash(gomock.Any()).Return("digest", nil)
	users.EXPECT().FindUserByUsername(gomock.Any(), gomock.Any()).Return(models.User{}, errDB)

	_, err := svc.RegisterUser(context.Background(), models.RegisterRequest{Username: "a", Email: "a@b.c", Password: "pw"})
	assert.ErrorIs(t, err, errDB)
	assert.NotErrorIs(t, err, store.ErrUsernameTaken)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, hasher := newTestAuthSvc(t, ctrl)

	stored := models.User{UserID: 3, Username: "alice", PasswordHash: "digest", IsActive: true}
	users.EXPECT().FindUserByUsername(gomock.Any(), "alice").Return(stored, nil)
	hasher.EXPECT().Verify("pw", "digest").Return(true)

	user, err := svc.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, stored, user)
}

func TestAuthService_Login_FailuresAreUniform(t *testing.T) {
	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, users, hasher := newTestAuthSvc(t, ctrl)

		users.EXPECT().FindUserByUsername(gomock.Any(), "alice").Return(models.User{PasswordHash: "digest"}, nil)
		hasher.EXPECT().Verify("bad", "digest").Return(false)

		_, err := svc.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "bad"})
		assert.Equal(t, ErrInvalidCredentials, err)
	})

	t.Run("unknown user still verifies once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, users, hasher := newTestAuthSvc(t, ctrl)

		users.EXPECT().FindUserByUsername(gomock.Any(), "ghost").Return(models.User{}, store.ErrNoUserWasFound).Times(2)
		hasher.EXPECT().Hash(dummyPassword).Return("dummy-digest", nil).Times(1)
		hasher.EXPECT().Verify("pw", "dummy-digest").Return(false).Times(2)

		for range 2 {
			_, err := svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "pw"})
			assert.Equal(t, ErrInvalidCredentials, err)
		}
	})
}

func TestAuthService_Login_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestAuthSvc(t, ctrl)

	users.EXPECT().FindUserByUsername(gomock.Any(), gomock.Any()).Return(models.User{}, errors.New("db down"))

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "pw"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

// ── CreateToken / Authorize ──────────────────────────────────────────────────

func TestAuthService_CreateToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthSvc(t, ctrl)

	token, err := svc.CreateToken(context.Background(), models.User{Username: "alice"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, "alice", token.Subject)
	assert.Equal(t, testNow.Add(30*time.Minute), token.ExpiresAt.Time)

	_, err = svc.CreateToken(context.Background(), models.User{})
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestAuthService_Authorize(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{Username: "alice"})
	require.NoError(t, err)

	t.Run("active user", func(t *testing.T) {
		users.EXPECT().FindUserByUsername(gomock.Any(), "alice").Return(models.User{UserID: 1, Username: "alice", IsActive: true}, nil)

		user, err := svc.Authorize(ctx, token.SignedString)
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.UserID)
	})

	t.Run("inactive user", func(t *testing.T) {
		users.EXPECT().FindUserByUsername(gomock.Any(), "alice").Return(models.User{UserID: 1, IsActive: false}, nil)

		_, err := svc.Authorize(ctx, token.SignedString)
		assert.Equal(t, ErrUnauthorized, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		users.EXPECT().FindUserByUsername(gomock.Any(), "alice").Return(models.User{}, store.ErrNoUserWasFound)

		_, err := svc.Authorize(ctx, token.SignedString)
		assert.Equal(t, ErrUnauthorized, err)
	})

	t.Run("lookup failure", func(t *testing.T) {
		users.EXPECT().FindUserByUsername(gomock.Any(), "alice").Return(models.User{}, errors.New("db down"))

		_, err := svc.Authorize(ctx, token.SignedString)
		assert.Equal(t, ErrUnauthorized, err)
	})

	t.Run("tampered token", func(t *testing.T) {
		raw := []byte(token.SignedString)
		raw[len(raw)-2] ^= 0x01

		_, err := svc.Authorize(ctx, string(raw))
		assert.Equal(t, ErrUnauthorized, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Authorize(ctx, "not-a-token")
		assert.Equal(t, ErrUnauthorized, err)
	})

	t.Run("expired", func(t *testing.T) {
		svc.now = func() time.Time { return testNow.Add(31 * time.Minute) }
		defer func() { svc.now = func() time.Time { return testNow } }()

		_, err := svc.Authorize(ctx, token.SignedString)
		assert.Equal(t, ErrUnauthorized, err)
	})

	t.Run("signed with another key", func(t *testing.T) {
		foreign, err := utils.GenerateJWTToken(svc.tokenIssuer, "alice", time.Minute, "other-secret", testNow)
		require.NoError(t, err)

		_, err = svc.Authorize(ctx, foreign.SignedString)
		assert.Equal(t, ErrUnauthorized, err)
	})
}

func TestAuthService_WithBcrypt(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	tx := mock.NewMockTransactor(ctrl)
	passthroughTx(tx)

	svc := NewAuthService(&store.Repositories{UserRepository: users, Transactor: tx}, crypto.NewBcryptHasher(4), config.App{
		TokenSignKey: "secret", TokenIssuer: "go-task-manager", TokenDuration: time.Minute,
	}, logger.Nop())

	var stored models.User
	users.EXPECT().FindUserByUsername(gomock.Any(), "alice").Return(models.User{}, store.ErrNoUserWasFound)
	users.EXPECT().FindUserByEmail(gomock.Any(), "alice@example.com").Return(models.User{}, store.ErrNoUserWasFound)
	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
		u.UserID = 1
		stored = u
		return u, nil
	})

	_, err := svc.RegisterUser(context.Background(), models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.NotEqual(t, "pw", stored.PasswordHash)

	users.EXPECT().FindUserByUsername(gomock.Any(), "alice").DoAndReturn(func(context.Context, string) (models.User, error) {
		return stored, nil
	}).Times(2)

	_, err = svc.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
