package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/crypto"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/models"
	"github.com/golang-jwt/jwt/v5"
)

// dummyPassword is hashed once and verified against when a login names an
// unknown user, so both failure paths cost one bcrypt comparison.
const dummyPassword = "go-task-manager/dummy-password"

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, JWT issuance and
// per-request identity resolution.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// transactor scopes registration and login to one transaction.
	transactor store.Transactor

	// hasher produces and checks password digests.
	hasher crypto.PasswordHasher

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// now is the service clock: UTC, truncated to what the database stores.
	now func() time.Time

	dummyDigestOnce sync.Once
	dummyDigest     string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// repositories and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use.
func NewAuthService(repositories *store.Repositories, hasher crypto.PasswordHasher, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: repositories.UserRepository,
		transactor:     repositories.Transactor,
		hasher:         hasher,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		now:            now,
		logger:         logger,
	}
}

// RegisterUser creates a new active user account.
//
// The username is checked before the email, so a request colliding on both
// reports the username. The unique constraints of the users table stay the
// final arbiter for concurrent registrations.
//
// Returns the persisted user or:
//   - store.ErrUsernameTaken / store.ErrEmailTaken on a collision.
//   - ErrInvalidDataProvided if the password is longer than bcrypt accepts.
//   - ErrHashingPassword if the password cannot be hashed.
//   - a wrapped storage error otherwise.
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	passwordHash, err := a.hasher.Hash(req.Password)
	if errors.Is(err, crypto.ErrPasswordTooLong) {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Msg("error hashing password")
		return models.User{}, fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}

	var registered models.User
	err = a.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := a.ensureAvailable(ctx, a.userRepository.FindUserByUsername, req.Username, store.ErrUsernameTaken); err != nil {
			return err
		}
		if err := a.ensureAvailable(ctx, a.userRepository.FindUserByEmail, req.Email, store.ErrEmailTaken); err != nil {
			return err
		}

		created, err := a.userRepository.CreateUser(ctx, models.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: passwordHash,
			IsActive:     true,
			CreatedAt:    a.now(),
		})
		if err != nil {
			return err
		}

		registered = created
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Str("username", req.Username).Msg("user registration failed")
		return models.User{}, fmt.Errorf("user registration failed: %w", err)
	}

	return registered, nil
}

// ensureAvailable returns taken when find locates a user by value.
func (a *authService) ensureAvailable(ctx context.Context, find func(context.Context, string) (models.User, error), value string, taken error) error {
	_, err := find(ctx, value)
	switch {
	case err == nil:
		return taken
	case errors.Is(err, store.ErrNoUserWasFound):
		return nil
	default:
		return err
	}
}

// Login authenticates a user by username and password.
//
// An unknown username and a wrong password both yield ErrInvalidCredentials.
// Inactive accounts may log in; they are rejected by Authorize instead.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	err := a.transactor.WithinTx(ctx, func(ctx context.Context) error {
		user, err := a.userRepository.FindUserByUsername(ctx, req.Username)
		if err != nil {
			return err
		}

		found = user
		return nil
	})
	if errors.Is(err, store.ErrNoUserWasFound) {
		a.hasher.Verify(req.Password, a.dummyPasswordDigest())
		log.Info().Str("func", "*authService.Login").Msg("login with unknown username")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !a.hasher.Verify(req.Password, found.PasswordHash) {
		log.Info().Str("func", "*authService.Login").Int64("id", found.UserID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return found, nil
}

func (a *authService) dummyPasswordDigest() string {
	a.dummyDigestOnce.Do(func() {
		digest, err := a.hasher.Hash(dummyPassword)
		if err != nil {
			a.logger.Err(err).Str("func", "*authService.dummyPasswordDigest").Msg("error hashing dummy password")
			return
		}
		a.dummyDigest = digest
	})

	return a.dummyDigest
}

// CreateToken issues a signed JWT whose subject is the user's username.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.Username, a.tokenDuration, a.tokenSignKey, a.now())
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Authorize verifies tokenString, loads the user named by its subject and
// checks that the account is active. The cause of a failure is logged but
// never returned.
func (a *authService) Authorize(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, jwt.WithTimeFunc(a.now))
	if err != nil {
		log.Debug().Err(err).Str("func", "*authService.Authorize").Msg("invalid token")
		return models.User{}, ErrUnauthorized
	}

	user, err := a.userRepository.FindUserByUsername(ctx, token.Username)
	if err != nil {
		if !errors.Is(err, store.ErrNoUserWasFound) {
			log.Err(err).Str("func", "*authService.Authorize").Msg("user lookup failed")
		}
		return models.User{}, ErrUnauthorized
	}

	if !user.IsActive {
		log.Info().Str("func", "*authService.Authorize").Int64("id", user.UserID).Msg("inactive user")
		return models.User{}, ErrUnauthorized
	}

	return user, nil
}
