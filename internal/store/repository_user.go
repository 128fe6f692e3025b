package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table. It works with both PostgreSQL and SQLite.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser inserts user and returns the stored row.
//
// Error handling:
//   - unique violation on username → [ErrUsernameTaken].
//   - unique violation on email → [ErrEmailTaken].
//   - unique violation on an unknown column → [ErrUserAlreadyExists].
//   - anything else → wrapped [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(r.db.builder, user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	r.db.logQuery(ctx, query, args)

	created, err := scanUser(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, r.mapInsertError(err)
	}

	return created, nil
}

func (r *userRepository) mapInsertError(err error) error {
	classification := r.db.errorClassificator.Classify(err)
	if classification.Kind != KindUniqueViolation {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	switch classification.Column {
	case "username":
		return ErrUsernameTaken
	case "email":
		return ErrEmailTaken
	default:
		return ErrUserAlreadyExists
	}
}

// FindUserByUsername implements [UserRepository].
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, "username", username)
}

// FindUserByEmail implements [UserRepository].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "email", email)
}

func (r *userRepository) findUser(ctx context.Context, column, value string) (models.User, error) {
	log := logger.FromContext(ctx).With().Str("func", "*userRepository.findUser").Str("column", column).Logger()

	query, args, err := buildSelectUserQuery(r.db.builder, column, value)
	if err != nil {
		log.Err(err).Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	r.db.logQuery(ctx, query, args)

	user, err := scanUser(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Msg("error selecting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}
