package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/migrations"
	sq "github.com/Masterminds/squirrel"
)

// DB wraps the connection pool together with everything that differs between
// the supported engines: the driver name, the SQL placeholder style and the
// driver error classifier.
type DB struct {
	*sql.DB
	driver             string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB opens the database described by cfg using the driver named in
// cfg.Driver.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// newDB wraps an already opened pool. Tests use it with go-sqlmock.
func newDB(conn *sql.DB, driver string, log *logger.Logger) *DB {
	db := &DB{
		DB:     conn,
		driver: driver,
		logger: log,
	}

	switch driver {
	case config.DriverSQLite:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
		db.errorClassificator = NewSQLiteErrorClassifier()
	default:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		db.errorClassificator = NewPostgresErrorClassifier()
	}

	return db
}

// Driver returns the database/sql driver name of the pool.
func (db *DB) Driver() string {
	return db.driver
}

// Migrate applies all pending schema migrations for the pool's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.driver)
}

// querier is the subset of *sql.DB and *sql.Tx used by repositories.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txCtxKey struct{}

// conn returns the transaction carried by ctx, or the pool itself when ctx
// is outside of [DB.WithinTx].
func (db *DB) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txCtxKey{}).(*sql.Tx); ok {
		return tx
	}

	return db.DB
}

// WithinTx implements [Transactor]. It begins a transaction, runs fn with a
// context carrying it, and commits when fn returns nil. Any error or panic
// in fn rolls the whole transaction back. Nested calls join the outer
// transaction.
func (db *DB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txCtxKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*DB.WithinTx").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Err(rbErr).Str("func", "*DB.WithinTx").Msg("error rolling back transaction")
			}
		}
	}()

	if err = fn(context.WithValue(ctx, txCtxKey{}, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*DB.WithinTx").Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// logQuery writes the statement at debug level. Arguments are not logged
// because they may carry password hashes.
func (db *DB) logQuery(ctx context.Context, query string, args []any) {
	logger.FromContext(ctx).Debug().
		Str("driver", db.driver).
		Str("query", query).
		Int("args", len(args)).
		Msg("executing sql")
}
