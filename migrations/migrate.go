// Package migrations embeds the schema migrations for every supported
// database engine and applies them with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// ErrUnknownDriver is returned for a database/sql driver without migrations.
var ErrUnknownDriver = errors.New("no migrations for driver")

// dialects maps a database/sql driver name to the goose dialect and the
// embedded directory holding its migrations.
var dialects = map[string]struct {
	dialect string
	dir     string
}{
	"pgx":     {dialect: "postgres", dir: "postgres"},
	"sqlite3": {dialect: "sqlite3", dir: "sqlite"},
}

// goose keeps its dialect and filesystem in package state.
var mu sync.Mutex

// Migrate applies every pending migration for driver to db.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("migration error: %w: %q", ErrUnknownDriver, driver)
	}

	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(d.dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.UpContext(ctx, db, d.dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
