package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
)

// sqliteParams are appended to every SQLite DSN: foreign keys are off by
// default in SQLite, and the busy timeout makes concurrent writers wait
// instead of failing with SQLITE_BUSY.
var sqliteParams = []string{"_foreign_keys=on", "_busy_timeout=5000"}

// NewConnectSQLite opens a SQLite database (file or in-memory) and verifies
// it with a ping. Unless cfg.MaxOpenConns says otherwise the pool holds a
// single connection, which also keeps an in-memory database alive for the
// lifetime of the pool.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if err := createLocalDBDirIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database directory")
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	conn, err := sql.Open(config.DriverSQLite, withSQLiteParams(cfg.DSN))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	maxOpenConns := cfg.MaxOpenConns
	if maxOpenConns <= 0 || isInMemory(cfg.DSN) {
		maxOpenConns = 1
	}
	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetConnMaxLifetime(0)

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("error connecting database: %w", err)
	}
	log.Info().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return newDB(conn, config.DriverSQLite, log), nil
}

func withSQLiteParams(dsn string) string {
	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}

	for _, param := range sqliteParams {
		name, _, _ := strings.Cut(param, "=")
		if strings.Contains(dsn, name+"=") {
			continue
		}
		dsn += separator + param
		separator = "&"
	}

	return dsn
}

func isInMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// createLocalDBDirIfNotExists makes sure the directory of a file database
// exists; SQLite creates the file itself but not missing parent directories.
func createLocalDBDirIfNotExists(dsn string) error {
	if isInMemory(dsn) {
		return nil
	}

	path, _, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	dir := filepath.Dir(path)
	if path == "" || dir == "." {
		return nil
	}

	return os.MkdirAll(dir, 0o750)
}
