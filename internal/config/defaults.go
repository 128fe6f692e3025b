package config

import (
	"strings"
	"time"
)

const (
	defaultDotEnvPath      = ".env"
	defaultTokenIssuer     = "go-task-manager"
	defaultTokenDuration   = 30 * time.Minute
	defaultVersion         = "1.0.0"
	defaultLogLevel        = "debug"
	defaultHTTPAddress     = ":8080"
	defaultShutdownTimeout = 5 * time.Second
	defaultAdapterAddress  = "http://localhost:8080"
	defaultAdapterTimeout  = 10 * time.Second
	defaultTokenFile       = ".task-manager-token"
)

// defaults returns the values used for every field no source has set.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   defaultTokenIssuer,
			TokenDuration: defaultTokenDuration,
			Version:       defaultVersion,
			LogLevel:      defaultLogLevel,
		},
		Server: Server{
			HTTPAddress:     defaultHTTPAddress,
			ShutdownTimeout: defaultShutdownTimeout,
			AllowedOrigins:  []string{"*"},
		},
		Adapter: Adapter{
			HTTPAddress:    defaultAdapterAddress,
			RequestTimeout: defaultAdapterTimeout,
			TokenFile:      defaultTokenFile,
		},
	}
}

// inferDriver picks the database driver for dsn: PostgreSQL URLs and
// key/value connection strings select pgx, everything else sqlite3.
func inferDriver(dsn string) string {
	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DriverPostgres
	case strings.Contains(lower, "host=") && strings.Contains(lower, "dbname="):
		return DriverPostgres
	default:
		return DriverSQLite
	}
}
