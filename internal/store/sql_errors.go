package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorKind is the engine-independent category of a driver error.
type ErrorKind int

const (
	// KindUnknown is any error not recognised below.
	KindUnknown ErrorKind = iota
	// KindUniqueViolation is a unique or primary key constraint violation.
	KindUniqueViolation
	// KindForeignKeyViolation is a foreign key constraint violation.
	KindForeignKeyViolation
	// KindNotNullViolation is a NOT NULL constraint violation.
	KindNotNullViolation
)

// ErrorClassification is the result of [ErrorClassificator.Classify].
type ErrorClassification struct {
	Kind ErrorKind
	// Column is the violated column when the driver reports it, e.g. "email".
	Column string
}

// ErrorClassificator maps driver-specific errors to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// constraintColumns maps named constraints of the schema to their column.
var constraintColumns = map[string]string{
	"users_username_key": "username",
	"users_email_key":    "email",
}

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
// It inspects the SQLSTATE code of a *pgconn.PgError.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ErrorClassification{}
	}

	column := pgErr.ColumnName
	if mapped, ok := constraintColumns[pgErr.ConstraintName]; ok {
		column = mapped
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return ErrorClassification{Kind: KindUniqueViolation, Column: column}
	case pgerrcode.ForeignKeyViolation:
		return ErrorClassification{Kind: KindForeignKeyViolation, Column: column}
	case pgerrcode.NotNullViolation:
		return ErrorClassification{Kind: KindNotNullViolation, Column: column}
	}

	return ErrorClassification{}
}

// SQLiteErrorClassifier implements [ErrorClassificator] for SQLite.
//
// It works on the error text so that the package builds without cgo, in
// which case go-sqlite3 only ships a stub driver. SQLite names the failed
// column in the message, e.g. "UNIQUE constraint failed: users.email".
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier] ready for use.
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

var sqliteConstraintKinds = []struct {
	prefix string
	kind   ErrorKind
}{
	{prefix: "UNIQUE constraint failed", kind: KindUniqueViolation},
	{prefix: "PRIMARY KEY constraint failed", kind: KindUniqueViolation},
	{prefix: "FOREIGN KEY constraint failed", kind: KindForeignKeyViolation},
	{prefix: "NOT NULL constraint failed", kind: KindNotNullViolation},
}

// Classify implements [ErrorClassificator].
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return ErrorClassification{}
	}

	message := err.Error()
	for _, k := range sqliteConstraintKinds {
		if strings.Contains(message, k.prefix) {
			return ErrorClassification{Kind: k.kind, Column: sqliteColumn(message)}
		}
	}

	return ErrorClassification{}
}

// sqliteColumn extracts "email" from "UNIQUE constraint failed: users.email".
// Multi-column messages yield the first column.
func sqliteColumn(message string) string {
	_, failed, found := strings.Cut(message, "constraint failed: ")
	if !found {
		return ""
	}

	first, _, _ := strings.Cut(failed, ",")
	_, column, found := strings.Cut(strings.TrimSpace(first), ".")
	if !found {
		return ""
	}

	return column
}
