package core

import "context"

// Row is a single raw record as returned by the driver: column name to
// scalar value, with the driver's own types preserved.
type Row map[string]any

// Result reports the outcome of a write statement.
type Result struct {
	RowsAffected int64
	LastInsertID int64
}

// Connection is the capability a backend provides: execute one parameterized
// statement and return rows (reads) or a Result (writes). Driver failures
// propagate to the caller unmodified; this layer never retries or wraps them.
type Connection interface {
	Query(ctx context.Context, query string, params []any) ([]Row, error)
	Exec(ctx context.Context, query string, params []any) (Result, error)
}

// Backend names a supported database backend.
type Backend string

const (
	// BackendSQLite is currently the only supported backend.
	BackendSQLite Backend = "sqlite"
)

// Config describes the connection a model's tables live behind: which
// backend, and the target it opens (a file path or ":memory:" for SQLite).
type Config struct {
	Backend  Backend
	Database string
}
