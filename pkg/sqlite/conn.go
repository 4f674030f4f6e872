// Package sqlite provides the one supported Morgan backend: a single
// synchronous database/sql handle over mattn/go-sqlite3 implementing
// core.Connection. No pooling, no retries; driver errors propagate to the
// caller unmodified.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"

	"github.com/morgan-orm/morgan/pkg/core"
)

// Conn wraps one live *sql.DB handle.
// Concurrent use from multiple goroutines is the caller's problem to
// serialize; this layer adds no locking.
type Conn struct {
	db     *sql.DB
	logger *log.Logger
}

var _ core.Connection = (*Conn)(nil)

// Open establishes the handle described by cfg. Only the SQLite backend is
// accepted, and the database target must be set.
func Open(cfg core.Config) (*Conn, error) {
	if cfg.Backend != core.BackendSQLite {
		return nil, fmt.Errorf("sqlite: unsupported backend %q", cfg.Backend)
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("sqlite: config has no database target")
	}
	db, err := sql.Open("sqlite3", cfg.Database)
	if err != nil {
		return nil, err
	}
	return &Conn{db: db}, nil
}

// New wraps an existing handle, e.g. a mock driver in tests.
func New(db *sql.DB) *Conn {
	return &Conn{db: db}
}

// SetLogger installs a statement logger. When set, every statement and its
// parameters are logged before execution.
func (c *Conn) SetLogger(l *log.Logger) {
	c.logger = l
}

// Close releases the underlying handle.
func (c *Conn) Close() error {
	return c.db.Close()
}

// Query executes a read statement and returns every result row as a
// column-to-scalar map, in database order.
func (c *Conn) Query(ctx context.Context, query string, params []any) ([]core.Row, error) {
	c.logf(query, params)
	rows, err := c.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return readRows(rows)
}

// Exec executes a write statement and reports the affected-row count and the
// last insert id.
func (c *Conn) Exec(ctx context.Context, query string, params []any) (core.Result, error) {
	c.logf(query, params)
	res, err := c.db.ExecContext(ctx, query, params...)
	if err != nil {
		return core.Result{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return core.Result{}, err
	}
	last, err := res.LastInsertId()
	if err != nil {
		return core.Result{}, err
	}
	return core.Result{RowsAffected: affected, LastInsertID: last}, nil
}

func (c *Conn) logf(query string, params []any) {
	if c.logger != nil {
		c.logger.Printf("sql: %s params: %v", query, params)
	}
}

// readRows scans every row into a core.Row map, normalizing SQLite's storage
// classes: BOOLEAN columns arrive as int64 0/1 and become bool, INTEGER and
// REAL keep the driver's int64 and float64, NULL is nil. Any []byte —
// whatever the declared type — becomes string, since the value domain has no
// raw-bytes variant.
func readRows(rows *sql.Rows) ([]core.Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	var results []core.Row
	for rows.Next() {
		values := make([]any, len(columns))
		scanArgs := make([]any, len(columns))
		for i := range values {
			scanArgs[i] = &values[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, err
		}

		row := make(core.Row, len(columns))
		for i, column := range columns {
			row[column] = normalize(values[i], columnTypes[i].DatabaseTypeName())
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func normalize(val any, declaredType string) any {
	if val == nil {
		return nil
	}
	if declaredType == "BOOLEAN" {
		if intVal, ok := val.(int64); ok {
			return intVal != 0
		}
	}
	if byteVal, ok := val.([]byte); ok {
		return string(byteVal)
	}
	return val
}
