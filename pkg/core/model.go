package core

import "context"

// ValidateFunc optionally vets a column assignment before it is applied to a
// record. A nil hook accepts everything; this layer performs no schema
// validation of its own.
type ValidateFunc func(column string, v Value) error

// Schema carries the metadata that binds a model to its table: the table
// name, the primary key column (defaults to "id"), and the optional
// assignment validation hook.
type Schema struct {
	Table      string
	PrimaryKey string
	Validate   ValidateFunc
}

// Model is a schema-bound entry point. All queries it starts hydrate into
// records of this model, and all records it creates write to its table.
type Model struct {
	schema Schema
	conn   Connection
}

// NewModel registers a schema against a connection. The table name is
// required; the primary key column defaults to "id" when unset.
func NewModel(schema Schema, conn Connection) (*Model, error) {
	if schema.Table == "" {
		return nil, ErrNoTable
	}
	if schema.PrimaryKey == "" {
		schema.PrimaryKey = "id"
	}
	return &Model{schema: schema, conn: conn}, nil
}

// Table returns the bound table name.
func (m *Model) Table() string { return m.schema.Table }

// PrimaryKey returns the primary key column name.
func (m *Model) PrimaryKey() string { return m.schema.PrimaryKey }

// New returns an empty, unsaved record bound to this model.
func (m *Model) New() *Record {
	return &Record{model: m, values: make(map[string]Value)}
}

// Where starts a builder chain with a first filter fragment.
func (m *Model) Where(expr string, params ...any) *Builder {
	return newBuilder(m).Where(expr, params...)
}

// All fetches every row of the table, in database order.
func (m *Model) All(ctx context.Context) ([]*Record, error) {
	return newBuilder(m).Get(ctx)
}

// GetByPK fetches the record whose primary key equals pk. No match returns
// (nil, nil): absence is a normal outcome, not an error. Should the key ever
// match several rows, the first row wins; uniqueness is the table's problem.
func (m *Model) GetByPK(ctx context.Context, pk Value) (*Record, error) {
	records, err := m.Where(m.schema.PrimaryKey+" = ?", pk.Driver()).Limit(1).Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}
