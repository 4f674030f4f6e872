package core

import (
	"context"
	"strings"

	"github.com/samber/lo"
)

// Record is a mutable row image bound to its model: an ordered mapping from
// column name to Value. Assignment order is preserved so writes emit a
// deterministic column list. Only currently-assigned columns participate in
// INSERT and UPDATE; a partially-populated record writes a partial row.
//
// A record counts as persisted iff its primary key column is assigned; that
// state decides whether Save inserts or updates.
type Record struct {
	model   *Model
	columns []string
	values  map[string]Value
}

// Set assigns a column. Columns are not checked against the table schema
// unless the model carries a validation hook; the hook may reject the
// assignment, in which case the record is unchanged.
func (r *Record) Set(column string, v Value) error {
	if fn := r.model.schema.Validate; fn != nil {
		if err := fn(column, v); err != nil {
			return err
		}
	}
	r.put(column, v)
	return nil
}

// put assigns without consulting the validation hook. Hydration and
// driver-generated keys come through here.
func (r *Record) put(column string, v Value) {
	if _, ok := r.values[column]; !ok {
		r.columns = append(r.columns, column)
	}
	r.values[column] = v
}

// Get returns the value of a column and whether it is assigned.
func (r *Record) Get(column string) (Value, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Columns returns the assigned column names in assignment order.
func (r *Record) Columns() []string {
	return append([]string(nil), r.columns...)
}

// PK returns the primary key value and whether it is assigned.
func (r *Record) PK() (Value, bool) {
	return r.Get(r.model.schema.PrimaryKey)
}

// Save persists the record: an INSERT of all assigned columns when the
// primary key is unassigned (the key is then set from the driver's
// last-insert-id), otherwise an UPDATE of the assigned non-key columns
// filtered by the key. An update whose key matches no stored row affects
// zero rows; that is a normal outcome, not an error.
func (r *Record) Save(ctx context.Context) error {
	if _, ok := r.PK(); ok {
		return r.saveUpdate(ctx)
	}
	return r.saveInsert(ctx)
}

func (r *Record) saveInsert(ctx context.Context) error {
	if len(r.columns) == 0 {
		return ErrEmptyRecord
	}
	params := lo.Map(r.columns, func(c string, _ int) any { return r.values[c].Driver() })
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(r.columns)), ", ")

	query := "INSERT INTO " + r.model.Table() +
		" (" + strings.Join(r.columns, ", ") + ") VALUES (" + placeholders + ")"
	res, err := r.model.conn.Exec(ctx, query, params)
	if err != nil {
		return err
	}
	r.put(r.model.PrimaryKey(), Int(res.LastInsertID))
	return nil
}

func (r *Record) saveUpdate(ctx context.Context) error {
	pkColumn := r.model.PrimaryKey()
	pk := r.values[pkColumn]

	rest := lo.Filter(r.columns, func(c string, _ int) bool { return c != pkColumn })
	if len(rest) == 0 {
		return ErrEmptyRecord
	}
	assigns := lo.Map(rest, func(c string, _ int) string { return c + " = ?" })
	params := lo.Map(rest, func(c string, _ int) any { return r.values[c].Driver() })

	_, err := newBuilder(r.model).
		Where(pkColumn+" = ?", pk.Driver()).
		Update(strings.Join(assigns, ", "), params...).
		Exec(ctx)
	return err
}

// Delete removes the stored row whose primary key matches the record's. It
// requires the key to be assigned; deleting an unsaved record is a
// precondition error and performs no database call. The record's in-memory
// values are left untouched.
func (r *Record) Delete(ctx context.Context) error {
	pk, ok := r.PK()
	if !ok {
		return ErrNotPersisted
	}
	_, err := newBuilder(r.model).
		Where(r.model.PrimaryKey()+" = ?", pk.Driver()).
		Delete().
		Exec(ctx)
	return err
}
