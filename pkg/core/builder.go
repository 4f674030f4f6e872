package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// fragment is one SQL clause piece with its positional parameters.
type fragment struct {
	expr   string
	params []any
}

// placeholderCheck verifies the fragment's ? count matches its parameter count.
func (f fragment) placeholderCheck() error {
	if n := strings.Count(f.expr, "?"); n != len(f.params) {
		return fmt.Errorf("%w: %q has %d placeholders, %d parameters",
			ErrParamMismatch, f.expr, n, len(f.params))
	}
	return nil
}

type mutation int

const (
	mutationNone mutation = iota
	mutationUpdate
	mutationDelete
)

type ordering struct {
	column    string
	direction string
}

// Builder accumulates clause state for exactly one statement against one
// table. Every chain step returns a fresh snapshot, so a retained builder is
// never affected by calls on its descendants and may be branched freely.
// A builder is either a read builder or a write builder: marking a mutation
// (Update/Delete) forbids Get, and Exec requires a mutation.
//
// Invalid chain steps park a sticky error that surfaces at the terminal call.
type Builder struct {
	model   *Model
	columns []string
	filters []fragment
	order   *ordering
	limit   *int
	offset  *int
	mut     mutation
	assign  fragment
	err     error
}

func newBuilder(m *Model) *Builder {
	return &Builder{model: m}
}

// clone copies the builder, giving the copy its own clause slices so appends
// on one snapshot cannot alias another.
func (b *Builder) clone() *Builder {
	nb := *b
	nb.columns = append([]string(nil), b.columns...)
	nb.filters = make([]fragment, len(b.filters), len(b.filters)+1)
	copy(nb.filters, b.filters)
	return &nb
}

// Select narrows the read projection to the named columns, extending any
// prior selection in call order. With no selection the statement renders
// SELECT *.
func (b *Builder) Select(columns ...string) *Builder {
	nb := b.clone()
	if nb.err != nil {
		return nb
	}
	nb.columns = append(nb.columns, columns...)
	return nb
}

// Where appends a filter fragment. expr is a boolean SQL expression with ?
// placeholders; fragments combine with AND in call order. A placeholder or
// parameter miscount is reported when the statement is rendered.
func (b *Builder) Where(expr string, params ...any) *Builder {
	nb := b.clone()
	if nb.err != nil {
		return nb
	}
	nb.filters = append(nb.filters, fragment{expr: expr, params: params})
	return nb
}

// Limit caps the row count. Last write wins. Zero is a valid cap and renders
// LIMIT 0; a negative n is rejected.
func (b *Builder) Limit(n int) *Builder {
	nb := b.clone()
	if nb.err != nil {
		return nb
	}
	if n < 0 {
		nb.err = fmt.Errorf("%w: %d", ErrBadLimit, n)
		return nb
	}
	nb.limit = &n
	return nb
}

// Offset skips the first n rows. Last write wins; a negative n is rejected.
func (b *Builder) Offset(n int) *Builder {
	nb := b.clone()
	if nb.err != nil {
		return nb
	}
	if n < 0 {
		nb.err = fmt.Errorf("%w: %d", ErrBadOffset, n)
		return nb
	}
	nb.offset = &n
	return nb
}

// OrderBy sets the single ordering key. direction accepts ASC or DESC in any
// case and is normalized to uppercase. Last write wins.
func (b *Builder) OrderBy(column, direction string) *Builder {
	nb := b.clone()
	if nb.err != nil {
		return nb
	}
	dir := strings.ToUpper(direction)
	if dir != "ASC" && dir != "DESC" {
		nb.err = fmt.Errorf("%w: %q", ErrBadOrder, direction)
		return nb
	}
	nb.order = &ordering{column: column, direction: dir}
	return nb
}

// Update marks the builder as a write builder with a SET payload. It does
// not execute; Exec does. Mixing with Delete on the same chain is rejected.
func (b *Builder) Update(assignExpr string, params ...any) *Builder {
	nb := b.clone()
	if nb.err != nil {
		return nb
	}
	if nb.mut == mutationDelete {
		nb.err = ErrBuilderConflict
		return nb
	}
	nb.mut = mutationUpdate
	nb.assign = fragment{expr: assignExpr, params: params}
	return nb
}

// Delete marks the builder as a write builder with a DELETE payload. Mixing
// with Update on the same chain is rejected.
func (b *Builder) Delete() *Builder {
	nb := b.clone()
	if nb.err != nil {
		return nb
	}
	if nb.mut == mutationUpdate {
		nb.err = ErrBuilderConflict
		return nb
	}
	nb.mut = mutationDelete
	return nb
}

// SQL renders the accumulated clause state into one statement and its
// positional parameter sequence without executing it.
func (b *Builder) SQL() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	switch b.mut {
	case mutationUpdate:
		return b.renderUpdate()
	case mutationDelete:
		return b.renderDelete()
	default:
		return b.renderSelect()
	}
}

// Get renders and executes a read, hydrating each returned row into a record
// of the builder's model, in database order. An empty result is an empty
// slice, not an error.
func (b *Builder) Get(ctx context.Context) ([]*Record, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.mut != mutationNone {
		return nil, ErrReadOnWrite
	}
	query, params, err := b.SQL()
	if err != nil {
		return nil, err
	}
	rows, err := b.model.conn.Query(ctx, query, params)
	if err != nil {
		return nil, err
	}
	records := make([]*Record, 0, len(rows))
	for _, row := range rows {
		rec, err := Hydrate(b.model, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Exec renders and executes the pending mutation and returns the affected
// row count. Zero affected rows is a normal outcome.
func (b *Builder) Exec(ctx context.Context) (int64, error) {
	if b.err != nil {
		return 0, b.err
	}
	if b.mut == mutationNone {
		return 0, ErrNoMutation
	}
	query, params, err := b.SQL()
	if err != nil {
		return 0, err
	}
	res, err := b.model.conn.Exec(ctx, query, params)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

func (b *Builder) renderSelect() (string, []any, error) {
	projection := "*"
	if len(b.columns) > 0 {
		projection = strings.Join(b.columns, ", ")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(projection)
	sb.WriteString(" FROM ")
	sb.WriteString(b.model.Table())

	where, params, err := b.renderWhere()
	if err != nil {
		return "", nil, err
	}
	sb.WriteString(where)

	if b.order != nil {
		fmt.Fprintf(&sb, " ORDER BY %s %s", b.order.column, b.order.direction)
	}
	if b.limit != nil {
		fmt.Fprintf(&sb, " LIMIT %d", *b.limit)
	}
	if b.offset != nil {
		if b.limit == nil {
			// SQLite rejects OFFSET without LIMIT; -1 means unbounded.
			sb.WriteString(" LIMIT -1")
		}
		fmt.Fprintf(&sb, " OFFSET %d", *b.offset)
	}
	return sb.String(), params, nil
}

func (b *Builder) renderUpdate() (string, []any, error) {
	if err := b.assign.placeholderCheck(); err != nil {
		return "", nil, err
	}
	where, whereParams, err := b.renderWhere()
	if err != nil {
		return "", nil, err
	}
	query := "UPDATE " + b.model.Table() + " SET " + b.assign.expr + where

	// Statement order: SET placeholders precede WHERE placeholders.
	params := make([]any, 0, len(b.assign.params)+len(whereParams))
	params = append(params, b.assign.params...)
	params = append(params, whereParams...)
	return query, params, nil
}

func (b *Builder) renderDelete() (string, []any, error) {
	where, params, err := b.renderWhere()
	if err != nil {
		return "", nil, err
	}
	return "DELETE FROM " + b.model.Table() + where, params, nil
}

// renderWhere joins filter fragments with AND in call order and concatenates
// their parameters in the same order. Empty when no filters were added.
func (b *Builder) renderWhere() (string, []any, error) {
	if len(b.filters) == 0 {
		return "", nil, nil
	}
	var params []any
	for _, f := range b.filters {
		if err := f.placeholderCheck(); err != nil {
			return "", nil, err
		}
		params = append(params, f.params...)
	}
	exprs := lo.Map(b.filters, func(f fragment, _ int) string { return f.expr })
	return " WHERE " + strings.Join(exprs, " AND "), params, nil
}
