package core

import "errors"

var (
	// ErrParamMismatch reports a ? placeholder count that does not match the
	// number of supplied parameters. Detected when the statement is rendered,
	// not when the fragment is added.
	ErrParamMismatch = errors.New("morgan: placeholder count does not match parameter count")

	// ErrBuilderConflict reports Update and Delete requested on the same chain.
	ErrBuilderConflict = errors.New("morgan: update and delete are mutually exclusive on one builder")

	// ErrNoMutation reports Exec on a builder that has no pending mutation.
	ErrNoMutation = errors.New("morgan: exec on a builder with no update or delete payload")

	// ErrReadOnWrite reports Get on a builder already marked for a mutation.
	ErrReadOnWrite = errors.New("morgan: get on a builder holding a mutation payload")

	// ErrBadOrder reports an ordering direction other than ASC or DESC.
	ErrBadOrder = errors.New("morgan: order direction must be ASC or DESC")

	// ErrBadLimit reports a negative row limit.
	ErrBadLimit = errors.New("morgan: limit must be non-negative")

	// ErrBadOffset reports a negative row offset.
	ErrBadOffset = errors.New("morgan: offset must be non-negative")

	// ErrNotPersisted reports Delete on a record whose primary key is unset.
	ErrNotPersisted = errors.New("morgan: cannot delete an unsaved record")

	// ErrEmptyRecord reports Save on a record with no assigned columns.
	ErrEmptyRecord = errors.New("morgan: record has no assigned columns")

	// ErrNoTable reports a model registered without a table name.
	ErrNoTable = errors.New("morgan: schema requires a table name")

	// ErrBadDriverValue reports a driver scalar outside the supported variants.
	ErrBadDriverValue = errors.New("morgan: unsupported driver value type")
)
