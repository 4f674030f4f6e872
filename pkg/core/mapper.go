package core

import "sort"

// Hydrate lifts a raw driver row into a record of the given model, setting
// each column with the scalar the driver returned and no further coercion.
// Columns are assigned in sorted name order so a hydrated record's column
// list is deterministic regardless of map iteration. The validation hook is
// not consulted: the row already came from storage.
func Hydrate(m *Model, row Row) (*Record, error) {
	columns := make([]string, 0, len(row))
	for column := range row {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	rec := m.New()
	for _, column := range columns {
		v, err := FromDriver(row[column])
		if err != nil {
			return nil, err
		}
		rec.put(column, v)
	}
	return rec, nil
}
