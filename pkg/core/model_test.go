package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNewModelRequiresTable(t *testing.T) {
	if _, err := NewModel(Schema{}, &stubConn{}); !errors.Is(err, ErrNoTable) {
		t.Fatalf("err = %v, want ErrNoTable", err)
	}
}

func TestNewModelDefaultsPrimaryKey(t *testing.T) {
	m, err := NewModel(Schema{Table: "users"}, &stubConn{})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	if m.PrimaryKey() != "id" {
		t.Errorf("PrimaryKey() = %q, want %q", m.PrimaryKey(), "id")
	}
}

func TestAllRendersBareSelect(t *testing.T) {
	conn := &stubConn{}
	m := newTestModel(t, conn)

	if _, err := m.All(context.Background()); err != nil {
		t.Fatalf("All: %v", err)
	}
	if want := "SELECT * FROM users"; conn.queries[0] != want {
		t.Errorf("query = %q, want %q", conn.queries[0], want)
	}
	assertParams(t, conn.params[0], nil)
}

func TestGetByPK(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		conn := &stubConn{rows: []Row{{"id": int64(7), "name": "Eve"}}}
		m := newTestModel(t, conn)

		rec, err := m.GetByPK(context.Background(), Int(7))
		if err != nil {
			t.Fatalf("GetByPK: %v", err)
		}
		if rec == nil {
			t.Fatal("rec = nil, want a record")
		}
		if want := "SELECT * FROM users WHERE id = ? LIMIT 1"; conn.queries[0] != want {
			t.Errorf("query = %q, want %q", conn.queries[0], want)
		}
		assertParams(t, conn.params[0], []any{int64(7)})
		name, _ := rec.Get("name")
		if s, _ := name.AsString(); s != "Eve" {
			t.Errorf("name = %q, want %q", s, "Eve")
		}
	})

	t.Run("absence is nil not error", func(t *testing.T) {
		m := newTestModel(t, &stubConn{})
		rec, err := m.GetByPK(context.Background(), Int(404))
		if err != nil {
			t.Fatalf("GetByPK: %v", err)
		}
		if rec != nil {
			t.Fatalf("rec = %#v, want nil", rec)
		}
	})
}

func TestSaveInsertsWhenKeyUnset(t *testing.T) {
	conn := &stubConn{result: Result{RowsAffected: 1, LastInsertID: 42}}
	m := newTestModel(t, conn)

	rec := m.New()
	if err := rec.Set("name", String("Alice")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := rec.Set("age", Int(25)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := rec.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if want := "INSERT INTO users (name, age) VALUES (?, ?)"; conn.queries[0] != want {
		t.Errorf("query = %q, want %q", conn.queries[0], want)
	}
	assertParams(t, conn.params[0], []any{"Alice", int64(25)})

	pk, ok := rec.PK()
	if !ok {
		t.Fatal("primary key not set after insert")
	}
	if id, _ := pk.AsInt(); id != 42 {
		t.Errorf("pk = %d, want 42", id)
	}
}

func TestSaveUpdatesWhenKeySet(t *testing.T) {
	conn := &stubConn{result: Result{RowsAffected: 1}}
	m := newTestModel(t, conn)

	rec := m.New()
	rec.Set("id", Int(42))
	rec.Set("name", String("Alice"))
	rec.Set("age", Int(26))
	if err := rec.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if want := "UPDATE users SET name = ?, age = ? WHERE id = ?"; conn.queries[0] != want {
		t.Errorf("query = %q, want %q", conn.queries[0], want)
	}
	// Assignment params first, key filter param last.
	assertParams(t, conn.params[0], []any{"Alice", int64(26), int64(42)})
}

func TestSaveEmptyRecord(t *testing.T) {
	m := newTestModel(t, &stubConn{})
	if err := m.New().Save(context.Background()); !errors.Is(err, ErrEmptyRecord) {
		t.Fatalf("err = %v, want ErrEmptyRecord", err)
	}

	keyOnly := m.New()
	keyOnly.Set("id", Int(1))
	if err := keyOnly.Save(context.Background()); !errors.Is(err, ErrEmptyRecord) {
		t.Fatalf("key-only record: err = %v, want ErrEmptyRecord", err)
	}
}

func TestDeleteRequiresPrimaryKey(t *testing.T) {
	conn := &stubConn{}
	m := newTestModel(t, conn)

	rec := m.New()
	rec.Set("name", String("ghost"))
	if err := rec.Delete(context.Background()); !errors.Is(err, ErrNotPersisted) {
		t.Fatalf("err = %v, want ErrNotPersisted", err)
	}
	if len(conn.queries) != 0 {
		t.Fatalf("unsaved delete must not reach the connection; got %v", conn.queries)
	}
}

func TestDeleteByPrimaryKey(t *testing.T) {
	conn := &stubConn{result: Result{RowsAffected: 1}}
	m := newTestModel(t, conn)

	rec := m.New()
	rec.Set("id", Int(9))
	rec.Set("name", String("Bob"))
	if err := rec.Delete(context.Background()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if want := "DELETE FROM users WHERE id = ?"; conn.queries[0] != want {
		t.Errorf("query = %q, want %q", conn.queries[0], want)
	}
	// In-memory values survive the delete.
	if _, ok := rec.Get("name"); !ok {
		t.Error("name cleared after delete; record values must be untouched")
	}
}

func TestValidationHookRejectsAtSet(t *testing.T) {
	schema := Schema{
		Table: "users",
		Validate: func(column string, v Value) error {
			if column == "age" && v.Kind() != KindInt {
				return fmt.Errorf("age must be an integer, got %s", v.Kind())
			}
			return nil
		},
	}
	m, err := NewModel(schema, &stubConn{})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	rec := m.New()
	if err := rec.Set("age", String("old")); err == nil {
		t.Fatal("Set accepted a value the hook rejects")
	}
	if _, ok := rec.Get("age"); ok {
		t.Fatal("rejected assignment must leave the record unchanged")
	}
	if err := rec.Set("age", Int(30)); err != nil {
		t.Fatalf("Set: %v", err)
	}
}

func TestRecordColumnsKeepAssignmentOrder(t *testing.T) {
	m := newTestModel(t, &stubConn{})

	rec := m.New()
	rec.Set("b", Int(1))
	rec.Set("a", Int(2))
	rec.Set("b", Int(3)) // reassignment keeps the original position

	cols := rec.Columns()
	if len(cols) != 2 || cols[0] != "b" || cols[1] != "a" {
		t.Fatalf("Columns() = %v, want [b a]", cols)
	}
	v, _ := rec.Get("b")
	if i, _ := v.AsInt(); i != 3 {
		t.Errorf("b = %d, want 3", i)
	}
}

func TestHydrateSortsColumnsAndLiftsScalars(t *testing.T) {
	m := newTestModel(t, &stubConn{})

	rec, err := Hydrate(m, Row{
		"name":    "Alice",
		"id":      int64(1),
		"balance": 10.5,
		"active":  true,
		"note":    nil,
	})
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}

	cols := rec.Columns()
	want := []string{"active", "balance", "id", "name", "note"}
	for i, c := range want {
		if cols[i] != c {
			t.Fatalf("Columns() = %v, want %v", cols, want)
		}
	}

	note, _ := rec.Get("note")
	if !note.IsNull() {
		t.Error("note should hydrate as null")
	}
	active, _ := rec.Get("active")
	if b, ok := active.AsBool(); !ok || !b {
		t.Error("active should hydrate as bool true")
	}
}

func TestHydrateRejectsUnknownDriverType(t *testing.T) {
	m := newTestModel(t, &stubConn{})
	if _, err := Hydrate(m, Row{"blob": struct{}{}}); !errors.Is(err, ErrBadDriverValue) {
		t.Fatalf("err = %v, want ErrBadDriverValue", err)
	}
}
