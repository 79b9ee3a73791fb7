package agent

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func TestExecute_Success(t *testing.T) {
	w := New(nil, nil, testDB(t))
	s := &State{SQLQuery: countSQL}

	if err := w.execute(context.Background(), s); err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if s.Error != "" {
		t.Errorf("Error = %q, want empty", s.Error)
	}
	if s.Result == nil {
		t.Fatal("Result is nil")
	}
	if got := s.Result.Columns; len(got) != 1 || got[0] != "delivered_count" {
		t.Errorf("Columns = %v, want [delivered_count]", got)
	}
	if got := s.Result.Rows[0]["delivered_count"]; got != int64(3) {
		t.Errorf("delivered_count = %v, want 3", got)
	}
}

func TestExecute_BadSQLSignalsViaState(t *testing.T) {
	w := New(nil, nil, testDB(t))
	s := &State{SQLQuery: "SELECT xyz FROM orders"}

	if err := w.execute(context.Background(), s); err != nil {
		t.Fatalf("execute() must not return engine errors, got %v", err)
	}
	if s.Error == "" {
		t.Fatal("Error is empty for a query referencing a missing column")
	}
	if !strings.Contains(s.Error, "SQL execution error") {
		t.Errorf("Error = %q, want diagnostic prefix", s.Error)
	}
	if s.Result != nil {
		t.Errorf("Result = %+v, want nil (mutual exclusivity)", s.Result)
	}
}

func TestExecute_ClearsPriorResultOnFailure(t *testing.T) {
	w := New(nil, nil, testDB(t))
	s := &State{
		SQLQuery: "SELECT xyz FROM orders",
		Result:   &Result{Columns: []string{"old"}, Rows: []Row{{"old": 1}}},
	}

	if err := w.execute(context.Background(), s); err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if s.Result != nil {
		t.Error("stale result survived a failed execution")
	}
}

func TestExecute_EmptyResultMarker(t *testing.T) {
	w := New(nil, nil, testDB(t))
	s := &State{SQLQuery: "SELECT order_id FROM orders WHERE order_status = 'returned'"}

	if err := w.execute(context.Background(), s); err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if s.Result == nil || !s.Result.Empty {
		t.Fatalf("Result = %+v, want empty marker", s.Result)
	}
	if len(s.Result.Rows) != 0 {
		t.Errorf("empty result has %d rows", len(s.Result.Rows))
	}
	if s.Result.Serialize() != "No results found." {
		t.Errorf("Serialize() = %q", s.Result.Serialize())
	}
}

func TestExecute_CapsAtHundredRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	if _, err := db.Exec("CREATE TABLE items (id INTEGER, name TEXT)"); err != nil {
		t.Fatalf("creating table: %v", err)
	}
	for i := 0; i < 250; i++ {
		if _, err := db.Exec("INSERT INTO items VALUES (?, ?)", i, fmt.Sprintf("item-%d", i)); err != nil {
			t.Fatalf("inserting row %d: %v", i, err)
		}
	}
	db.Close()

	w := New(nil, nil, path)
	s := &State{SQLQuery: "SELECT id, name FROM items ORDER BY id"}

	if err := w.execute(context.Background(), s); err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if len(s.Result.Rows) != 100 {
		t.Errorf("got %d rows, want 100", len(s.Result.Rows))
	}
	if s.Result.Rows[0]["id"] != int64(0) {
		t.Errorf("first row id = %v, want 0", s.Result.Rows[0]["id"])
	}
}

func TestExecute_TextValuesScanAsStrings(t *testing.T) {
	w := New(nil, nil, testDB(t))
	s := &State{SQLQuery: "SELECT order_status FROM orders LIMIT 1"}

	if err := w.execute(context.Background(), s); err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	v := s.Result.Rows[0]["order_status"]
	if _, ok := v.(string); !ok {
		t.Errorf("order_status = %v (%T), want string", v, v)
	}
}
