package storage

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_CreatesSchema(t *testing.T) {
	s := openTestStore(t)

	statuses, err := s.Verify()
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if len(statuses) != len(Tables) {
		t.Errorf("Verify() returned %d tables, want %d", len(statuses), len(Tables))
	}
	for _, st := range statuses {
		if st.Rows != 0 {
			t.Errorf("table %s has %d rows in a fresh store, want 0", st.Name, st.Rows)
		}
	}
}

func TestOpen_MigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open() error = %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer s2.Close()

	if _, err := s2.Verify(); err != nil {
		t.Errorf("Verify() after reopen error = %v", err)
	}
}

func TestSeedSample(t *testing.T) {
	s := openTestStore(t)

	if err := s.SeedSample(); err != nil {
		t.Fatalf("SeedSample() error = %v", err)
	}

	var delivered int64
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM orders WHERE order_status = 'delivered'").Scan(&delivered); err != nil {
		t.Fatalf("counting delivered orders: %v", err)
	}
	if delivered == 0 {
		t.Error("sample data has no delivered orders")
	}

	// Seeding twice must not duplicate rows.
	var before int64
	s.DB().QueryRow("SELECT COUNT(*) FROM orders").Scan(&before)
	if err := s.SeedSample(); err != nil {
		t.Fatalf("second SeedSample() error = %v", err)
	}
	var after int64
	s.DB().QueryRow("SELECT COUNT(*) FROM orders").Scan(&after)
	if before != after {
		t.Errorf("order count changed after reseed: %d -> %d", before, after)
	}
}

func TestVerify_MissingTable(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.DB().Exec("DROP TABLE geolocation"); err != nil {
		t.Fatalf("dropping table: %v", err)
	}

	if _, err := s.Verify(); err == nil {
		t.Error("Verify() expected error for missing table")
	}
}
