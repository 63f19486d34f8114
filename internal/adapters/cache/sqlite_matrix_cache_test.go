package cache

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"vrppd-solver-core/internal/adapters/persistence"
)

func newTestSQLiteMatrixCache(t *testing.T) *SQLiteMatrixCache {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := persistence.InitSchema(db); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}
	return NewSQLiteMatrixCache(db)
}

func TestSQLiteMatrixCachePutManyThenGetManyRoundTrips(t *testing.T) {
	c := newTestSQLiteMatrixCache(t)
	ctx := context.Background()

	distances := map[string]float64{"b": 1.5, "c": 2.5}
	if err := c.PutMany(ctx, "a", distances); err != nil {
		t.Fatalf("PutMany() error = %v", err)
	}

	got, err := c.GetMany(ctx, "a", []string{"b", "c", "d"})
	if err != nil {
		t.Fatalf("GetMany() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetMany() returned %d entries, want 2 (unknown destination d must be absent): %+v", len(got), got)
	}
	if got["b"] != 1.5 || got["c"] != 2.5 {
		t.Errorf("GetMany() = %+v, want {b:1.5, c:2.5}", got)
	}
}

func TestSQLiteMatrixCacheGetManyEmptyDestinationsReturnsEmptyMap(t *testing.T) {
	c := newTestSQLiteMatrixCache(t)
	got, err := c.GetMany(context.Background(), "a", nil)
	if err != nil {
		t.Fatalf("GetMany() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("GetMany(nil destinations) = %+v, want empty map", got)
	}
}

func TestSQLiteMatrixCacheGetManyRejectsEmptyOrigin(t *testing.T) {
	c := newTestSQLiteMatrixCache(t)
	if _, err := c.GetMany(context.Background(), "", []string{"b"}); err == nil {
		t.Fatalf("GetMany(origin=\"\") error = nil, want an error")
	}
}

func TestSQLiteMatrixCachePutManyRejectsEmptyOrigin(t *testing.T) {
	c := newTestSQLiteMatrixCache(t)
	if err := c.PutMany(context.Background(), "", map[string]float64{"b": 1}); err == nil {
		t.Fatalf("PutMany(origin=\"\") error = nil, want an error")
	}
}
