//go:build integration

package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func setupSQLiteCache(t *testing.T) (*SQLiteCache, func()) {
	t.Helper()

	c, err := NewSQLite(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Failed to open sqlite cache: %v", err)
	}
	return c, func() { c.Close() }
}

func TestSQLiteCache_SetGetDelete(t *testing.T) {
	c, teardown := setupSQLiteCache(t)
	defer teardown()
	ctx := context.Background()

	if err := c.Set(ctx, "public:projects", []byte(`{"projects":[]}`), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	val, ok, err := c.Get(ctx, "public:projects")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || string(val) != `{"projects":[]}` {
		t.Errorf("expected cached value, got %q (hit=%v)", val, ok)
	}

	if err := c.Delete(ctx, "public:projects"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "public:projects"); ok {
		t.Error("expected miss after delete")
	}
}

func TestSQLiteCache_Expiry(t *testing.T) {
	c, teardown := setupSQLiteCache(t)
	defer teardown()
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("x"), -time.Second); err != nil {
		t.Fatal(err)
	}
	_, ok, err := c.Get(ctx, "short")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected expired item to be a miss")
	}
}
