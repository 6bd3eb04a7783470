package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/radieske/match-predictor/internal/shared/db"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()

	sqlite, err := db.ConnectSQLite(":memory:")
	if err != nil {
		t.Fatalf("ConnectSQLite() unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close() })

	s := NewSQLite(sqlite)
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() unexpected error: %v", err)
	}

	return map[string]KV{
		"memory": NewMemory(),
		"sqlite": s,
	}
}

func TestKVRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, kv := range backends(t) {
		kv := kv
		t.Run(name, func(t *testing.T) {
			if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get(missing) err = %v, want ErrNotFound", err)
			}

			if err := kv.Set(ctx, "theme", "dark"); err != nil {
				t.Fatalf("Set() unexpected error: %v", err)
			}
			if err := kv.Set(ctx, "theme", "light"); err != nil {
				t.Fatalf("Set() overwrite unexpected error: %v", err)
			}

			got, err := kv.Get(ctx, "theme")
			if err != nil {
				t.Fatalf("Get() unexpected error: %v", err)
			}
			if got != "light" {
				t.Fatalf("Get() = %q, want %q", got, "light")
			}

			if err := kv.Delete(ctx, "theme"); err != nil {
				t.Fatalf("Delete() unexpected error: %v", err)
			}
			if _, err := kv.Get(ctx, "theme"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get() after delete err = %v, want ErrNotFound", err)
			}

			if err := kv.Delete(ctx, "theme"); err != nil {
				t.Fatalf("Delete() of absent key should be a no-op, got %v", err)
			}
			if err := kv.Ping(ctx); err != nil {
				t.Fatalf("Ping() unexpected error: %v", err)
			}
		})
	}
}

func TestSessionKey(t *testing.T) {
	if got := SessionKey("abc", "theme"); got != "session:abc:theme" {
		t.Fatalf("SessionKey() = %q", got)
	}
}
