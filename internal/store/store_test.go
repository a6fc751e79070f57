// ABOUTME: Contract tests run against both Store backends
// ABOUTME: Covers round-trips, overwrite, remove, list, count, purge and name validation

package store

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"testing"

	"github.com/2389/briefcase/internal/entry"
)

// backends returns a fresh instance of every Store implementation, each
// rooted in its own temp location.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"sqlite": NewSQLiteStore(filepath.Join(t.TempDir(), "briefcase.db")),
		"files":  NewFileStore(filepath.Join(t.TempDir(), "briefcase")),
	}
}

func TestSetGet_RoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			ctx := context.Background()

			if err := s.Set(ctx, "x", "hello"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}

			got, err := s.Get(ctx, "x")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got != "hello" {
				t.Errorf("Get returned %q, want %q", got, "hello")
			}
		})
	}
}

func TestSetGet_ExactBytes(t *testing.T) {
	// Values must round-trip byte-exact: no injected newline, embedded
	// newlines and empty strings preserved.
	values := []string{"", "a\nb\n", "trailing space ", "tabs\tand\tmore"}

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			ctx := context.Background()

			for i, want := range values {
				key := fmtKey(i)
				if err := s.Set(ctx, key, want); err != nil {
					t.Fatalf("Set(%q) failed: %v", key, err)
				}
				got, err := s.Get(ctx, key)
				if err != nil {
					t.Fatalf("Get(%q) failed: %v", key, err)
				}
				if got != want {
					t.Errorf("value %d: got %q, want %q", i, got, want)
				}
			}
		})
	}
}

func fmtKey(i int) string {
	return string(rune('a' + i))
}

func TestSet_Overwrites(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			ctx := context.Background()

			if err := s.Set(ctx, "x", "a"); err != nil {
				t.Fatalf("first Set failed: %v", err)
			}
			if err := s.Set(ctx, "x", "b"); err != nil {
				t.Fatalf("second Set failed: %v", err)
			}

			got, err := s.Get(ctx, "x")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got != "b" {
				t.Errorf("Get returned %q, want %q", got, "b")
			}

			count, err := s.Count(ctx)
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if count != 1 {
				t.Errorf("Count returned %d, want 1", count)
			}
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			ctx := context.Background()

			if err := s.Set(ctx, "x", "v"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := s.Remove(ctx, "x"); err != nil {
				t.Fatalf("Remove failed: %v", err)
			}
			if _, err := s.Get(ctx, "x"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after Remove: expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestRemove_MissingEntry(t *testing.T) {
	// Both backends agree: removing an absent entry is an error.
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			ctx := context.Background()

			if err := s.Set(ctx, "other", "v"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := s.Remove(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestList(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			ctx := context.Background()

			if err := s.Set(ctx, "a", "1"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := s.Set(ctx, "b", "2"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}

			entries, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}

			// Order is backend-defined; compare as a set
			sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
			want := []entry.Entry{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}
			if len(entries) != len(want) {
				t.Fatalf("List returned %d entries, want %d", len(entries), len(want))
			}
			for i := range want {
				if entries[i] != want[i] {
					t.Errorf("entry %d: got %+v, want %+v", i, entries[i], want[i])
				}
			}
		})
	}
}

func TestEmptyStore_Reads(t *testing.T) {
	// A store that was never created behaves as an empty store.
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			ctx := context.Background()

			entries, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(entries) != 0 {
				t.Errorf("List returned %d entries, want 0", len(entries))
			}

			count, err := s.Count(ctx)
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if count != 0 {
				t.Errorf("Count returned %d, want 0", count)
			}

			if _, err := s.Get(ctx, "x"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestPurge(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			ctx := context.Background()

			if err := s.Set(ctx, "a", "1"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}

			if err := s.Purge(); err != nil {
				t.Fatalf("Purge failed: %v", err)
			}

			// After purge the store behaves as never-initialized
			entries, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List after purge failed: %v", err)
			}
			if len(entries) != 0 {
				t.Errorf("List after purge returned %d entries, want 0", len(entries))
			}
			if _, err := s.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after purge: expected ErrNotFound, got %v", err)
			}

			// A second purge with no intervening write fails
			if err := s.Purge(); !errors.Is(err, ErrStoreNotFound) {
				t.Errorf("second Purge: expected ErrStoreNotFound, got %v", err)
			}
		})
	}
}

func TestPurge_NeverCreated(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			if err := s.Purge(); !errors.Is(err, ErrStoreNotFound) {
				t.Errorf("expected ErrStoreNotFound, got %v", err)
			}
		})
	}
}

func TestInvalidName_StoreUntouched(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			ctx := context.Background()

			if err := s.Set(ctx, "2bad", "v"); !errors.Is(err, entry.ErrInvalidName) {
				t.Errorf("Set: expected ErrInvalidName, got %v", err)
			}
			if _, err := s.Get(ctx, "a-b"); !errors.Is(err, entry.ErrInvalidName) {
				t.Errorf("Get: expected ErrInvalidName, got %v", err)
			}
			if err := s.Remove(ctx, ""); !errors.Is(err, entry.ErrInvalidName) {
				t.Errorf("Remove: expected ErrInvalidName, got %v", err)
			}

			// The rejected Set must not have created the store
			count, err := s.Count(ctx)
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if count != 0 {
				t.Errorf("Count returned %d after invalid Set, want 0", count)
			}
			if err := s.Purge(); !errors.Is(err, ErrStoreNotFound) {
				t.Errorf("store was created by a rejected operation: %v", err)
			}
		})
	}
}
