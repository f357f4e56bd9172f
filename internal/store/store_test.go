package store

import (
	"context"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// TestStoreBackends runs the same contract checks against every backend
// that needs no external service.
func TestStoreBackends(t *testing.T) {
	backends := []struct {
		name string
		open func(t *testing.T) Store
	}{
		{"memory", func(t *testing.T) Store {
			return NewMemoryStore()
		}},
		{"sqlite", func(t *testing.T) Store {
			s, err := NewSQLiteStore(":memory:")
			if err != nil {
				t.Fatalf("Failed to open sqlite store: %v", err)
			}
			return s
		}},
	}

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			defer s.Close()
			ctx := context.Background()

			if _, err := s.Get(ctx, "missing"); err != ErrNotFound {
				t.Errorf("Expected ErrNotFound for missing key, got: %v", err)
			}

			if err := s.Put(ctx, "abc123", "https://example.com"); err != nil {
				t.Fatalf("Put failed: %v", err)
			}

			value, err := s.Get(ctx, "abc123")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if value != "https://example.com" {
				t.Errorf("Expected stored value, got: %s", value)
			}

			// Put overwrites
			if err := s.Put(ctx, "abc123", "https://other.com"); err != nil {
				t.Fatalf("Overwrite failed: %v", err)
			}
			value, _ = s.Get(ctx, "abc123")
			if value != "https://other.com" {
				t.Errorf("Expected overwritten value, got: %s", value)
			}

			if err := s.Delete(ctx, "abc123"); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if _, err := s.Get(ctx, "abc123"); err != ErrNotFound {
				t.Errorf("Expected ErrNotFound after delete, got: %v", err)
			}

			// Deleting an absent key is not an error
			if err := s.Delete(ctx, "abc123"); err != nil {
				t.Errorf("Delete of absent key failed: %v", err)
			}
		})
	}
}

func TestMemoryStoreConcurrent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Put(ctx, "shared", "https://example.com")
			_, _ = s.Get(ctx, "shared")
		}()
	}
	wg.Wait()

	value, err := s.Get(ctx, "shared")
	if err != nil {
		t.Fatalf("Get after concurrent writes failed: %v", err)
	}
	if value != "https://example.com" {
		t.Errorf("Unexpected value: %s", value)
	}
}
