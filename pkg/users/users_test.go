package users

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// storeContract runs the behavior every Store must satisfy.
func storeContract(t *testing.T, s Store) {
	ctx := context.Background()
	alice := &User{ID: "u-1", Username: "alice", PasswordHash: "hash", CreatedAt: time.Now().UTC().Truncate(time.Millisecond)}

	if err := s.Create(ctx, alice); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.ByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("ByUsername: %v", err)
	}
	if got.ID != alice.ID || got.PasswordHash != alice.PasswordHash || !got.CreatedAt.Equal(alice.CreatedAt) {
		t.Errorf("ByUsername = %+v, want %+v", got, alice)
	}

	dup := &User{ID: "u-2", Username: "alice", PasswordHash: "other"}
	if err := s.Create(ctx, dup); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate Create = %v, want ErrDuplicate", err)
	}

	if _, err := s.ByUsername(ctx, "bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ByUsername(bob) = %v, want ErrNotFound", err)
	}
	if _, err := s.ByUsername(ctx, "Alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("usernames are case-sensitive, ByUsername(Alice) = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	u := &User{ID: "1", Username: "carol", PasswordHash: "h"}
	s.Create(ctx, u)
	u.PasswordHash = "mutated"

	got, _ := s.ByUsername(ctx, "carol")
	if got.PasswordHash != "h" {
		t.Errorf("stored user changed through caller pointer: %q", got.PasswordHash)
	}
}

func TestMemoryStoreConcurrentRegistration(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		dupCount int
	)
	for i := 0; i < 20; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Create(ctx, &User{ID: fmt.Sprint(i), Username: "same"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, ErrDuplicate):
				dupCount++
			}
		}()
	}
	wg.Wait()

	if created != 1 || dupCount != 19 {
		t.Errorf("created = %d, duplicates = %d, want 1 and 19", created, dupCount)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}
