package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	sess, err := New("tok", "alice", "http://localhost:5000", exp)
	if err != nil {
		t.Fatal(err)
	}
	if sess.ID == "" || sess.Token != "tok" || sess.Username != "alice" {
		t.Errorf("New = %+v", sess)
	}
	if !sess.ExpiresAt.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want %v", sess.ExpiresAt, exp)
	}
	if sess.IsExpired() {
		t.Error("fresh session reported expired")
	}
	if !sess.ExpiredAt(exp) {
		t.Error("session should be expired exactly at ExpiresAt")
	}

	other, _ := New("tok", "alice", "", time.Time{})
	if other.ID == sess.ID {
		t.Error("session IDs should be unique")
	}
	if d := time.Until(other.ExpiresAt); d <= 0 || d > DefaultTTL {
		t.Errorf("zero expiry should default to %v, got %v", DefaultTTL, d)
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if store.Dir() != dir {
		t.Errorf("Dir() = %q", store.Dir())
	}

	sess, _ := New("tok", "bob", "", time.Now().Add(time.Hour))
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, sess.ID+".json"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("session file mode = %v, want 0600", perm)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir holds %d entries, want only the session file", len(entries))
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil || got == nil {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if got.Token != "tok" || got.Username != "bob" {
		t.Errorf("Get = %+v", got)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Get(ctx, sess.ID); got != nil {
		t.Error("session still present after Delete")
	}
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Errorf("deleting a missing session: %v", err)
	}
}

func TestFileStoreRejectsEmptyID(t *testing.T) {
	store, _ := NewFileStore(t.TempDir())
	if err := store.Set(context.Background(), &Session{Token: "tok"}); err == nil {
		t.Error("Set without an id should fail")
	}
}

func TestFileStoreExpired(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, _ := NewFileStore(dir)

	old, _ := New("old", "carol", "", time.Now().Add(-time.Minute))
	fresh, _ := New("new", "carol", "", time.Now().Add(time.Hour))
	store.Set(ctx, old)
	store.Set(ctx, fresh)
	os.WriteFile(filepath.Join(dir, "garbage.json"), []byte("{not json"), 0o600)

	if err := store.Cleanup(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, old.ID+".json")); !os.IsNotExist(err) {
		t.Error("Cleanup kept an expired session")
	}
	if _, err := os.Stat(filepath.Join(dir, "garbage.json")); !os.IsNotExist(err) {
		t.Error("Cleanup kept an unreadable session")
	}
	if got, _ := store.Get(ctx, fresh.ID); got == nil {
		t.Error("Cleanup removed a live session")
	}

	store.Set(ctx, old)
	if got, err := store.Get(ctx, old.ID); got != nil || err != nil {
		t.Errorf("Get(expired) = %v, %v; want nil, nil", got, err)
	}
}

func TestFileStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store, _ := NewFileStore(t.TempDir())

	base := time.Now()
	for i, name := range []string{"first", "second", "third"} {
		sess, _ := New(name, name, "", base.Add(time.Hour))
		sess.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		store.Set(ctx, sess)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].Username != "third" || all[2].Username != "first" {
		names := make([]string, len(all))
		for i, s := range all {
			names[i] = s.Username
		}
		t.Errorf("List order = %v, want [third second first]", names)
	}
}

func TestAccountStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	accounts, err := NewAccountStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	if got, _ := accounts.Current(ctx); got != nil {
		t.Fatal("expected no session initially")
	}

	local, _ := New("tok-local", "dave", "http://localhost:5000", time.Now().Add(time.Hour))
	remote, _ := New("tok-remote", "dave", "https://penman.example.com", time.Now().Add(time.Hour))
	remote.CreatedAt = local.CreatedAt.Add(time.Second)
	if err := accounts.Save(ctx, local); err != nil {
		t.Fatal(err)
	}
	if err := accounts.Save(ctx, remote); err != nil {
		t.Fatal(err)
	}

	got, err := accounts.Get(ctx, "http://localhost:5000/")
	if err != nil || got == nil || got.Token != "tok-local" {
		t.Fatalf("Get(local) = %+v, %v", got, err)
	}
	if cur, _ := accounts.Current(ctx); cur == nil || cur.Token != "tok-remote" {
		t.Errorf("Current = %+v, want the most recent login", cur)
	}
	if want := filepath.Join(dir, "localhost_5000.json"); accounts.Path("http://localhost:5000") != want {
		t.Errorf("Path = %q, want %q", accounts.Path("http://localhost:5000"), want)
	}

	relogin, _ := New("tok-local-2", "dave", "http://localhost:5000", time.Now().Add(time.Hour))
	accounts.Save(ctx, relogin)
	if all, _ := accounts.All(ctx); len(all) != 2 {
		t.Errorf("re-login should replace the session, have %d", len(all))
	}

	if err := accounts.Delete(ctx, "http://localhost:5000"); err != nil {
		t.Fatal(err)
	}
	if got, _ := accounts.Get(ctx, "http://localhost:5000"); got != nil {
		t.Error("session present after logout")
	}
	if got, _ := accounts.Get(ctx, "https://penman.example.com"); got == nil {
		t.Error("logout removed another server's session")
	}
}

func TestAccountID(t *testing.T) {
	tests := []struct {
		server string
		want   string
	}{
		{"http://localhost:5000", "localhost_5000"},
		{"http://localhost:5000/", "localhost_5000"},
		{"https://Penman.Example.com/api", "penman.example.com_api"},
		{"not a url", "not_a_url"},
	}
	for _, tt := range tests {
		if got := AccountID(tt.server); got != tt.want {
			t.Errorf("AccountID(%q) = %q, want %q", tt.server, got, tt.want)
		}
	}
}

func TestDefaultDirEnvOverride(t *testing.T) {
	t.Setenv(DirEnv, "/tmp/penman-sessions")
	dir, err := DefaultDir()
	if err != nil || dir != "/tmp/penman-sessions" {
		t.Errorf("DefaultDir = %q, %v", dir, err)
	}
}
