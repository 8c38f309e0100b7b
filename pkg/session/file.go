package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// DirEnv overrides the session directory.
const DirEnv = "PENMAN_SESSION_DIR"

// DefaultDir returns $PENMAN_SESSION_DIR, or penman/sessions under the
// user config dir.
func DefaultDir() (string, error) {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(base, "penman", "sessions"), nil
}

// FileStore keeps one JSON file per session in a directory only the
// owner can read. Writes go through a temp file and a rename, so a
// crashed write never leaves a truncated token behind.
type FileStore struct {
	mu  sync.Mutex
	dir string
	now func() time.Time
}

// NewFileStore opens (creating if needed) a store in dir. An empty dir
// selects [DefaultDir].
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

// Dir returns the directory holding session files.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Get implements Store. Expired sessions are removed and reported as absent.
func (s *FileStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.read(s.path(id))
	if err != nil || sess == nil {
		return nil, err
	}
	if sess.ExpiredAt(s.now()) {
		os.Remove(s.path(id))
		return nil, nil
	}
	return sess, nil
}

// Set implements Store.
func (s *FileStore) Set(_ context.Context, sess *Session) error {
	if sess.ID == "" {
		return fmt.Errorf("session has no id")
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".session-*")
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(sess.ID)); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Delete implements Store. Deleting a missing session is not an error.
func (s *FileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Cleanup implements Store.
func (s *FileStore) Cleanup(ctx context.Context) error {
	_, err := s.List(ctx)
	return err
}

// List returns the live sessions, newest first, removing expired and
// unreadable files on the way.
func (s *FileStore) List(_ context.Context) ([]*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read session dir: %w", err)
	}

	now := s.now()
	var out []*Session
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		sess, err := s.read(path)
		if err != nil || sess == nil || sess.ExpiredAt(now) {
			os.Remove(path)
			continue
		}
		out = append(out, sess)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// read returns nil, nil for a missing file.
func (s *FileStore) read(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", filepath.Base(path), err)
	}
	return &sess, nil
}

var _ Store = (*FileStore)(nil)

// =============================================================================
// Accounts
// =============================================================================

// AccountStore keeps at most one session per penman server.
type AccountStore struct {
	files *FileStore
}

// NewAccountStore opens the account store in dir (or [DefaultDir]) and
// prunes expired sessions.
func NewAccountStore(dir string) (*AccountStore, error) {
	files, err := NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	if err := files.Cleanup(context.Background()); err != nil {
		return nil, err
	}
	return &AccountStore{files: files}, nil
}

// Get returns the session for server, or nil if there is none.
func (a *AccountStore) Get(ctx context.Context, server string) (*Session, error) {
	return a.files.Get(ctx, AccountID(server))
}

// Current returns the most recent login on any server, or nil.
func (a *AccountStore) Current(ctx context.Context) (*Session, error) {
	all, err := a.files.List(ctx)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

// All returns every live login, newest first.
func (a *AccountStore) All(ctx context.Context) ([]*Session, error) {
	return a.files.List(ctx)
}

// Save stores sess as the login for sess.Server, replacing any previous one.
func (a *AccountStore) Save(ctx context.Context, sess *Session) error {
	sess.ID = AccountID(sess.Server)
	return a.files.Set(ctx, sess)
}

// Delete removes the login for server.
func (a *AccountStore) Delete(ctx context.Context, server string) error {
	return a.files.Delete(ctx, AccountID(server))
}

// Path returns the file that holds server's session.
func (a *AccountStore) Path(server string) string {
	return a.files.path(AccountID(server))
}

// AccountID derives a file-safe id from a server URL, so that
// "http://localhost:5000/" and "http://localhost:5000" share a session.
func AccountID(server string) string {
	key := strings.TrimRight(server, "/")
	if u, err := url.Parse(key); err == nil && u.Host != "" {
		key = u.Host + u.Path
	}
	key = strings.ToLower(key)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, key)
}
