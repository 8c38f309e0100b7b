// Package session stores the CLI's login state.
//
// A session holds the bearer token returned by a penman server's login
// endpoint, together with the username and the server it belongs to.
// Sessions expire with their token. The CLI keeps one session per server,
// so logging in to a second server does not sign you out of the first.
//
// # Usage
//
//	accounts, err := session.NewAccountStore("")
//	if err != nil {
//	    return err
//	}
//
//	// After a successful login
//	sess, err := session.New(token, "alice", serverURL, expiresAt)
//	accounts.Save(ctx, sess)
//
//	// Later commands
//	sess, err := accounts.Get(ctx, serverURL)
//	if sess == nil {
//	    // Not logged in or expired
//	}
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"
)

// Session stores one login.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Server    string    `json:"server"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return s.ExpiredAt(time.Now())
}

// ExpiredAt reports whether the session is expired at t.
func (s *Session) ExpiredAt(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
}

// DefaultTTL is used when the server does not report a token expiry.
const DefaultTTL = time.Hour

// GenerateID creates a cryptographically secure random session ID.
func GenerateID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// New creates a session for token. A zero expiresAt selects DefaultTTL.
func New(token, username, server string, expiresAt time.Time) (*Session, error) {
	id, err := GenerateID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if expiresAt.IsZero() {
		expiresAt = now.Add(DefaultTTL)
	}
	return &Session{
		ID:        id,
		Token:     token,
		Username:  username,
		Server:    server,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}, nil
}
