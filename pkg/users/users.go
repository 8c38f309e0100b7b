// Package users stores registered accounts.
//
// Two [Store] implementations exist: [MemoryStore] for development and
// tests, and [MongoStore] for deployments. Both enforce unique usernames.
// Users are created once at registration and never updated or deleted.
package users

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrDuplicate is returned when the username is already registered.
	ErrDuplicate = errors.New("username already exists")

	// ErrNotFound is returned when no user has the requested username.
	ErrNotFound = errors.New("user not found")
)

// User is a registered account. PasswordHash is a bcrypt digest; the
// plaintext password is never stored.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// Store persists users. Implementations must be safe for concurrent use.
type Store interface {
	// Create inserts u, returning ErrDuplicate if the username is taken.
	Create(ctx context.Context, u *User) error

	// ByUsername returns the user with the given username or ErrNotFound.
	ByUsername(ctx context.Context, username string) (*User, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
