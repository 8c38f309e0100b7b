// Package auth registers users, checks credentials and issues bearer
// tokens.
//
// Passwords are stored as bcrypt digests. Tokens are HS256 JWTs carrying
// userId and username claims with a one hour lifetime by default.
package auth

import (
	"context"
	stderrors "errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/penman/pkg/errors"
	"github.com/matzehuels/penman/pkg/users"
)

// Gateway is the account service used by the HTTP API.
type Gateway struct {
	store  users.Store
	issuer *Issuer
	cost   int
	logger *log.Logger
}

// Options configures a Gateway.
type Options struct {
	BcryptCost int
	Logger     *log.Logger
}

// NewGateway creates a Gateway over store that signs tokens with issuer.
func NewGateway(store users.Store, issuer *Issuer, opts Options) *Gateway {
	g := &Gateway{store: store, issuer: issuer, cost: opts.BcryptCost, logger: opts.Logger}
	if g.cost == 0 {
		g.cost = DefaultCost
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	return g
}

// Register creates an account. A taken username yields DUPLICATE_USER.
func (g *Gateway) Register(ctx context.Context, username, password string) error {
	if err := errors.ValidateRequired(
		errors.Field{Name: "username", Value: username},
		errors.Field{Name: "password", Value: password},
	); err != nil {
		return err
	}
	if err := errors.ValidateUsername(username); err != nil {
		return err
	}
	if err := errors.ValidatePassword(password); err != nil {
		return err
	}

	hash, err := HashPassword(password, g.cost)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "hash password")
	}

	u := &users.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := g.store.Create(ctx, u); err != nil {
		if stderrors.Is(err, users.ErrDuplicate) {
			return errors.Wrap(errors.ErrCodeDuplicateUser, err, "username %q is taken", username)
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "store user")
	}
	g.logger.Info("user registered", "username", username, "id", u.ID)
	return nil
}

// Login checks the credentials and returns a signed token. Unknown users
// and wrong passwords both yield UNAUTHORIZED.
func (g *Gateway) Login(ctx context.Context, username, password string) (string, error) {
	if err := errors.ValidateRequired(
		errors.Field{Name: "username", Value: username},
		errors.Field{Name: "password", Value: password},
	); err != nil {
		return "", err
	}

	u, err := g.store.ByUsername(ctx, username)
	if stderrors.Is(err, users.ErrNotFound) {
		return "", errors.New(errors.ErrCodeUnauthorized, "invalid credentials")
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "load user")
	}
	if !CheckPassword(u.PasswordHash, password) {
		return "", errors.New(errors.ErrCodeUnauthorized, "invalid credentials")
	}

	token, err := g.issuer.Issue(u.ID, u.Username)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "sign token")
	}
	g.logger.Debug("user logged in", "username", username)
	return token, nil
}

// Verify checks a bearer token and returns its claims.
func (g *Gateway) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, errors.New(errors.ErrCodeUnauthorized, "missing token")
	}
	return g.issuer.Verify(token)
}
