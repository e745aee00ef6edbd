package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/goserg/storeserver/auth/users"
)

// ErrEmailTaken reports a unique-email violation on user creation.
var ErrEmailTaken = errors.New("email already registered")

// AuthStorage is the credential store. Lookup misses are reported as
// sql.ErrNoRows.
type AuthStorage interface {
	CreateUser(ctx context.Context, user users.User, secret users.Secret) error
	GetUser(ctx context.Context, id uuid.UUID) (users.User, error)
	GetUserByEmail(ctx context.Context, email string) (users.User, error)
	GetUserSecret(ctx context.Context, email string) (users.User, users.Secret, error)
	UpdateUser(ctx context.Context, id uuid.UUID, name string, email string) error

	// SetResetToken writes the token and its expiry in a single update.
	SetResetToken(ctx context.Context, id uuid.UUID, token string, expiresMs int64) error
	// FindByResetToken matches the exact token with reset_expires > nowMs.
	FindByResetToken(ctx context.Context, token string, nowMs int64) (users.User, error)
	// ConsumePasswordReset replaces the credential material and clears both
	// reset columns in one conditional update. The condition is the same as
	// FindByResetToken; if it no longer holds, sql.ErrNoRows is returned and
	// nothing is written.
	ConsumePasswordReset(ctx context.Context, token string, nowMs int64, secret users.Secret) (users.User, error)

	CreateSession(ctx context.Context, session users.Session) error
	GetSession(ctx context.Context, id uuid.UUID) (users.Session, users.User, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}
