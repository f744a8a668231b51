// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// Admin is the single dashboard administrator and its stored credential.
type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the caller resolved from a valid bearer token and live session.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Session is the server-side record that keeps an issued token revocable.
type Session struct {
	ID        string
	OwnerID   int64
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// AdminRepository defines the port for credential persistence operations.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	GetByID(ctx context.Context, id int64) (*Admin, error)
	Create(ctx context.Context, username, passwordHash string) (*Admin, error)
	Count(ctx context.Context) (int, error)
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
}

// SessionRepository defines the port for session persistence operations.
// FindByToken must treat rows whose ExpiresAt is not after now as absent.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	FindByToken(ctx context.Context, token string, now time.Time) (*Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByOwner(ctx context.Context, ownerID int64) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
