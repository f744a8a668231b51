// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"maonav/internal/domain"
)

var _ domain.AdminRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// GetByUsername retrieves an admin by username.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	var a domain.Admin
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM admins WHERE username = $1",
		username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByID retrieves an admin by ID.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	var a domain.Admin
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM admins WHERE id = $1",
		id,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create creates a new admin.
func (d *DB) Create(ctx context.Context, username, passwordHash string) (*domain.Admin, error) {
	var a domain.Admin
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO admins (username, password_hash, created_at) VALUES ($1, $2, $3) RETURNING id, username, password_hash, created_at",
		username, passwordHash, time.Now().UTC(),
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

// Count returns the total number of admins.
func (d *DB) Count(ctx context.Context) (int, error) {
	var count int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM admins").Scan(&count)
	return count, err
}

// UpdatePasswordHash replaces the stored hash of an admin.
func (d *DB) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	_, err := d.sql.ExecContext(ctx, "UPDATE admins SET password_hash = $1 WHERE id = $2", passwordHash, id)
	return err
}

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create stores a new session.
func (r *SessionRepo) Create(ctx context.Context, s *domain.Session) error {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO sessions (id, admin_id, token, expires_at, created_at) VALUES ($1, $2, $3, $4, $5)",
		s.ID, s.OwnerID, s.Token, s.ExpiresAt.UTC(), s.CreatedAt.UTC(),
	)
	return mapErr(err)
}

// FindByToken retrieves a live session by token.
func (r *SessionRepo) FindByToken(ctx context.Context, token string, now time.Time) (*domain.Session, error) {
	var s domain.Session
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT id, admin_id, token, expires_at, created_at FROM sessions WHERE token = $1 AND expires_at > $2",
		token, now.UTC(),
	).Scan(&s.ID, &s.OwnerID, &s.Token, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteByToken deletes the session holding token.
func (r *SessionRepo) DeleteByToken(ctx context.Context, token string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

// DeleteByOwner deletes every session of an admin.
func (r *SessionRepo) DeleteByOwner(ctx context.Context, ownerID int64) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE admin_id = $1", ownerID)
	return err
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= $1", now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
