package sqlite

import (
	"context"
	"time"

	"maonav/internal/domain"
)

var _ domain.AdminRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// GetByUsername retrieves an admin by username.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	var m adminModel
	err := d.bun.NewSelect().Model(&m).Where("username = ?", username).Limit(1).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m.toDomain(), nil
}

// GetByID retrieves an admin by ID.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	var m adminModel
	err := d.bun.NewSelect().Model(&m).Where("id = ?", id).Limit(1).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m.toDomain(), nil
}

// Create creates a new admin.
func (d *DB) Create(ctx context.Context, username, passwordHash string) (*domain.Admin, error) {
	m := adminModel{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := d.bun.NewInsert().Model(&m).Exec(ctx); err != nil {
		return nil, mapErr(err)
	}
	return m.toDomain(), nil
}

// Count returns the number of admins.
func (d *DB) Count(ctx context.Context) (int, error) {
	return d.bun.NewSelect().Model((*adminModel)(nil)).Count(ctx)
}

// UpdatePasswordHash replaces the stored hash of an admin.
func (d *DB) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	_, err := d.bun.NewUpdate().
		Model((*adminModel)(nil)).
		Set("password_hash = ?", passwordHash).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// SessionRepo implements domain.SessionRepository on the same database.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo returns the session repository backed by db.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create stores a session.
func (r *SessionRepo) Create(ctx context.Context, s *domain.Session) error {
	m := sessionModel{
		ID:        s.ID,
		AdminID:   s.OwnerID,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt.Unix(),
		CreatedAt: s.CreatedAt.UTC(),
	}
	_, err := r.db.bun.NewInsert().Model(&m).Exec(ctx)
	return mapErr(err)
}

// FindByToken returns the live session for token, or nil.
func (r *SessionRepo) FindByToken(ctx context.Context, token string, now time.Time) (*domain.Session, error) {
	var m sessionModel
	err := r.db.bun.NewSelect().
		Model(&m).
		Where("token = ?", token).
		Where("expires_at > ?", now.Unix()).
		Limit(1).
		Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m.toDomain(), nil
}

// DeleteByToken removes the session holding token.
func (r *SessionRepo) DeleteByToken(ctx context.Context, token string) error {
	_, err := r.db.bun.NewDelete().Model((*sessionModel)(nil)).Where("token = ?", token).Exec(ctx)
	return err
}

// DeleteByOwner removes every session of an admin.
func (r *SessionRepo) DeleteByOwner(ctx context.Context, ownerID int64) error {
	_, err := r.db.bun.NewDelete().Model((*sessionModel)(nil)).Where("admin_id = ?", ownerID).Exec(ctx)
	return err
}

// DeleteExpired removes sessions that expired at or before now.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.bun.NewDelete().Model((*sessionModel)(nil)).Where("expires_at <= ?", now.Unix()).Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
