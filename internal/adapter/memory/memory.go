// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"maonav/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu         sync.Mutex
	admins     []*domain.Admin
	sessions   map[string]*domain.Session
	categories map[string]domain.Category
	sites      map[string]domain.Site
	settings   map[string]string

	adminIDCounter int64
}

// New creates a new in-memory database seeded with the default settings.
func New() *DB {
	db := &DB{
		sessions:   make(map[string]*domain.Session),
		categories: make(map[string]domain.Category),
		sites:      make(map[string]domain.Site),
		settings:   make(map[string]string),
	}
	for _, s := range domain.DefaultSettings {
		db.settings[s.Key] = s.Value
	}
	return db
}

// Ensure interfaces are met.
var _ domain.AdminRepository = (*DB)(nil)
var _ domain.CategoryRepository = (*DB)(nil)
var _ domain.SiteRepository = (*DB)(nil)
var _ domain.SettingRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- AdminRepository ---

// GetByUsername retrieves an admin by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.admins {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

// GetByID retrieves an admin by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.admins {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

// Create creates a new admin.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.Admin, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.admins {
		if a.Username == username {
			return nil, domain.ErrDuplicate
		}
	}

	db.adminIDCounter++
	a := &domain.Admin{
		ID:           db.adminIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.admins = append(db.admins, a)
	cp := *a
	return &cp, nil
}

// Count returns the total number of admins.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.admins), nil
}

// UpdatePasswordHash replaces the stored hash of an admin.
func (db *DB) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.admins {
		if a.ID == id {
			a.PasswordHash = passwordHash
		}
	}
	return nil
}

// --- CategoryRepository ---

// ListCategories lists categories ordered by order_index.
func (db *DB) ListCategories(ctx context.Context) ([]domain.Category, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Category, 0, len(db.categories))
	for _, c := range db.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderIndex != out[j].OrderIndex {
			return out[i].OrderIndex < out[j].OrderIndex
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// CreateCategory inserts a category.
func (db *DB) CreateCategory(ctx context.Context, c domain.Category) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.categories[c.ID]; ok {
		return domain.ErrDuplicate
	}
	db.categories[c.ID] = c
	return nil
}

// UpdateCategories updates existing categories; unknown IDs are skipped.
func (db *DB) UpdateCategories(ctx context.Context, cs []domain.Category) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, c := range cs {
		if _, ok := db.categories[c.ID]; ok {
			db.categories[c.ID] = c
		}
	}
	return nil
}

// DeleteCategory removes a category and its sites.
func (db *DB) DeleteCategory(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	delete(db.categories, id)
	for k, s := range db.sites {
		if s.CategoryID == id {
			delete(db.sites, k)
		}
	}
	return nil
}

// --- SiteRepository ---

// ListSites lists sites ordered by category_id then order_index.
func (db *DB) ListSites(ctx context.Context) ([]domain.Site, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Site, 0, len(db.sites))
	for _, s := range db.sites {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CategoryID != out[j].CategoryID {
			return out[i].CategoryID < out[j].CategoryID
		}
		if out[i].OrderIndex != out[j].OrderIndex {
			return out[i].OrderIndex < out[j].OrderIndex
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// CreateSite inserts a site.
func (db *DB) CreateSite(ctx context.Context, s domain.Site) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.sites[s.ID]; ok {
		return domain.ErrDuplicate
	}
	db.sites[s.ID] = s
	return nil
}

// UpdateSite overwrites an existing site; an unknown ID is a no-op.
func (db *DB) UpdateSite(ctx context.Context, s domain.Site) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.sites[s.ID]; ok {
		db.sites[s.ID] = s
	}
	return nil
}

// DeleteSite removes a site.
func (db *DB) DeleteSite(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.sites, id)
	return nil
}

// --- SettingRepository ---

// ListSettings lists all settings ordered by key.
func (db *DB) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Setting, 0, len(db.settings))
	for k, v := range db.settings {
		out = append(out, domain.Setting{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// GetSettings returns the values of the requested keys that exist.
func (db *DB) GetSettings(ctx context.Context, keys ...string) (map[string]string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := db.settings[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// UpdateSettings updates existing keys and ignores unknown ones.
func (db *DB) UpdateSettings(ctx context.Context, values map[string]string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for k, v := range values {
		if _, ok := db.settings[k]; ok {
			db.settings[k] = v
		}
	}
	return nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create stores a new session.
func (r *SessionRepo) Create(ctx context.Context, s *domain.Session) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.sessions[s.Token]; ok {
		return domain.ErrDuplicate
	}
	cp := *s
	r.db.sessions[s.Token] = &cp
	return nil
}

// FindByToken retrieves a live session by token.
func (r *SessionRepo) FindByToken(ctx context.Context, token string, now time.Time) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.sessions[token]
	if !ok || !s.ExpiresAt.After(now) {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// DeleteByToken deletes the session holding token.
func (r *SessionRepo) DeleteByToken(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteByOwner deletes every session of an admin.
func (r *SessionRepo) DeleteByOwner(ctx context.Context, ownerID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for k, s := range r.db.sessions {
		if s.OwnerID == ownerID {
			delete(r.db.sessions, k)
		}
	}
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var n int64
	for k, s := range r.db.sessions {
		if !s.ExpiresAt.After(now) {
			delete(r.db.sessions, k)
			n++
		}
	}
	return n, nil
}
