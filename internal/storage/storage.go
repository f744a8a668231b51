// Package storage opens the repository backend selected by configuration.
package storage

import (
	"fmt"

	"maonav/internal/adapter/memory"
	"maonav/internal/adapter/postgres"
	"maonav/internal/adapter/sqlite"
	"maonav/internal/config"
	"maonav/internal/domain"
)

// Repositories is the full set of ports a backend provides.
type Repositories interface {
	domain.AdminRepository
	domain.CategoryRepository
	domain.SiteRepository
	domain.SettingRepository
}

// Backend is an opened store.
type Backend struct {
	Repos    Repositories
	Sessions domain.SessionRepository
	close    func() error
}

// Close releases the underlying database, if any.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open connects to the backend named by cfg.Store.
func Open(cfg *config.Config) (*Backend, error) {
	switch cfg.Store {
	case config.StorePostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return &Backend{Repos: db, Sessions: postgres.NewSessionRepo(db), close: db.Close}, nil
	case config.StoreSQLite:
		db, err := sqlite.Open(cfg.SQLiteDSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return &Backend{Repos: db, Sessions: sqlite.NewSessionRepo(db), close: db.Close}, nil
	case config.StoreMemory:
		db := memory.New()
		return &Backend{Repos: db, Sessions: db.NewSessionRepo()}, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
