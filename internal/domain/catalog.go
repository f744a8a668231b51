package domain

import (
	"context"
	"errors"
)

// ErrDuplicate is returned by repositories when a primary key already exists.
var ErrDuplicate = errors.New("already exists")

// Category groups sites on the dashboard.
type Category struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	OrderIndex int    `json:"order_index"`
}

// Site is a single bookmark within a category.
type Site struct {
	ID          string `json:"id"`
	CategoryID  string `json:"category_id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	OrderIndex  int    `json:"order_index"`
}

// CategoryWithSites is a category with its sites nested, as served publicly.
type CategoryWithSites struct {
	Category
	Sites []Site `json:"sites"`
}

// Setting is a single key/value dashboard setting.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Well-known setting keys.
const (
	SettingSiteTitle    = "site_title"
	SettingSearchEngine = "default_search_engine"
	SettingEnableLock   = "enable_lock"
)

// DefaultSettings are seeded by every store on first start.
var DefaultSettings = []Setting{
	{Key: SettingSiteTitle, Value: "Mao Nav"},
	{Key: SettingSearchEngine, Value: "bing"},
	{Key: SettingEnableLock, Value: "false"},
}

// CategoryRepository is the port for category persistence. Delete removes
// the category's sites as well.
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, c Category) error
	UpdateCategories(ctx context.Context, cs []Category) error
	DeleteCategory(ctx context.Context, id string) error
}

// SiteRepository is the port for site persistence.
type SiteRepository interface {
	ListSites(ctx context.Context) ([]Site, error)
	CreateSite(ctx context.Context, s Site) error
	UpdateSite(ctx context.Context, s Site) error
	DeleteSite(ctx context.Context, id string) error
}

// SettingRepository is the port for settings persistence. UpdateSettings
// only touches keys that already exist.
type SettingRepository interface {
	ListSettings(ctx context.Context) ([]Setting, error)
	GetSettings(ctx context.Context, keys ...string) (map[string]string, error)
	UpdateSettings(ctx context.Context, values map[string]string) error
}
