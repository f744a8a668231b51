package app

import (
	"context"

	"maonav/internal/domain"
)

const (
	defaultTitle  = "Mao Nav"
	defaultSearch = "bing"
)

// DashboardService assembles the public dashboard view.
type DashboardService struct {
	categories domain.CategoryRepository
	sites      domain.SiteRepository
	settings   domain.SettingRepository
}

// NewDashboardService creates a DashboardService backed by the given repositories.
func NewDashboardService(cr domain.CategoryRepository, sr domain.SiteRepository, st domain.SettingRepository) *DashboardService {
	return &DashboardService{categories: cr, sites: sr, settings: st}
}

// Dashboard is the public view of all categories with their sites.
type Dashboard struct {
	Categories []domain.CategoryWithSites `json:"categories"`
	Title      string                     `json:"title"`
	Search     string                     `json:"search"`
}

// Get returns categories in order with their sites nested, plus the title
// and default search engine.
func (s *DashboardService) Get(ctx context.Context) (*Dashboard, error) {
	cats, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	sites, err := s.sites.ListSites(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.GetSettings(ctx, domain.SettingSiteTitle, domain.SettingSearchEngine)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]domain.Site)
	for _, site := range sites {
		byCategory[site.CategoryID] = append(byCategory[site.CategoryID], site)
	}

	out := &Dashboard{
		Categories: make([]domain.CategoryWithSites, 0, len(cats)),
		Title:      orDefault(settings[domain.SettingSiteTitle], defaultTitle),
		Search:     orDefault(settings[domain.SettingSearchEngine], defaultSearch),
	}
	for _, c := range cats {
		cs := byCategory[c.ID]
		if cs == nil {
			cs = []domain.Site{}
		}
		out.Categories = append(out.Categories, domain.CategoryWithSites{Category: c, Sites: cs})
	}
	return out, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
