package app

import (
	"context"
	"fmt"

	"maonav/internal/domain"
)

// SiteService encapsulates site management use cases.
type SiteService struct {
	repo domain.SiteRepository
}

// NewSiteService creates a SiteService backed by the given repository.
func NewSiteService(repo domain.SiteRepository) *SiteService {
	return &SiteService{repo: repo}
}

// List returns all sites ordered by category and order_index.
func (s *SiteService) List(ctx context.Context) ([]domain.Site, error) {
	return s.repo.ListSites(ctx)
}

// Create validates and stores a new site.
func (s *SiteService) Create(ctx context.Context, site domain.Site) (domain.Site, error) {
	if site.ID == "" {
		return site, fmt.Errorf("%w: id is required", ErrMissingFields)
	}
	if err := validateSite(site); err != nil {
		return site, err
	}
	return site, s.repo.CreateSite(ctx, site)
}

// Update overwrites the site identified by id.
func (s *SiteService) Update(ctx context.Context, id string, site domain.Site) error {
	site.ID = id
	if err := validateSite(site); err != nil {
		return err
	}
	return s.repo.UpdateSite(ctx, site)
}

// Delete removes a site.
func (s *SiteService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteSite(ctx, id)
}

func validateSite(site domain.Site) error {
	if site.CategoryID == "" || site.Name == "" || site.URL == "" {
		return fmt.Errorf("%w: category_id, name and url are required", ErrMissingFields)
	}
	return nil
}
