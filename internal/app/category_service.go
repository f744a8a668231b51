package app

import (
	"context"
	"fmt"

	"maonav/internal/domain"
)

// CategoryService encapsulates category management use cases.
type CategoryService struct {
	repo domain.CategoryRepository
}

// NewCategoryService creates a CategoryService backed by the given repository.
func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// List returns all categories ordered by order_index.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

// Create validates and stores a new category.
func (s *CategoryService) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	if c.ID == "" || c.Name == "" || c.Icon == "" {
		return c, fmt.Errorf("%w: id, name and icon are required", ErrMissingFields)
	}
	return c, s.repo.CreateCategory(ctx, c)
}

// UpdateMany rewrites name, icon and order of every listed category.
func (s *CategoryService) UpdateMany(ctx context.Context, cs []domain.Category) error {
	for _, c := range cs {
		if c.ID == "" {
			return fmt.Errorf("%w: every category needs an id", ErrMissingFields)
		}
	}
	return s.repo.UpdateCategories(ctx, cs)
}

// Delete removes a category together with its sites.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}
