package app

import (
	"context"
	"time"

	"maonav/internal/domain"
)

type mockSessionRepo struct {
	createFn        func(ctx context.Context, s *domain.Session) error
	findByTokenFn   func(ctx context.Context, token string, now time.Time) (*domain.Session, error)
	deleteByTokenFn func(ctx context.Context, token string) error
	deleteByOwnerFn func(ctx context.Context, ownerID int64) error
	deleteExpiredFn func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, s)
	}
	return nil
}

func (m *mockSessionRepo) FindByToken(ctx context.Context, token string, now time.Time) (*domain.Session, error) {
	if m.findByTokenFn != nil {
		return m.findByTokenFn(ctx, token, now)
	}
	return nil, nil
}

func (m *mockSessionRepo) DeleteByToken(ctx context.Context, token string) error {
	if m.deleteByTokenFn != nil {
		return m.deleteByTokenFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteByOwner(ctx context.Context, ownerID int64) error {
	if m.deleteByOwnerFn != nil {
		return m.deleteByOwnerFn(ctx, ownerID)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx, now)
	}
	return 0, nil
}

type mockCatalogRepo struct {
	listCategoriesFn   func(ctx context.Context) ([]domain.Category, error)
	createCategoryFn   func(ctx context.Context, c domain.Category) error
	updateCategoriesFn func(ctx context.Context, cs []domain.Category) error
	deleteCategoryFn   func(ctx context.Context, id string) error
	listSitesFn        func(ctx context.Context) ([]domain.Site, error)
	createSiteFn       func(ctx context.Context, s domain.Site) error
	updateSiteFn       func(ctx context.Context, s domain.Site) error
	deleteSiteFn       func(ctx context.Context, id string) error
	getSettingsFn      func(ctx context.Context, keys ...string) (map[string]string, error)
	updateSettingsFn   func(ctx context.Context, values map[string]string) error
}

func (m *mockCatalogRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn(ctx)
	}
	return nil, nil
}

func (m *mockCatalogRepo) CreateCategory(ctx context.Context, c domain.Category) error {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(ctx, c)
	}
	return nil
}

func (m *mockCatalogRepo) UpdateCategories(ctx context.Context, cs []domain.Category) error {
	if m.updateCategoriesFn != nil {
		return m.updateCategoriesFn(ctx, cs)
	}
	return nil
}

func (m *mockCatalogRepo) DeleteCategory(ctx context.Context, id string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(ctx, id)
	}
	return nil
}

func (m *mockCatalogRepo) ListSites(ctx context.Context) ([]domain.Site, error) {
	if m.listSitesFn != nil {
		return m.listSitesFn(ctx)
	}
	return nil, nil
}

func (m *mockCatalogRepo) CreateSite(ctx context.Context, s domain.Site) error {
	if m.createSiteFn != nil {
		return m.createSiteFn(ctx, s)
	}
	return nil
}

func (m *mockCatalogRepo) UpdateSite(ctx context.Context, s domain.Site) error {
	if m.updateSiteFn != nil {
		return m.updateSiteFn(ctx, s)
	}
	return nil
}

func (m *mockCatalogRepo) DeleteSite(ctx context.Context, id string) error {
	if m.deleteSiteFn != nil {
		return m.deleteSiteFn(ctx, id)
	}
	return nil
}

func (m *mockCatalogRepo) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	return nil, nil
}

func (m *mockCatalogRepo) GetSettings(ctx context.Context, keys ...string) (map[string]string, error) {
	if m.getSettingsFn != nil {
		return m.getSettingsFn(ctx, keys...)
	}
	return map[string]string{}, nil
}

func (m *mockCatalogRepo) UpdateSettings(ctx context.Context, values map[string]string) error {
	if m.updateSettingsFn != nil {
		return m.updateSettingsFn(ctx, values)
	}
	return nil
}
