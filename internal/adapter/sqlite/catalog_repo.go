package sqlite

import (
	"context"

	"maonav/internal/domain"

	"github.com/uptrace/bun"
)

var _ domain.CategoryRepository = (*DB)(nil)
var _ domain.SiteRepository = (*DB)(nil)
var _ domain.SettingRepository = (*DB)(nil)

// ListCategories lists categories ordered by order_index.
func (d *DB) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var rows []categoryModel
	if err := d.bun.NewSelect().Model(&rows).Order("order_index", "id").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.Category{ID: m.ID, Name: m.Name, Icon: m.Icon, OrderIndex: m.OrderIndex})
	}
	return out, nil
}

// CreateCategory inserts a category.
func (d *DB) CreateCategory(ctx context.Context, c domain.Category) error {
	m := categoryModel{ID: c.ID, Name: c.Name, Icon: c.Icon, OrderIndex: c.OrderIndex}
	_, err := d.bun.NewInsert().Model(&m).Exec(ctx)
	return mapErr(err)
}

// UpdateCategories updates all given categories in one transaction.
func (d *DB) UpdateCategories(ctx context.Context, cs []domain.Category) error {
	return d.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, c := range cs {
			m := categoryModel{ID: c.ID, Name: c.Name, Icon: c.Icon, OrderIndex: c.OrderIndex}
			if _, err := tx.NewUpdate().Model(&m).WherePK().Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteCategory removes a category and its sites.
func (d *DB) DeleteCategory(ctx context.Context, id string) error {
	return d.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*siteModel)(nil)).Where("category_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().Model((*categoryModel)(nil)).Where("id = ?", id).Exec(ctx)
		return err
	})
}

// ListSites lists sites ordered by category then order_index.
func (d *DB) ListSites(ctx context.Context) ([]domain.Site, error) {
	var rows []siteModel
	if err := d.bun.NewSelect().Model(&rows).Order("category_id", "order_index", "id").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Site, 0, len(rows))
	for _, m := range rows {
		out = append(out, siteFromModel(m))
	}
	return out, nil
}

// CreateSite inserts a site.
func (d *DB) CreateSite(ctx context.Context, s domain.Site) error {
	m := siteToModel(s)
	_, err := d.bun.NewInsert().Model(&m).Exec(ctx)
	return mapErr(err)
}

// UpdateSite overwrites a site.
func (d *DB) UpdateSite(ctx context.Context, s domain.Site) error {
	m := siteToModel(s)
	_, err := d.bun.NewUpdate().Model(&m).WherePK().Exec(ctx)
	return err
}

// DeleteSite removes a site.
func (d *DB) DeleteSite(ctx context.Context, id string) error {
	_, err := d.bun.NewDelete().Model((*siteModel)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

// ListSettings lists all settings ordered by key.
func (d *DB) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	var rows []settingModel
	if err := d.bun.NewSelect().Model(&rows).Order("key").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Setting, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.Setting{Key: m.Key, Value: m.Value})
	}
	return out, nil
}

// GetSettings returns the values of the requested keys that exist.
func (d *DB) GetSettings(ctx context.Context, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	var rows []settingModel
	if err := d.bun.NewSelect().Model(&rows).Where("key IN (?)", bun.In(keys)).Scan(ctx); err != nil {
		return nil, err
	}
	for _, m := range rows {
		out[m.Key] = m.Value
	}
	return out, nil
}

// UpdateSettings updates existing keys in one transaction; unknown keys are
// left alone.
func (d *DB) UpdateSettings(ctx context.Context, values map[string]string) error {
	return d.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for k, v := range values {
			if _, err := tx.NewUpdate().
				Model((*settingModel)(nil)).
				Set("value = ?", v).
				Where("key = ?", k).
				Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

func siteToModel(s domain.Site) siteModel {
	return siteModel{
		ID:          s.ID,
		CategoryID:  s.CategoryID,
		Name:        s.Name,
		URL:         s.URL,
		Description: s.Description,
		Icon:        s.Icon,
		OrderIndex:  s.OrderIndex,
	}
}

func siteFromModel(m siteModel) domain.Site {
	return domain.Site{
		ID:          m.ID,
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		URL:         m.URL,
		Description: m.Description,
		Icon:        m.Icon,
		OrderIndex:  m.OrderIndex,
	}
}
