package postgres

import (
	"context"

	"maonav/internal/domain"
)

var _ domain.CategoryRepository = (*DB)(nil)
var _ domain.SiteRepository = (*DB)(nil)

// ListCategories lists categories ordered by order_index.
func (d *DB) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, name, icon, order_index FROM categories ORDER BY order_index, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.OrderIndex); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateCategory inserts a category.
func (d *DB) CreateCategory(ctx context.Context, c domain.Category) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO categories (id, name, icon, order_index) VALUES ($1, $2, $3, $4)",
		c.ID, c.Name, c.Icon, c.OrderIndex,
	)
	return mapErr(err)
}

// UpdateCategories updates all given categories in one transaction.
func (d *DB) UpdateCategories(ctx context.Context, cs []domain.Category) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range cs {
		if _, err := tx.ExecContext(ctx,
			"UPDATE categories SET name = $1, icon = $2, order_index = $3 WHERE id = $4",
			c.Name, c.Icon, c.OrderIndex, c.ID,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeleteCategory removes a category and its sites.
func (d *DB) DeleteCategory(ctx context.Context, id string) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM sites WHERE category_id = $1", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id); err != nil {
		return err
	}
	return tx.Commit()
}

// ListSites lists sites ordered by category then order_index.
func (d *DB) ListSites(ctx context.Context) ([]domain.Site, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, category_id, name, url, description, icon, order_index FROM sites ORDER BY category_id, order_index, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.Site, 0)
	for rows.Next() {
		var s domain.Site
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.URL, &s.Description, &s.Icon, &s.OrderIndex); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CreateSite inserts a site.
func (d *DB) CreateSite(ctx context.Context, s domain.Site) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO sites (id, category_id, name, url, description, icon, order_index) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		s.ID, s.CategoryID, s.Name, s.URL, s.Description, s.Icon, s.OrderIndex,
	)
	return mapErr(err)
}

// UpdateSite overwrites a site.
func (d *DB) UpdateSite(ctx context.Context, s domain.Site) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE sites SET category_id = $1, name = $2, url = $3, description = $4, icon = $5, order_index = $6 WHERE id = $7",
		s.CategoryID, s.Name, s.URL, s.Description, s.Icon, s.OrderIndex, s.ID,
	)
	return err
}

// DeleteSite removes a site.
func (d *DB) DeleteSite(ctx context.Context, id string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM sites WHERE id = $1", id)
	return err
}
