package postgres

import (
	"context"

	"maonav/internal/domain"

	"github.com/lib/pq"
)

var _ domain.SettingRepository = (*DB)(nil)

// ListSettings lists all settings ordered by key.
func (d *DB) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT key, value FROM settings ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.Setting, 0)
	for rows.Next() {
		var s domain.Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetSettings returns the values of the requested keys that exist.
func (d *DB) GetSettings(ctx context.Context, keys ...string) (map[string]string, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT key, value FROM settings WHERE key = ANY($1)", pq.Array(keys))
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make(map[string]string, len(keys))
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

// UpdateSettings updates existing keys in one transaction; unknown keys are
// left alone.
func (d *DB) UpdateSettings(ctx context.Context, values map[string]string) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for k, v := range values {
		if _, err := tx.ExecContext(ctx, "UPDATE settings SET value = $1 WHERE key = $2", v, k); err != nil {
			return err
		}
	}
	return tx.Commit()
}
