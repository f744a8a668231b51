// Package sqlite implements the domain repositories on SQLite using bun.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"maonav/internal/domain"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// DB wraps a *bun.DB and implements domain repository interfaces.
type DB struct {
	bun *bun.DB
}

// Open opens the database at dsn, creates missing tables and seeds the
// default settings. Use ":memory:" for a throwaway database.
func Open(dsn string) (*DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer; one connection also keeps :memory: alive.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)

	db := &DB{bun: bun.NewDB(sqldb, sqlitedialect.New())}

	ctx := context.Background()
	if err := db.createSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	if err := db.seedSettings(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed settings: %w", err)
	}
	return db, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.bun.Close()
}

func (d *DB) createSchema(ctx context.Context) error {
	for _, model := range []any{
		(*adminModel)(nil),
		(*sessionModel)(nil),
		(*categoryModel)(nil),
		(*siteModel)(nil),
		(*settingModel)(nil),
	} {
		if _, err := d.bun.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	if _, err := d.bun.NewCreateIndex().
		Model((*siteModel)(nil)).
		Index("idx_sites_category_order").
		IfNotExists().
		Column("category_id", "order_index").
		Exec(ctx); err != nil {
		return err
	}
	_, err := d.bun.NewCreateIndex().
		Model((*sessionModel)(nil)).
		Index("idx_sessions_expires_at").
		IfNotExists().
		Column("expires_at").
		Exec(ctx)
	return err
}

func (d *DB) seedSettings(ctx context.Context) error {
	rows := make([]settingModel, 0, len(domain.DefaultSettings))
	for _, s := range domain.DefaultSettings {
		rows = append(rows, settingModel{Key: s.Key, Value: s.Value})
	}
	_, err := d.bun.NewInsert().Model(&rows).On("CONFLICT (key) DO NOTHING").Exec(ctx)
	return err
}

// mapErr translates unique-constraint violations into domain.ErrDuplicate.
// sqliteshim may load either SQLite driver, so the message text is the only
// signal both share.
func mapErr(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return domain.ErrDuplicate
	}
	return err
}

func noRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
