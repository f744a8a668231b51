package sqlite

import (
	"time"

	"maonav/internal/domain"

	"github.com/uptrace/bun"
)

type adminModel struct {
	bun.BaseModel `bun:"table:admins"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Username     string    `bun:"username,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull"`
}

func (m *adminModel) toDomain() *domain.Admin {
	return &domain.Admin{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

// sessionModel keeps expires_at as unix seconds so expiry checks compare
// integers rather than formatted timestamps.
type sessionModel struct {
	bun.BaseModel `bun:"table:sessions"`

	ID        string    `bun:"id,pk"`
	AdminID   int64     `bun:"admin_id,notnull"`
	Token     string    `bun:"token,notnull,unique"`
	ExpiresAt int64     `bun:"expires_at,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

func (m *sessionModel) toDomain() *domain.Session {
	return &domain.Session{
		ID:        m.ID,
		OwnerID:   m.AdminID,
		Token:     m.Token,
		ExpiresAt: time.Unix(m.ExpiresAt, 0).UTC(),
		CreatedAt: m.CreatedAt,
	}
}

type categoryModel struct {
	bun.BaseModel `bun:"table:categories"`

	ID         string `bun:"id,pk"`
	Name       string `bun:"name,notnull"`
	Icon       string `bun:"icon,notnull"`
	OrderIndex int    `bun:"order_index,notnull"`
}

type siteModel struct {
	bun.BaseModel `bun:"table:sites"`

	ID          string `bun:"id,pk"`
	CategoryID  string `bun:"category_id,notnull"`
	Name        string `bun:"name,notnull"`
	URL         string `bun:"url,notnull"`
	Description string `bun:"description,notnull"`
	Icon        string `bun:"icon,notnull"`
	OrderIndex  int    `bun:"order_index,notnull"`
}

type settingModel struct {
	bun.BaseModel `bun:"table:settings"`

	Key   string `bun:"key,pk"`
	Value string `bun:"value,notnull"`
}
