// Package storetest holds behaviour tests shared by every repository adapter.
package storetest

import (
	"context"
	"testing"
	"time"

	"maonav/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Store is the full set of ports an adapter provides.
type Store interface {
	domain.AdminRepository
	domain.CategoryRepository
	domain.SiteRepository
	domain.SettingRepository
}

// Factory returns a fresh, empty store and its session repository.
type Factory func(t *testing.T) (Store, domain.SessionRepository)

// Run exercises the repository contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("Admins", func(t *testing.T) { testAdmins(t, newStore) })
	t.Run("Sessions", func(t *testing.T) { testSessions(t, newStore) })
	t.Run("Categories", func(t *testing.T) { testCategories(t, newStore) })
	t.Run("Sites", func(t *testing.T) { testSites(t, newStore) })
	t.Run("Settings", func(t *testing.T) { testSettings(t, newStore) })
}

func testAdmins(t *testing.T, newStore Factory) {
	store, _ := newStore(t)
	ctx := context.Background()

	missing, err := store.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	a, err := store.Create(ctx, "admin", "hash-1")
	require.NoError(t, err)
	assert.NotZero(t, a.ID)
	assert.Equal(t, "admin", a.Username)

	_, err = store.Create(ctx, "admin", "hash-2")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, store.UpdatePasswordHash(ctx, a.ID, "hash-3"))

	byID, err := store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "hash-3", byID.PasswordHash)

	byName, err := store.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, a.ID, byName.ID)

	none, err := store.GetByID(ctx, a.ID+100)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func testSessions(t *testing.T, newStore Factory) {
	store, sessions := newStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	owner, err := store.Create(ctx, "admin", "hash")
	require.NoError(t, err)

	newSession := func(token string, expiresAt time.Time) *domain.Session {
		return &domain.Session{
			ID:        uuid.NewString(),
			OwnerID:   owner.ID,
			Token:     token,
			ExpiresAt: expiresAt,
			CreatedAt: now,
		}
	}
	require.NoError(t, sessions.Create(ctx, newSession("live-1", now.Add(time.Hour))))
	require.NoError(t, sessions.Create(ctx, newSession("live-2", now.Add(2*time.Hour))))
	require.NoError(t, sessions.Create(ctx, newSession("stale", now.Add(-time.Hour))))

	got, err := sessions.FindByToken(ctx, "live-1", now)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, owner.ID, got.OwnerID)
	assert.Equal(t, "live-1", got.Token)
	assert.True(t, got.ExpiresAt.Equal(now.Add(time.Hour)), "expires_at = %v", got.ExpiresAt)

	stale, err := sessions.FindByToken(ctx, "stale", now)
	require.NoError(t, err)
	assert.Nil(t, stale, "expired rows must be treated as absent")

	atExpiry, err := sessions.FindByToken(ctx, "live-1", now.Add(time.Hour))
	require.NoError(t, err)
	assert.Nil(t, atExpiry)

	require.NoError(t, sessions.DeleteByToken(ctx, "live-1"))
	gone, err := sessions.FindByToken(ctx, "live-1", now)
	require.NoError(t, err)
	assert.Nil(t, gone)

	purged, err := sessions.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	require.NoError(t, sessions.DeleteByOwner(ctx, owner.ID))
	left, err := sessions.FindByToken(ctx, "live-2", now)
	require.NoError(t, err)
	assert.Nil(t, left)
}

func testCategories(t *testing.T, newStore Factory) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateCategory(ctx, domain.Category{ID: "dev", Name: "Dev", Icon: "code", OrderIndex: 2}))
	require.NoError(t, store.CreateCategory(ctx, domain.Category{ID: "news", Name: "News", Icon: "paper", OrderIndex: 1}))
	assert.ErrorIs(t, store.CreateCategory(ctx, domain.Category{ID: "dev", Name: "Again", Icon: "x"}), domain.ErrDuplicate)

	require.NoError(t, store.CreateSite(ctx, domain.Site{ID: "gh", CategoryID: "dev", Name: "GitHub", URL: "https://github.com"}))
	require.NoError(t, store.CreateSite(ctx, domain.Site{ID: "hn", CategoryID: "news", Name: "HN", URL: "https://news.ycombinator.com"}))

	cats, err := store.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "news", cats[0].ID)
	assert.Equal(t, "dev", cats[1].ID)

	require.NoError(t, store.UpdateCategories(ctx, []domain.Category{
		{ID: "dev", Name: "Development", Icon: "terminal", OrderIndex: 0},
		{ID: "missing", Name: "Ghost"},
	}))
	cats, err = store.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, domain.Category{ID: "dev", Name: "Development", Icon: "terminal", OrderIndex: 0}, cats[0])

	require.NoError(t, store.DeleteCategory(ctx, "dev"))
	cats, err = store.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)

	sites, err := store.ListSites(ctx)
	require.NoError(t, err)
	require.Len(t, sites, 1, "sites of a deleted category are removed with it")
	assert.Equal(t, "hn", sites[0].ID)
}

func testSites(t *testing.T, newStore Factory) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateCategory(ctx, domain.Category{ID: "a", Name: "A", Icon: "a"}))
	require.NoError(t, store.CreateCategory(ctx, domain.Category{ID: "b", Name: "B", Icon: "b"}))

	for _, s := range []domain.Site{
		{ID: "b1", CategoryID: "b", Name: "B1", URL: "https://b1", OrderIndex: 1},
		{ID: "a2", CategoryID: "a", Name: "A2", URL: "https://a2", OrderIndex: 2},
		{ID: "a1", CategoryID: "a", Name: "A1", URL: "https://a1", OrderIndex: 1, Description: "first", Icon: "star"},
	} {
		require.NoError(t, store.CreateSite(ctx, s))
	}
	assert.ErrorIs(t, store.CreateSite(ctx, domain.Site{ID: "a1", CategoryID: "a", Name: "dup", URL: "https://dup"}), domain.ErrDuplicate)

	sites, err := store.ListSites(ctx)
	require.NoError(t, err)
	require.Len(t, sites, 3)
	assert.Equal(t, []string{"a1", "a2", "b1"}, []string{sites[0].ID, sites[1].ID, sites[2].ID})
	assert.Equal(t, "first", sites[0].Description)
	assert.Equal(t, "star", sites[0].Icon)

	updated := domain.Site{ID: "a2", CategoryID: "b", Name: "Moved", URL: "https://moved", OrderIndex: 0}
	require.NoError(t, store.UpdateSite(ctx, updated))
	sites, err = store.ListSites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2", "b1"}, []string{sites[0].ID, sites[1].ID, sites[2].ID})
	assert.Equal(t, updated, sites[1])

	require.NoError(t, store.DeleteSite(ctx, "a1"))
	require.NoError(t, store.DeleteSite(ctx, "does-not-exist"))
	sites, err = store.ListSites(ctx)
	require.NoError(t, err)
	assert.Len(t, sites, 2)
}

func testSettings(t *testing.T, newStore Factory) {
	store, _ := newStore(t)
	ctx := context.Background()

	all, err := store.ListSettings(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, domain.DefaultSettings, all)

	require.NoError(t, store.UpdateSettings(ctx, map[string]string{
		domain.SettingSiteTitle: "My Nav",
		"unknown_key":           "ignored",
	}))

	got, err := store.GetSettings(ctx, domain.SettingSiteTitle, domain.SettingSearchEngine, "unknown_key")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		domain.SettingSiteTitle:    "My Nav",
		domain.SettingSearchEngine: "bing",
	}, got)

	all, err = store.ListSettings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(domain.DefaultSettings))
}
