package app

import (
	"context"
	"errors"
	"testing"

	"maonav/internal/adapter/memory"
	"maonav/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_Create(t *testing.T) {
	svc := NewCategoryService(memory.New())
	ctx := context.Background()

	tests := []struct {
		name    string
		in      domain.Category
		wantErr error
	}{
		{"valid", domain.Category{ID: "dev", Name: "Dev", Icon: "code"}, nil},
		{"missing id", domain.Category{Name: "Dev", Icon: "code"}, ErrMissingFields},
		{"missing name", domain.Category{ID: "x", Icon: "code"}, ErrMissingFields},
		{"missing icon", domain.Category{ID: "y", Name: "Y"}, ErrMissingFields},
		{"duplicate", domain.Category{ID: "dev", Name: "Dev", Icon: "code"}, domain.ErrDuplicate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Create(ctx, tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in, got)
		})
	}
}

func TestCategoryService_UpdateManyRequiresIDs(t *testing.T) {
	called := false
	svc := NewCategoryService(&mockCatalogRepo{
		updateCategoriesFn: func(context.Context, []domain.Category) error {
			called = true
			return nil
		},
	})

	err := svc.UpdateMany(context.Background(), []domain.Category{{ID: "a"}, {Name: "no id"}})
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.False(t, called, "nothing is written when any entry is invalid")

	require.NoError(t, svc.UpdateMany(context.Background(), []domain.Category{{ID: "a"}}))
	assert.True(t, called)
}

func TestCategoryService_DeleteRemovesSites(t *testing.T) {
	db := memory.New()
	cats := NewCategoryService(db)
	sites := NewSiteService(db)
	ctx := context.Background()

	_, err := cats.Create(ctx, domain.Category{ID: "dev", Name: "Dev", Icon: "code"})
	require.NoError(t, err)
	_, err = sites.Create(ctx, domain.Site{ID: "gh", CategoryID: "dev", Name: "GitHub", URL: "https://github.com"})
	require.NoError(t, err)

	require.NoError(t, cats.Delete(ctx, "dev"))

	left, err := sites.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestSiteService(t *testing.T) {
	db := memory.New()
	svc := NewSiteService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.Site{CategoryID: "c", Name: "n", URL: "u"})
	assert.ErrorIs(t, err, ErrMissingFields)
	_, err = svc.Create(ctx, domain.Site{ID: "s", Name: "n", URL: "u"})
	assert.ErrorIs(t, err, ErrMissingFields)

	created, err := svc.Create(ctx, domain.Site{ID: "s", CategoryID: "c", Name: "n", URL: "u"})
	require.NoError(t, err)
	assert.Equal(t, "s", created.ID)

	assert.ErrorIs(t, svc.Update(ctx, "s", domain.Site{CategoryID: "c", Name: "n"}), ErrMissingFields)

	require.NoError(t, svc.Update(ctx, "s", domain.Site{ID: "ignored", CategoryID: "c", Name: "renamed", URL: "u2", Icon: "i"}))
	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.Site{ID: "s", CategoryID: "c", Name: "renamed", URL: "u2", Icon: "i"}, list[0])

	require.NoError(t, svc.Delete(ctx, "s"))
	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSettingsService(t *testing.T) {
	db := memory.New()
	svc := NewSettingsService(db)
	ctx := context.Background()

	pub, err := svc.Public(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		domain.SettingSiteTitle:    "Mao Nav",
		domain.SettingSearchEngine: "bing",
		domain.SettingEnableLock:   "false",
	}, pub)

	require.NoError(t, svc.Update(ctx, map[string]any{
		domain.SettingSiteTitle:  "Home",
		domain.SettingEnableLock: true,
		"brand_new":              "ignored",
	}))

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.Setting{
		{Key: domain.SettingSiteTitle, Value: "Home"},
		{Key: domain.SettingSearchEngine, Value: "bing"},
		{Key: domain.SettingEnableLock, Value: "true"},
	}, all)
}

func TestSettingValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{true, "true"},
		{float64(3), "3"},
		{1.5, "1.5"},
		{[]any{"a", 1.0}, `["a",1]`},
		{map[string]any{"k": "v"}, `{"k":"v"}`},
	}
	for _, tt := range tests {
		if got := settingValue(tt.in); got != tt.want {
			t.Errorf("settingValue(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDashboardService_Get(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	require.NoError(t, db.CreateCategory(ctx, domain.Category{ID: "news", Name: "News", Icon: "paper", OrderIndex: 2}))
	require.NoError(t, db.CreateCategory(ctx, domain.Category{ID: "dev", Name: "Dev", Icon: "code", OrderIndex: 1}))
	require.NoError(t, db.CreateSite(ctx, domain.Site{ID: "gh", CategoryID: "dev", Name: "GitHub", URL: "https://github.com", OrderIndex: 2}))
	require.NoError(t, db.CreateSite(ctx, domain.Site{ID: "go", CategoryID: "dev", Name: "Go", URL: "https://go.dev", OrderIndex: 1}))
	require.NoError(t, db.UpdateSettings(ctx, map[string]string{domain.SettingSearchEngine: "google"}))

	d, err := NewDashboardService(db, db, db).Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Mao Nav", d.Title)
	assert.Equal(t, "google", d.Search)
	require.Len(t, d.Categories, 2)
	assert.Equal(t, "dev", d.Categories[0].ID)
	assert.Equal(t, []string{"go", "gh"}, []string{d.Categories[0].Sites[0].ID, d.Categories[0].Sites[1].ID})
	assert.NotNil(t, d.Categories[1].Sites)
	assert.Empty(t, d.Categories[1].Sites)
}

func TestDashboardService_DefaultsAndErrors(t *testing.T) {
	repo := &mockCatalogRepo{}
	d, err := NewDashboardService(repo, repo, repo).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Mao Nav", d.Title)
	assert.Equal(t, "bing", d.Search)
	assert.NotNil(t, d.Categories)

	boom := errors.New("boom")
	repo.listSitesFn = func(context.Context) ([]domain.Site, error) { return nil, boom }
	_, err = NewDashboardService(repo, repo, repo).Get(context.Background())
	assert.ErrorIs(t, err, boom)
}
