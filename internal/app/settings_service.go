package app

import (
	"context"
	"encoding/json"
	"strconv"

	"maonav/internal/domain"
)

// PublicSettingKeys are the settings readable without authentication.
var PublicSettingKeys = []string{
	domain.SettingSiteTitle,
	domain.SettingSearchEngine,
	domain.SettingEnableLock,
}

// SettingsService encapsulates dashboard settings use cases.
type SettingsService struct {
	repo domain.SettingRepository
}

// NewSettingsService creates a SettingsService backed by the given repository.
func NewSettingsService(repo domain.SettingRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// List returns every stored setting.
func (s *SettingsService) List(ctx context.Context) ([]domain.Setting, error) {
	return s.repo.ListSettings(ctx)
}

// Public returns the settings shown to anonymous visitors.
func (s *SettingsService) Public(ctx context.Context) (map[string]string, error) {
	return s.repo.GetSettings(ctx, PublicSettingKeys...)
}

// Update stores the given values. Keys that do not exist yet are ignored.
func (s *SettingsService) Update(ctx context.Context, values map[string]any) error {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = settingValue(v)
	}
	return s.repo.UpdateSettings(ctx, out)
}

func settingValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}
