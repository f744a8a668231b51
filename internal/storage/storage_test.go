package storage

import (
	"context"
	"testing"

	"maonav/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	for _, cfg := range []*config.Config{
		{Store: config.StoreMemory},
		{Store: config.StoreSQLite, SQLiteDSN: ":memory:"},
	} {
		t.Run(cfg.Store, func(t *testing.T) {
			b, err := Open(cfg)
			require.NoError(t, err)
			defer b.Close() //nolint:errcheck

			settings, err := b.Repos.ListSettings(context.Background())
			require.NoError(t, err)
			assert.NotEmpty(t, settings)
			assert.NotNil(t, b.Sessions)
		})
	}
}

func TestOpen_UnknownStore(t *testing.T) {
	_, err := Open(&config.Config{Store: "d1"})
	assert.Error(t, err)
}
