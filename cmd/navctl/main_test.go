package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"maonav/internal/adapter/sqlite"
	"maonav/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, dsn string) {
	t.Helper()
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE", "sqlite")
	t.Setenv("SQLITE_DSN", dsn)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD", "")
}

func TestRun_Usage(t *testing.T) {
	assert.Error(t, run(nil, &bytes.Buffer{}))
	assert.Error(t, run([]string{"bogus"}, &bytes.Buffer{}))
	assert.Error(t, run([]string{"migrate"}, &bytes.Buffer{}))
	assert.Error(t, run([]string{"reset-password", "-username", "admin"}, &bytes.Buffer{}))
}

func TestMigrateSQLite(t *testing.T) {
	setEnv(t, "file:"+filepath.Join(t.TempDir(), "nav.db"))

	var out bytes.Buffer
	require.NoError(t, run([]string{"migrate", "up"}, &out))
	assert.Contains(t, out.String(), "migrate up: ok")

	assert.Error(t, run([]string{"migrate", "down"}, &out))
}

func TestResetPassword(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "nav.db")
	setEnv(t, dsn)

	db, err := sqlite.Open(dsn)
	require.NoError(t, err)
	_, err = db.Create(context.Background(), "admin", "$2a$10$legacylegacylegacylegacyleg")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	var out bytes.Buffer
	require.NoError(t, run([]string{"reset-password", "-username", "admin", "-password", "fresh"}, &out))
	assert.True(t, strings.Contains(out.String(), `"admin"`))

	db, err = sqlite.Open(dsn)
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck
	a, err := db.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, security.NewPasswordHasher("s3cret").Hash("fresh"), a.PasswordHash)

	err = run([]string{"reset-password", "-username", "ghost", "-password", "x"}, &out)
	assert.Error(t, err)
}
