// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tagbook/internal/platform/config"
)

/*
TestLoad_Defaults verifies the defaults applied when only the required variables are set.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/tagbook")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, "./migrations", cfg.MigrationPath)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.WriteGuardEnabled())
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.TrustProxyHeaders)
}

/*
TestLoad_MissingDatabaseURL rejects an unset or empty DSN.
*/
func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("unset", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		require.NoError(t, os.Unsetenv("DATABASE_URL"))

		_, err := config.Load()
		assert.Error(t, err)
	})
}

/*
TestLoad_Overrides covers locale canonicalization and list parsing.
*/
func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/tagbook")
	t.Setenv("DEFAULT_LOCALE", "pt_br")
	t.Setenv("EXTRA_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/pub.pem")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "pt-BR", cfg.DefaultLocale)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
	assert.True(t, cfg.WriteGuardEnabled())
	assert.True(t, cfg.IsProduction())
}

/*
TestLoad_BadLocale rejects a default locale that is not a BCP 47 tag.
*/
func TestLoad_BadLocale(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/tagbook")
	t.Setenv("DEFAULT_LOCALE", "not a locale!")

	_, err := config.Load()
	assert.Error(t, err)
}
