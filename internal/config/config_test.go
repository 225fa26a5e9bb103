package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir is t.Chdir for toolchains older than Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	// Run from a temp dir so a developer's config.yaml is not picked up.
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://oauth.reddit.com/", cfg.API.BaseURL)
	assert.Equal(t, "https://www.reddit.com/", cfg.API.AuthURL)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, time.Hour, cfg.Cache.QuickTTL)
	assert.Empty(t, cfg.Credentials.ClientID, "credentials default to absent, not invalid")
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("REDDIT_CLIENT_ID", "env-id")
	t.Setenv("REDDIT_CLIENT_SECRET", "env-secret")
	t.Setenv("REDDIT_USERNAME", "env-user")
	t.Setenv("REDDIT_PASSWORD", "env-pass")
	t.Setenv("LURK_CACHE_PATH", "/tmp/custom-cache.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-id", cfg.Credentials.ClientID)
	assert.Equal(t, "env-secret", cfg.Credentials.ClientSecret)
	assert.Equal(t, "env-user", cfg.Credentials.Username)
	assert.Equal(t, "env-pass", cfg.Credentials.Password)
	assert.Equal(t, "/tmp/custom-cache.db", cfg.Cache.Path)
}
