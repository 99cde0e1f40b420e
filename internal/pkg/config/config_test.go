//go:build unit

package config_test

import (
	"testing"
	"time"

	"market-client/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults are applied", func(t *testing.T) {
		t.Setenv("REMOTE_BASE_URL", "https://api.example.com")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 10*time.Second, cfg.Remote.Timeout)
		assert.Equal(t, 30*time.Second, cfg.Cache.PollInterval)
		assert.True(t, cfg.Cache.KeepPreviousData)
		assert.Equal(t, "sAccessToken", cfg.Auth.CookieName)
		assert.Equal(t, "8080", cfg.Server.Port)
	})

	t.Run("base url is required", func(t *testing.T) {
		t.Setenv("REMOTE_BASE_URL", "")

		_, err := config.LoadConfig()
		require.Error(t, err)
	})

	t.Run("base url must be http", func(t *testing.T) {
		t.Setenv("REMOTE_BASE_URL", "ftp://api.example.com")

		_, err := config.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scheme")
	})
}
