package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Failure - Missing JWT Secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("Success - Defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret-key")
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.ListenAddr)
		assert.Equal(t, "v1", cfg.APIVersion)
		assert.Equal(t, StoragePostgres, cfg.Storage)
		assert.Equal(t, "secret-key", cfg.JWTSecret)
		assert.Empty(t, cfg.AllowedOrigins)
	})

	t.Run("Success - Origins Split", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret-key")
		t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	})

	t.Run("Failure - Unknown Storage", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret-key")
		t.Setenv("STORAGE", "redis")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("Success - Memory Storage", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret-key")
		t.Setenv("STORAGE", "memory")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, StorageMemory, cfg.Storage)
	})
}
