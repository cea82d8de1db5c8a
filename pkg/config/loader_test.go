package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policywise/entitlements/pkg/config"
)

// The cache is process-global, so these tests share it and cannot run in
// parallel with each other.

type ledgerConfig struct {
	Backend string `env:"TEST_USAGE_BACKEND" envDefault:"postgres"`
	KeyTTL  int    `env:"TEST_USAGE_KEY_TTL" envDefault:"62"`
}

type requiredConfig struct {
	DatabaseURL string `env:"TEST_REQUIRED_DATABASE_URL,required"`
}

func TestLoad(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	t.Run("defaults apply", func(t *testing.T) {
		var cfg ledgerConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "postgres", cfg.Backend)
		assert.Equal(t, 62, cfg.KeyTTL)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("TEST_USAGE_BACKEND", "redis")

		var cfg ledgerConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "redis", cfg.Backend)
	})

	t.Run("cached between calls", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("TEST_USAGE_BACKEND", "mongo")

		var first ledgerConfig
		require.NoError(t, config.Load(&first))

		// A change after the first load is invisible until the cache resets.
		t.Setenv("TEST_USAGE_BACKEND", "redis")

		var second ledgerConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "mongo", second.Backend)

		config.ResetCache()
		var third ledgerConfig
		require.NoError(t, config.Load(&third))
		assert.Equal(t, "redis", third.Backend)
	})

	t.Run("missing required variable", func(t *testing.T) {
		config.ResetCache()

		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		err := config.Load[ledgerConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})
}

func TestLoadEnv(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_USAGE_BACKEND=memory\n"), 0o600))

	// Overload semantics: the file wins over a pre-set variable.
	t.Setenv("TEST_USAGE_BACKEND", "postgres")
	require.NoError(t, config.LoadEnv(path))

	var cfg ledgerConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "memory", cfg.Backend)
}

func TestLoadEnv_MissingFile(t *testing.T) {
	err := config.LoadEnv(filepath.Join(t.TempDir(), "absent.env"))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}

func TestMustLoad(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	t.Run("panics on failure", func(t *testing.T) {
		assert.Panics(t, func() {
			var cfg requiredConfig
			config.MustLoad(&cfg)
		})
	})

	t.Run("passes through on success", func(t *testing.T) {
		config.ResetCache()
		assert.NotPanics(t, func() {
			var cfg ledgerConfig
			config.MustLoad(&cfg)
		})
	})
}
