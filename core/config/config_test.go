package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kvcmd/core/config"
)

type storeConfig struct {
	URL     string        `env:"KVCMD_TEST_URL" envDefault:"redis://localhost:6379/0"`
	Timeout time.Duration `env:"KVCMD_TEST_TIMEOUT" envDefault:"5s"`
}

type requiredConfig struct {
	Secret string `env:"KVCMD_TEST_REQUIRED_SECRET,required"`
}

// Tests share process env and the type cache, so they are not parallel.

func TestLoad(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	t.Setenv("KVCMD_TEST_URL", "redis://cache:6379/1")

	var cfg storeConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "redis://cache:6379/1", cfg.URL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)

	t.Setenv("KVCMD_TEST_URL", "redis://other:6379/0")

	var again storeConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, cfg, again, "second load is served from cache")

	config.Reset()
	var fresh storeConfig
	require.NoError(t, config.Load(&fresh))
	assert.Equal(t, "redis://other:6379/0", fresh.URL)
}

func TestLoadErrors(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	var missing requiredConfig
	err := config.Load(&missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KVCMD_TEST_REQUIRED_SECRET")

	assert.Panics(t, func() {
		config.MustLoad(&requiredConfig{})
	})

	assert.ErrorIs(t, config.Load[storeConfig](nil), config.ErrNilConfig)
}
