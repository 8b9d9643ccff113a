package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jwtaudit/core/config"
)

type cachedConfig struct {
	Name string `env:"JWTAUDIT_TEST_CACHED_NAME" envDefault:"default"`
}

type requiredConfig struct {
	Value string `env:"JWTAUDIT_TEST_REQUIRED_VALUE,required"`
}

type defaultsConfig struct {
	Port  int    `env:"JWTAUDIT_TEST_PORT" envDefault:"8080"`
	Level string `env:"JWTAUDIT_TEST_LEVEL" envDefault:"info"`
}

// These tests use t.Setenv and therefore cannot run in parallel.

func TestLoadCachesPerType(t *testing.T) {
	config.Reset()
	t.Setenv("JWTAUDIT_TEST_CACHED_NAME", "first")

	var a cachedConfig
	require.NoError(t, config.Load(&a))
	assert.Equal(t, "first", a.Name)

	t.Setenv("JWTAUDIT_TEST_CACHED_NAME", "second")

	var b cachedConfig
	require.NoError(t, config.Load(&b))
	assert.Equal(t, "first", b.Name)

	config.Reset()
	var c cachedConfig
	require.NoError(t, config.Load(&c))
	assert.Equal(t, "second", c.Name)
}

func TestLoadDefaults(t *testing.T) {
	config.Reset()

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.Level)
}

func TestLoadRequiredMissing(t *testing.T) {
	config.Reset()

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWTAUDIT_TEST_REQUIRED_VALUE")

	assert.Panics(t, func() {
		config.MustLoad(&requiredConfig{})
	})
}

func TestLoadNil(t *testing.T) {
	var cfg *defaultsConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilConfig)
}
