package main

import (
	"testing"
	"time"

	"storefront-client/internal/config"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *config.Config {
	return &config.Config{
		APIBaseURL:  "http://env.test/api",
		AppEnv:      "development",
		HTTPTimeout: 15 * time.Second,
		RateLimit:   10,
		RateBurst:   20,
	}
}

func TestParseFlags(t *testing.T) {
	t.Run("Defaults keep the environment", func(t *testing.T) {
		cfg := baseConfig()

		fl, err := parseFlags(nil, cfg)

		require.NoError(t, err)
		assert.False(t, fl.admin)
		assert.Equal(t, "http://env.test/api", cfg.APIBaseURL)
	})

	t.Run("Overrides", func(t *testing.T) {
		cfg := baseConfig()

		fl, err := parseFlags([]string{
			"--base-url", "https://shop.test/api/",
			"--env=production",
			"--timeout", "3s",
			"--admin",
		}, cfg)

		require.NoError(t, err)
		assert.True(t, fl.admin)
		assert.Equal(t, "https://shop.test/api", cfg.APIBaseURL)
		assert.Equal(t, "production", cfg.AppEnv)
		assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Help", func(t *testing.T) {
		_, err := parseFlags([]string{"--help"}, baseConfig())
		assert.ErrorIs(t, err, pflag.ErrHelp)
	})

	t.Run("Unknown flag", func(t *testing.T) {
		_, err := parseFlags([]string{"--colour"}, baseConfig())
		assert.Error(t, err)
	})
}
