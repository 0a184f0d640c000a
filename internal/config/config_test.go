package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "http://localhost:4000/api/")
		t.Setenv("APP_ENV", "test")
		t.Setenv("ACCESS_TOKEN", "tok")
		t.Setenv("SESSION_FILE", "/tmp/session.json")
		t.Setenv("LOG_OUTPUT", "/tmp/storefront.log")
		t.Setenv("HTTP_TIMEOUT", "3s")
		t.Setenv("API_RATE_LIMIT", "2.5")
		t.Setenv("API_RATE_BURST", "4")
		t.Setenv("NARROW_WIDTH", "100")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:4000/api", cfg.APIBaseURL)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "tok", cfg.AccessToken)
		assert.Equal(t, "/tmp/session.json", cfg.SessionFile)
		assert.Equal(t, "/tmp/storefront.log", cfg.LogOutput)
		assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, 2.5, cfg.RateLimit)
		assert.Equal(t, 4, cfg.RateBurst)
		assert.Equal(t, 100, cfg.NarrowWidth)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "https://shop.example.com")
		t.Setenv("APP_ENV", "")
		t.Setenv("HTTP_TIMEOUT", "")
		t.Setenv("API_RATE_LIMIT", "")
		t.Setenv("API_RATE_BURST", "")
		t.Setenv("NARROW_WIDTH", "")
		t.Setenv("SESSION_FILE", "")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "development", cfg.AppEnv)
		assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, 10.0, cfg.RateLimit)
		assert.Equal(t, 20, cfg.RateBurst)
		assert.Equal(t, 80, cfg.NarrowWidth)
		assert.NotEmpty(t, cfg.SessionFile)
	})

	t.Run("Malformed timeout", func(t *testing.T) {
		t.Setenv("HTTP_TIMEOUT", "soon")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "HTTP_TIMEOUT")
	})

	t.Run("Malformed burst", func(t *testing.T) {
		t.Setenv("HTTP_TIMEOUT", "1s")
		t.Setenv("API_RATE_BURST", "lots")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "API_RATE_BURST")
	})
}

func TestValidate(t *testing.T) {
	base := Config{APIBaseURL: "http://localhost", HTTPTimeout: time.Second, RateLimit: 1, RateBurst: 1}

	t.Run("Missing base url", func(t *testing.T) {
		c := base
		c.APIBaseURL = ""
		assert.ErrorIs(t, c.Validate(), ErrMissingBaseURL)
	})

	t.Run("Non http base url", func(t *testing.T) {
		c := base
		c.APIBaseURL = "localhost:4000"
		assert.Error(t, c.Validate())
	})

	t.Run("Zero rate", func(t *testing.T) {
		c := base
		c.RateLimit = 0
		assert.Error(t, c.Validate())
	})

	t.Run("Valid", func(t *testing.T) {
		c := base
		assert.NoError(t, c.Validate())
	})
}
