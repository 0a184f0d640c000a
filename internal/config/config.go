package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingBaseURL = errors.New("API_BASE_URL is not set")

type Config struct {
	APIBaseURL  string
	AppEnv      string
	AccessToken string
	SessionFile string
	LogOutput   string
	HTTPTimeout time.Duration
	RateLimit   float64
	RateBurst   int
	NarrowWidth int
}

// LoadConfig reads the environment (and a .env file when present).
// Malformed numeric values are reported, not silently defaulted.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:  strings.TrimRight(os.Getenv("API_BASE_URL"), "/"),
		AppEnv:      envOr("APP_ENV", "development"),
		AccessToken: os.Getenv("ACCESS_TOKEN"),
		SessionFile: envOr("SESSION_FILE", defaultSessionFile()),
		LogOutput:   envOr("LOG_OUTPUT", "stderr"),
	}

	var err error
	if cfg.HTTPTimeout, err = time.ParseDuration(envOr("HTTP_TIMEOUT", "15s")); err != nil {
		return nil, fmt.Errorf("HTTP_TIMEOUT: %w", err)
	}
	if cfg.RateLimit, err = strconv.ParseFloat(envOr("API_RATE_LIMIT", "10"), 64); err != nil {
		return nil, fmt.Errorf("API_RATE_LIMIT: %w", err)
	}
	if cfg.RateBurst, err = strconv.Atoi(envOr("API_RATE_BURST", "20")); err != nil {
		return nil, fmt.Errorf("API_RATE_BURST: %w", err)
	}
	if cfg.NarrowWidth, err = strconv.Atoi(envOr("NARROW_WIDTH", "80")); err != nil {
		return nil, fmt.Errorf("NARROW_WIDTH: %w", err)
	}

	return cfg, nil
}

// Validate checks the values that flags may have overridden after loading.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return ErrMissingBaseURL
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must be an http(s) url, got %q", c.APIBaseURL)
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("HTTP_TIMEOUT must be positive")
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return errors.New("API_RATE_LIMIT and API_RATE_BURST must be positive")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "storefront-session.json")
	}
	return filepath.Join(home, ".storefront", "session.json")
}
