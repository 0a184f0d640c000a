package main

import (
	"strings"

	"storefront-client/internal/config"

	"github.com/spf13/pflag"
)

type flags struct {
	admin bool
}

// parseFlags applies command line overrides on top of the environment.
func parseFlags(args []string, cfg *config.Config) (flags, error) {
	var fl flags

	fs := pflag.NewFlagSet("storefront", pflag.ContinueOnError)
	fs.StringVar(&cfg.APIBaseURL, "base-url", cfg.APIBaseURL, "backend API base URL")
	fs.StringVar(&cfg.AppEnv, "env", cfg.AppEnv, "environment (development or production)")
	fs.StringVar(&cfg.AccessToken, "token", cfg.AccessToken, "backend access token")
	fs.StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "where the login is kept")
	fs.StringVar(&cfg.LogOutput, "log-output", cfg.LogOutput, "log sink path, stderr by default")
	fs.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "backend request timeout")
	fs.BoolVar(&fl.admin, "admin", false, "treat the session as admin")

	if err := fs.Parse(args); err != nil {
		return fl, err
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return fl, nil
}
