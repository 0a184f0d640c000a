package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"storefront-client/internal/api"
	"storefront-client/internal/auth"
	"storefront-client/internal/cart"
	"storefront-client/internal/catalog"
	"storefront-client/internal/config"
	"storefront-client/internal/console"
	"storefront-client/internal/logger"
	"storefront-client/internal/notify"
	"storefront-client/internal/profile"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "storefront:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	fl, err := parseFlags(args, cfg)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(cfg.AppEnv, cfg.LogOutput)
	defer logger.Sync()
	log := logger.L()

	client := api.NewClient(cfg.APIBaseURL,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		api.WithAccessToken(cfg.AccessToken),
	)

	session := auth.NewSession(auth.NewFileStore(cfg.SessionFile), client, client)
	if err := session.Restore(); err != nil {
		log.Warn("could not restore session", zap.Error(err))
	}
	if cfg.AccessToken != "" && !session.IsAuthenticated() {
		if err := session.LoginWithToken("", cfg.AccessToken); err != nil {
			log.Warn("ACCESS_TOKEN not usable for login", zap.Error(err))
		}
	}
	if fl.admin {
		session.SetRole(auth.RoleAdmin)
	}

	notifier := notify.Multi{notify.NewWriter(os.Stdout), notify.Log{L: log}}
	carts := cart.NewController(client, notifier)
	products := catalog.New(client, carts, notifier)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("storefront started",
		zap.String("api", cfg.APIBaseURL),
		zap.String("env", cfg.AppEnv),
		zap.Bool("authenticated", session.IsAuthenticated()),
	)

	shell := console.New(os.Stdin, os.Stdout, console.Deps{
		Catalog:  products,
		Cart:     carts,
		Session:  session,
		Profile:  profile.NewService(client),
		Notifier: notifier,
	}, console.WithNarrowBelow(cfg.NarrowWidth))

	err = shell.Run(ctx)

	st := client.Stats()
	log.Info("backend traffic",
		zap.Uint64("requests", st.Requests),
		zap.Uint64("failures", st.Failures),
		zap.Uint64("client_errors", st.ClientErrors),
		zap.Uint64("server_errors", st.ServerErrors),
		zap.Duration("avg_latency", st.AvgLatency),
	)

	if errors.Is(err, context.Canceled) {
		log.Info("interrupted")
		return nil
	}
	return err
}
