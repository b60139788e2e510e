// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notes-saas-billing/internal/config"
	"notes-saas-billing/internal/infra/billing"
	"notes-saas-billing/internal/infra/identity"
	"notes-saas-billing/internal/infra/logging"
	"notes-saas-billing/internal/infra/metrics"
	red "notes-saas-billing/internal/infra/redis"
	"notes-saas-billing/internal/infra/web"
	"notes-saas-billing/internal/usecase"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (log magic links instead of mailing)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("[DEV MODE] Enabled")
	}

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	tokenStore := red.NewTokenStore(redisClient)
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Billing ----
	stripeGW := billing.NewStripeGateway(cfg.Stripe)

	// ---- Identity ----
	var mailer identity.Mailer
	if cfg.Runtime.Dev && cfg.Postmark.ServerToken == "" {
		mailer = identity.NewDevMailer(logger)
	} else {
		mailer, err = identity.NewPostmarkMailer(cfg.Postmark)
		if err != nil {
			logger.Fatal().Err(err).Msg("postmark")
		}
	}
	magicLinks := identity.NewMagicLinkService(
		tokenStore,
		rateLimiter,
		mailer,
		cfg.Server.BaseURL,
		cfg.MagicLink.TokenTTL,
		cfg.MagicLink.RateLimit,
		cfg.MagicLink.RateLimitEvery,
		logger,
	)

	// ---- Use cases ----
	refundUC := usecase.NewRefundUseCase(stripeGW, logger)
	checkoutUC := usecase.NewCheckoutUseCase(stripeGW, logger)
	checkout := usecase.NewCheckoutRegistry(checkoutUC)
	signInUC := usecase.NewSignInUseCase(magicLinks, logger)

	// ---- HTTP ----
	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	sessions := web.NewSessionManager(cfg.Session)
	server := web.NewServer(cfg.Server, refundUC, checkout, signInUC, magicLinks, sessions, logger)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server stopped")
			cancel()
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigc:
		logger.Info().Msg("shutdown requested")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}
