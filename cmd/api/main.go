package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/arontec/scm-backend/api/routes"
	"github.com/arontec/scm-backend/internal/auth"
	"github.com/arontec/scm-backend/internal/cart"
	"github.com/arontec/scm-backend/internal/catalog"
	"github.com/arontec/scm-backend/internal/excel"
	"github.com/arontec/scm-backend/internal/media"
	"github.com/arontec/scm-backend/internal/notifications"
	"github.com/arontec/scm-backend/internal/proposal"
	"github.com/arontec/scm-backend/internal/quotes"
	"github.com/arontec/scm-backend/internal/users"
	"github.com/arontec/scm-backend/pkg/config"
	"github.com/arontec/scm-backend/pkg/db"
	"github.com/arontec/scm-backend/pkg/imageproxy"
	"github.com/arontec/scm-backend/pkg/logger"
	"github.com/arontec/scm-backend/pkg/metrics"
	"github.com/arontec/scm-backend/pkg/migrate"
	"github.com/arontec/scm-backend/pkg/redis"
	"github.com/arontec/scm-backend/pkg/session"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())
	quoteRepo := quotes.NewRepository(dbClient.DB())
	notificationRepo := notifications.NewRepository(dbClient.DB())
	fetcher := imageproxy.NewFetcher(cfg.Proxy)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		PasswordConfig: cfg.Password,
		ResetConfig:    cfg.ResetToken,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartRepo, catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	quoteService, err := quotes.NewService(quoteRepo, cartRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create quote service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(userRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	notificationService, err := notifications.NewService(notificationRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create notification service", err)
		os.Exit(1)
	}

	excelService, err := excel.NewService(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create excel service", err)
		os.Exit(1)
	}

	mediaService, err := media.NewService(cfg.Uploads)
	if err != nil {
		logg.Error(context.Background(), "failed to create media service", err)
		os.Exit(1)
	}

	proposalService, err := proposal.NewService(proposal.ServiceParams{
		DB:      dbClient,
		Users:   userRepo,
		Fetcher: fetcher,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create proposal service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, httpMetrics, fetcher, routes.Services{
			Auth:          authService,
			Catalog:       catalogService,
			Cart:          cartService,
			Quotes:        quoteService,
			Users:         userService,
			Notifications: notificationService,
			Excel:         excelService,
			Media:         mediaService,
			Proposal:      proposalService,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
