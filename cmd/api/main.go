package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/modabuy/storefront-backend/api"
	"github.com/modabuy/storefront-backend/api/controllers"
	"github.com/modabuy/storefront-backend/api/routes"
	internalauth "github.com/modabuy/storefront-backend/internal/auth"
	"github.com/modabuy/storefront-backend/internal/cart"
	"github.com/modabuy/storefront-backend/internal/catalog"
	"github.com/modabuy/storefront-backend/internal/checkout"
	"github.com/modabuy/storefront-backend/internal/orders"
	"github.com/modabuy/storefront-backend/internal/users"
	"github.com/modabuy/storefront-backend/pkg/auth/session"
	"github.com/modabuy/storefront-backend/pkg/config"
	"github.com/modabuy/storefront-backend/pkg/db"
	"github.com/modabuy/storefront-backend/pkg/logger"
	"github.com/modabuy/storefront-backend/pkg/metrics"
	"github.com/modabuy/storefront-backend/pkg/migrate"
	"github.com/modabuy/storefront-backend/pkg/outbox"
	"github.com/modabuy/storefront-backend/pkg/redis"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	logg := logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})
	ctx := context.Background()

	dbClient, err := db.NewClient(cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "connect database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "startup migrations", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(cfg.Redis)
	if err := redisClient.Ping(ctx); err != nil {
		logg.Error(ctx, "connect redis", err)
		os.Exit(1)
	}

	searchRepo, err := catalog.NewSearchRepository(cfg.Catalog, logg)
	if err != nil {
		logg.Error(ctx, "connect elasticsearch", err)
		os.Exit(1)
	}

	gdb := dbClient.DB()
	userRepo := users.NewRepository(gdb)
	cartRepo := cart.NewRepository(gdb)
	productRepo := catalog.NewRepository(gdb)
	orderRepo := orders.NewRepository(gdb)
	outboxSvc := outbox.NewService(outbox.NewRepository(gdb))

	sessions := session.NewManager(redisClient, cfg.Session)
	catalogSvc := catalog.NewService(searchRepo, logg)
	cartSvc := cart.NewService(cartRepo, productRepo, catalogSvc, logg)
	checkoutSvc := checkout.NewService(
		dbClient, userRepo, cartSvc, cartRepo, productRepo, orderRepo, outboxSvc, logg)
	authSvc := internalauth.NewService(userRepo, sessions, logg)

	server := api.NewServer(cfg.App.Port, routes.Deps{
		Config:   cfg,
		Logger:   logg,
		Metrics:  metrics.NewHTTPMetrics(),
		Sessions: sessions,
		Auth:     authSvc,
		Catalog:  catalogSvc,
		Cart:     cartSvc,
		Checkout: checkoutSvc,
		Orders:   orderRepo,
		Pingers:  []controllers.Pinger{dbClient, redisClient},
	}, logg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(ctx)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logg.Error(ctx, "http server failed", err)
		}
	case sig := <-stop:
		logg.Info(ctx, "received signal "+sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.App.ShutdownTimeout)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
	closeErr = multierr.Append(closeErr, redisClient.Close())
	closeErr = multierr.Append(closeErr, dbClient.Close())
	if closeErr != nil {
		logg.Error(ctx, "shutdown incomplete", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "shutdown complete")
}
