package migrate

import (
	"context"

	"github.com/modabuy/storefront-backend/pkg/config"
	"github.com/modabuy/storefront-backend/pkg/logger"
)

// MaybeRunDev applies migrations at startup when the auto-migrate flag is on.
// Only honored outside production; prod deploys run cmd/migrate explicitly.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	if !cfg.Features.AutoMigrate {
		return nil
	}
	if cfg.IsProd() {
		logg.Warn(ctx, "auto-migrate requested in production, skipping")
		return nil
	}

	logg.Info(ctx, "running startup migrations")
	if err := Up(ctx, cfg.DB.DSN); err != nil {
		return err
	}
	logg.Info(ctx, "startup migrations applied")
	return nil
}
