package migration

import (
	"context"

	"github.com/revolt-software-bot/client-service-dashboard/internal/clock"
	"github.com/revolt-software-bot/client-service-dashboard/internal/config"
	"github.com/revolt-software-bot/client-service-dashboard/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, clk clock.Clock, log *zap.Logger) error {
		if err := Apply(conn, cfg.DBType); err != nil {
			return err
		}
		if !cfg.SeedDemoSubscriptions {
			return nil
		}

		n, err := seed.EnsureDemoSubscriptions(context.Background(), conn, clk.Now())
		if err != nil {
			return err
		}
		log.Info("demo subscriptions seeded", zap.Int("inserted", n))
		return nil
	}),
)
