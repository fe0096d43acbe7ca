package repository

import (
	"fmt"

	"github.com/revolt-software-bot/client-service-dashboard/internal/clock"
	"github.com/revolt-software-bot/client-service-dashboard/internal/config"
	"github.com/revolt-software-bot/client-service-dashboard/internal/subscription/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Cfg   config.Config
	Clock clock.Clock
	DB    *gorm.DB `optional:"true"`
}

// Provide selects the record source named by the configuration.
func Provide(p Params) (domain.Source, error) {
	switch p.Cfg.SubscriptionSource {
	case config.SourceDatabase:
		if p.DB == nil {
			return nil, fmt.Errorf("subscription source %q requires a database connection", config.SourceDatabase)
		}
		return NewGormSource(p.DB), nil
	case config.SourceFixture:
		return NewFixtureSource(p.Cfg.SubscriptionFixture), nil
	default:
		return NewDemoSource(p.Clock), nil
	}
}

var Module = fx.Module("subscription.repository",
	fx.Provide(Provide),
)
