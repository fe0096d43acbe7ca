package subscription

import (
	"github.com/revolt-software-bot/client-service-dashboard/internal/subscription/repository"
	"github.com/revolt-software-bot/client-service-dashboard/internal/subscription/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription.service",
	repository.Module,
	fx.Provide(service.NewService),
)
