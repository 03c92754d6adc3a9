package subscription

import (
	"github.com/smallbiznis/subtrack/internal/subscription/service"
	"github.com/smallbiznis/subtrack/internal/subscription/store"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription.service",
	fx.Provide(store.Provide),
	fx.Provide(service.New),
)
