package payment

import (
	"github.com/smallbiznis/subtrack/internal/payment/service"
	"github.com/smallbiznis/subtrack/internal/payment/store"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(store.Provide),
	fx.Provide(service.New),
)
