package customer

import (
	"github.com/smallbiznis/subtrack/internal/customer/service"
	"github.com/smallbiznis/subtrack/internal/customer/store"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(store.Provide),
	fx.Provide(service.New),
)
