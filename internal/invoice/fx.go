package invoice

import (
	"github.com/smallbiznis/subtrack/internal/invoice/service"
	"github.com/smallbiznis/subtrack/internal/invoice/store"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(store.Provide),
	fx.Provide(service.New),
)
