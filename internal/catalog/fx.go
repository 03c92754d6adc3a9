package catalog

import (
	"github.com/smallbiznis/subtrack/internal/catalog/service"
	"github.com/smallbiznis/subtrack/internal/catalog/store"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(store.Provide),
	fx.Provide(service.New),
)
