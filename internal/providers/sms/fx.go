package sms

import (
	"github.com/smallbiznis/subtrack/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.sms",
	fx.Provide(NewFromConfig),
)

// NewFromConfig returns the gateway provider, or a no-op when no gateway is
// configured.
func NewFromConfig(cfg config.Config) Provider {
	if cfg.SMS.GatewayURL == "" {
		return &NoOpProvider{}
	}
	return NewGateway(Config{
		GatewayURL: cfg.SMS.GatewayURL,
		APIKey:     cfg.SMS.APIKey,
		Sender:     cfg.SMS.Sender,
	})
}
