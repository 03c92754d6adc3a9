package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/subtrack/internal/catalog"
	"github.com/smallbiznis/subtrack/internal/clock"
	"github.com/smallbiznis/subtrack/internal/config"
	"github.com/smallbiznis/subtrack/internal/customer"
	"github.com/smallbiznis/subtrack/internal/invoice"
	"github.com/smallbiznis/subtrack/internal/logger"
	"github.com/smallbiznis/subtrack/internal/notifier"
	"github.com/smallbiznis/subtrack/internal/observability"
	"github.com/smallbiznis/subtrack/internal/payment"
	"github.com/smallbiznis/subtrack/internal/providers/pdf"
	"github.com/smallbiznis/subtrack/internal/seed"
	"github.com/smallbiznis/subtrack/internal/server"
	"github.com/smallbiznis/subtrack/internal/subscription"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		fx.Provide(config.LoadNotificationConfig),
		clock.Module,

		// Functional domains
		notifier.Module,
		customer.Module,
		catalog.Module,
		subscription.Module,
		invoice.Module,
		payment.Module,
		pdf.Module,

		server.Module,
		seed.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
