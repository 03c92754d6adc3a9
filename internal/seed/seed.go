// Package seed walks a demonstration scenario through the registry at
// startup. It is a caller like any other and is gated by DEMO_SEED.
package seed

import (
	"context"

	catalogdomain "github.com/smallbiznis/subtrack/internal/catalog/domain"
	"github.com/smallbiznis/subtrack/internal/config"
	customerdomain "github.com/smallbiznis/subtrack/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/subtrack/internal/invoice/domain"
	paymentdomain "github.com/smallbiznis/subtrack/internal/payment/domain"
	subscriptiondomain "github.com/smallbiznis/subtrack/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Cfg           config.Config
	Log           *zap.Logger
	Customers     customerdomain.Service
	Catalog       catalogdomain.Catalog
	Subscriptions subscriptiondomain.Service
	Invoices      invoicedomain.Service
	Payments      paymentdomain.Service
}

// Module runs the demo scenario on startup when enabled.
var Module = fx.Module("seed",
	fx.Invoke(register),
)

func register(lc fx.Lifecycle, p Params) {
	if !p.Cfg.DemoSeed {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go run(p)
			return nil
		},
	})
}

func run(p Params) {
	ctx := context.Background()
	log := p.Log.Named("seed")

	ann, err := p.Customers.Create(ctx, customerdomain.CreateCustomerRequest{
		Name:  "Ann Wilson",
		Email: "ann@example.com",
		Phone: "+15550100",
	})
	if err != nil {
		log.Error("seed customer failed", zap.Error(err))
		return
	}

	bob, err := p.Customers.Create(ctx, customerdomain.CreateCustomerRequest{
		Name:    "Bob Reyes",
		Email:   "bob@example.com",
		Address: "12 Harbor Lane",
	})
	if err != nil {
		log.Error("seed customer failed", zap.Error(err))
		return
	}

	video, err := p.Catalog.Create(ctx, catalogdomain.CreateServiceRequest{
		Name:        "Premium Video Streaming",
		Description: "Unlimited streaming in full HD",
	})
	if err != nil {
		log.Error("seed service failed", zap.Error(err))
		return
	}

	music, err := p.Catalog.Create(ctx, catalogdomain.CreateServiceRequest{
		Name:        "Music",
		Description: "Ad-free music library",
	})
	if err != nil {
		log.Error("seed service failed", zap.Error(err))
		return
	}

	annSub, err := p.Subscriptions.Create(ctx, subscriptiondomain.CreateSubscriptionRequest{
		CustomerID: ann.ID.String(),
		ServiceID:  video.ID.String(),
	})
	if err != nil {
		log.Error("seed subscription failed", zap.Error(err))
		return
	}

	if _, err := p.Subscriptions.Create(ctx, subscriptiondomain.CreateSubscriptionRequest{
		CustomerID: bob.ID.String(),
		ServiceID:  music.ID.String(),
	}); err != nil {
		log.Error("seed subscription failed", zap.Error(err))
		return
	}

	invoice, err := p.Invoices.CreateForSubscription(ctx, invoicedomain.CreateInvoiceRequest{
		SubscriptionID: annSub.ID.String(),
		Amount:         1599,
	})
	if err != nil {
		log.Error("seed invoice failed", zap.Error(err))
		return
	}

	if _, err := p.Payments.Process(ctx, paymentdomain.ProcessPaymentRequest{
		InvoiceID: invoice.ID.String(),
		Amount:    invoice.Amount,
		Method:    "credit_card",
	}); err != nil {
		log.Error("seed payment failed", zap.Error(err))
		return
	}

	result, err := p.Subscriptions.Cancel(ctx, subscriptiondomain.CancelSubscriptionRequest{
		ID: annSub.ID.String(),
	})
	if err != nil {
		log.Error("seed cancel failed", zap.Error(err))
		return
	}

	log.Info("demo scenario complete",
		zap.String("invoice_number", invoice.Number),
		zap.Bool("subscription_canceled", result.Canceled),
	)
}
