// Package notifier dispatches customer notifications over a tagged channel.
// Delivery is fire-and-forget: transport failures are logged and counted but
// never surface to the caller.
package notifier

import (
	"context"

	"github.com/smallbiznis/subtrack/internal/observability/metrics"
	"github.com/smallbiznis/subtrack/internal/providers/email"
	"github.com/smallbiznis/subtrack/internal/providers/sms"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Channel selects the transport for a notification.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Notification is a single outbound message. Subject is ignored for SMS.
type Notification struct {
	Channel   Channel
	Recipient string
	Subject   string
	Message   string
}

// Dispatcher delivers notifications best-effort. Deliver never returns an
// error; the boundary absorbs transport failures.
type Dispatcher interface {
	Deliver(ctx context.Context, n Notification)
}

type Params struct {
	fx.In

	Log     *zap.Logger
	Email   email.Provider
	SMS     sms.Provider
	Metrics *metrics.Registry `optional:"true"`
}

type dispatcher struct {
	log     *zap.Logger
	email   email.Provider
	sms     sms.Provider
	metrics *metrics.Registry
}

func New(p Params) Dispatcher {
	return &dispatcher{
		log:     p.Log.Named("notifier"),
		email:   p.Email,
		sms:     p.SMS,
		metrics: p.Metrics,
	}
}

func (d *dispatcher) Deliver(ctx context.Context, n Notification) {
	if n.Recipient == "" {
		return
	}

	var err error
	switch n.Channel {
	case ChannelEmail:
		err = d.email.Send(ctx, []string{n.Recipient}, n.Subject, n.Message)
	case ChannelSMS:
		err = d.sms.Send(ctx, n.Recipient, n.Message)
	default:
		d.log.Warn("unknown notification channel", zap.String("channel", string(n.Channel)))
		return
	}

	if err != nil {
		d.metrics.RecordNotification(string(n.Channel), "failed")
		d.log.Warn("notification delivery failed",
			zap.String("channel", string(n.Channel)),
			zap.Error(err),
		)
		return
	}

	d.metrics.RecordNotification(string(n.Channel), "sent")
	d.log.Debug("notification delivered",
		zap.String("channel", string(n.Channel)),
	)
}

// Module wires the dispatcher and both transport providers.
var Module = fx.Module("notifier",
	email.Module,
	sms.Module,
	fx.Provide(New),
)
