package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/subtrack/internal/clock"
	"github.com/smallbiznis/subtrack/internal/config"
	customerdomain "github.com/smallbiznis/subtrack/internal/customer/domain"
	"github.com/smallbiznis/subtrack/internal/invoice/domain"
	"github.com/smallbiznis/subtrack/internal/invoice/format"
	"github.com/smallbiznis/subtrack/internal/notifier"
	"github.com/smallbiznis/subtrack/internal/observability/metrics"
	subscriptiondomain "github.com/smallbiznis/subtrack/internal/subscription/domain"
	"github.com/smallbiznis/subtrack/pkg/money"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const defaultCurrency = "USD"

type Params struct {
	fx.In

	Log           *zap.Logger
	GenID         *snowflake.Node
	Clock         clock.Clock
	Repo          domain.Repository
	Subscriptions subscriptiondomain.Repository
	Customers     customerdomain.Repository
	Notifier      notifier.Dispatcher
	Templates     config.NotificationConfig
	Metrics       *metrics.Registry `optional:"true"`
}

type Service struct {
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	repo          domain.Repository
	subscriptions subscriptiondomain.Repository
	customers     customerdomain.Repository
	notifier      notifier.Dispatcher
	templates     config.NotificationConfig
	metrics       *metrics.Registry
	tracer        trace.Tracer
}

func New(p Params) domain.Service {
	return &Service{
		log:           p.Log.Named("invoice.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		repo:          p.Repo,
		subscriptions: p.Subscriptions,
		customers:     p.Customers,
		notifier:      p.Notifier,
		templates:     p.Templates,
		metrics:       p.Metrics,
		tracer:        otel.Tracer("subtrack/invoice"),
	}
}

// CreateForSubscription bills an existing subscription. Canceled
// subscriptions remain billable; only a missing one is an error.
func (s *Service) CreateForSubscription(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	ctx, span := s.tracer.Start(ctx, "invoice.CreateForSubscription")
	defer span.End()

	if req.Amount <= 0 {
		s.metrics.RecordOperation("invoice.create", metrics.OutcomeInvalidInput)
		return domain.Invoice{}, domain.ErrInvalidAmount
	}

	subscriptionID, err := snowflake.ParseString(strings.TrimSpace(req.SubscriptionID))
	if err != nil {
		s.metrics.RecordOperation("invoice.create", metrics.OutcomeInvalidInput)
		return domain.Invoice{}, domain.ErrInvalidSubscriptionID
	}

	subscription, err := s.subscriptions.FindByID(ctx, subscriptionID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if subscription == nil {
		s.metrics.RecordOperation("invoice.create", metrics.OutcomeNotFound)
		return domain.Invoice{}, subscriptiondomain.ErrNotFound
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	issueDate := s.clock.Now()

	seq, err := s.repo.NextSequence(ctx)
	if err != nil {
		return domain.Invoice{}, err
	}
	number, err := format.InvoiceNumber(format.DefaultInvoiceNumberTemplate, issueDate, seq)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice := domain.Invoice{
		ID:             s.genID.Generate(),
		Number:         number,
		SubscriptionID: subscriptionID,
		CustomerID:     subscription.CustomerID,
		Amount:         req.Amount,
		Currency:       currency,
		IssueDate:      issueDate,
		DueDate:        issueDate.AddDate(0, 0, domain.DuePeriodDays),
	}

	if err := s.repo.Insert(ctx, &invoice); err != nil {
		return domain.Invoice{}, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("number", invoice.Number),
		zap.String("subscription_id", subscriptionID.String()),
		zap.Int64("amount", invoice.Amount),
	)
	s.metrics.RecordOperation("invoice.create", metrics.OutcomeOK)

	s.notifyIssued(ctx, &invoice)

	return invoice, nil
}

func (s *Service) notifyIssued(ctx context.Context, invoice *domain.Invoice) {
	customer, err := s.customers.FindByID(ctx, invoice.CustomerID)
	if err != nil || customer == nil {
		return
	}

	subject, body := notifier.Render(s.templates.InvoiceDue, map[string]string{
		"amount":   money.Format(invoice.Amount, invoice.Currency),
		"due_date": invoice.DueDate.Format("2006-01-02"),
	})
	s.notifier.Deliver(ctx, notifier.Notification{
		Channel:   notifier.ChannelEmail,
		Recipient: customer.Email,
		Subject:   subject,
		Message:   body,
	})
}

func (s *Service) GetByID(ctx context.Context, req domain.GetInvoiceRequest) (domain.Invoice, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return domain.Invoice{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if item == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Invoice, error) {
	return s.repo.List(ctx)
}
