package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/smallbiznis/subtrack/internal/clock"
	"github.com/smallbiznis/subtrack/internal/config"
	customerdomain "github.com/smallbiznis/subtrack/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/subtrack/internal/invoice/domain"
	"github.com/smallbiznis/subtrack/internal/notifier"
	"github.com/smallbiznis/subtrack/internal/observability/metrics"
	"github.com/smallbiznis/subtrack/internal/payment/domain"
	"github.com/smallbiznis/subtrack/pkg/money"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Repo      domain.Repository
	Invoices  invoicedomain.Repository
	Customers customerdomain.Repository
	Notifier  notifier.Dispatcher
	Templates config.NotificationConfig
	Metrics   *metrics.Registry `optional:"true"`
}

type Service struct {
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	invoices  invoicedomain.Repository
	customers customerdomain.Repository
	notifier  notifier.Dispatcher
	templates config.NotificationConfig
	metrics   *metrics.Registry
	tracer    trace.Tracer
}

func New(p Params) domain.Service {
	return &Service{
		log:       p.Log.Named("payment.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		invoices:  p.Invoices,
		customers: p.Customers,
		notifier:  p.Notifier,
		templates: p.Templates,
		metrics:   p.Metrics,
		tracer:    otel.Tracer("subtrack/payment"),
	}
}

// Process records a payment against an existing invoice and confirms it over
// SMS when the paying customer has a phone number on file. A missing phone
// suppresses the SMS and is not an error.
func (s *Service) Process(ctx context.Context, req domain.ProcessPaymentRequest) (domain.Payment, error) {
	ctx, span := s.tracer.Start(ctx, "payment.Process")
	defer span.End()

	if req.Amount <= 0 {
		s.metrics.RecordOperation("payment.process", metrics.OutcomeInvalidInput)
		return domain.Payment{}, domain.ErrInvalidAmount
	}

	method := strings.TrimSpace(req.Method)
	if method == "" {
		s.metrics.RecordOperation("payment.process", metrics.OutcomeInvalidInput)
		return domain.Payment{}, domain.ErrInvalidMethod
	}

	invoiceID, err := snowflake.ParseString(strings.TrimSpace(req.InvoiceID))
	if err != nil {
		s.metrics.RecordOperation("payment.process", metrics.OutcomeInvalidInput)
		return domain.Payment{}, domain.ErrInvalidInvoiceID
	}

	invoice, err := s.invoices.FindByID(ctx, invoiceID)
	if err != nil {
		return domain.Payment{}, err
	}
	if invoice == nil {
		s.metrics.RecordOperation("payment.process", metrics.OutcomeNotFound)
		return domain.Payment{}, invoicedomain.ErrNotFound
	}

	payment := domain.Payment{
		ID:        s.genID.Generate(),
		InvoiceID: invoiceID,
		Amount:    req.Amount,
		Currency:  invoice.Currency,
		Method:    method,
		Reference: uuid.NewString(),
		PaidAt:    s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, &payment); err != nil {
		return domain.Payment{}, err
	}

	s.log.Info("payment processed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("invoice_id", invoiceID.String()),
		zap.Int64("amount", payment.Amount),
		zap.String("method", method),
	)
	s.metrics.RecordOperation("payment.process", metrics.OutcomeOK)

	s.notifyReceived(ctx, invoice, &payment)

	return payment, nil
}

func (s *Service) notifyReceived(ctx context.Context, invoice *invoicedomain.Invoice, payment *domain.Payment) {
	customer, err := s.customers.FindByID(ctx, invoice.CustomerID)
	if err != nil || customer == nil {
		return
	}
	if strings.TrimSpace(customer.Phone) == "" {
		return
	}

	_, body := notifier.Render(s.templates.PaymentReceipt, map[string]string{
		"amount": money.Format(payment.Amount, payment.Currency),
	})
	s.notifier.Deliver(ctx, notifier.Notification{
		Channel:   notifier.ChannelSMS,
		Recipient: customer.Phone,
		Message:   body,
	})
}

func (s *Service) ListByInvoice(ctx context.Context, req domain.ListPaymentsRequest) ([]domain.Payment, error) {
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(req.InvoiceID))
	if err != nil {
		return nil, domain.ErrInvalidInvoiceID
	}
	return s.repo.ListByInvoice(ctx, invoiceID)
}

func (s *Service) List(ctx context.Context) ([]domain.Payment, error) {
	return s.repo.List(ctx)
}
