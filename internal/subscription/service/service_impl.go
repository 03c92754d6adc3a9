package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/subtrack/internal/catalog/domain"
	"github.com/smallbiznis/subtrack/internal/clock"
	"github.com/smallbiznis/subtrack/internal/config"
	customerdomain "github.com/smallbiznis/subtrack/internal/customer/domain"
	"github.com/smallbiznis/subtrack/internal/notifier"
	"github.com/smallbiznis/subtrack/internal/observability/metrics"
	"github.com/smallbiznis/subtrack/internal/subscription/domain"
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
	Customers customerdomain.Repository
	Catalog   catalogdomain.Repository
	Notifier  notifier.Dispatcher
	Templates config.NotificationConfig
	Metrics   *metrics.Registry `optional:"true"`
}

type Service struct {
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	customers customerdomain.Repository
	catalog   catalogdomain.Repository
	notifier  notifier.Dispatcher
	templates config.NotificationConfig
	metrics   *metrics.Registry
	tracer    trace.Tracer
}

func New(p Params) domain.Service {
	return &Service{
		log:       p.Log.Named("subscription.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		customers: p.Customers,
		catalog:   p.Catalog,
		notifier:  p.Notifier,
		templates: p.Templates,
		metrics:   p.Metrics,
		tracer:    otel.Tracer("subtrack/subscription"),
	}
}

// Create validates both references before any mutation, so a failed lookup
// never leaves a partial subscription behind.
func (s *Service) Create(ctx context.Context, req domain.CreateSubscriptionRequest) (domain.Subscription, error) {
	ctx, span := s.tracer.Start(ctx, "subscription.Create")
	defer span.End()

	customerID, err := snowflake.ParseString(strings.TrimSpace(req.CustomerID))
	if err != nil {
		s.metrics.RecordOperation("subscription.create", metrics.OutcomeInvalidInput)
		return domain.Subscription{}, domain.ErrInvalidCustomerID
	}
	serviceID, err := snowflake.ParseString(strings.TrimSpace(req.ServiceID))
	if err != nil {
		s.metrics.RecordOperation("subscription.create", metrics.OutcomeInvalidInput)
		return domain.Subscription{}, domain.ErrInvalidServiceID
	}

	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return domain.Subscription{}, err
	}
	if customer == nil {
		s.metrics.RecordOperation("subscription.create", metrics.OutcomeNotFound)
		return domain.Subscription{}, customerdomain.ErrNotFound
	}

	service, err := s.catalog.FindByID(ctx, serviceID)
	if err != nil {
		return domain.Subscription{}, err
	}
	if service == nil {
		s.metrics.RecordOperation("subscription.create", metrics.OutcomeNotFound)
		return domain.Subscription{}, catalogdomain.ErrNotFound
	}

	subscription := domain.Subscription{
		ID:         s.genID.Generate(),
		CustomerID: customerID,
		ServiceID:  serviceID,
		Status:     domain.StatusActive,
		StartDate:  s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, &subscription); err != nil {
		return domain.Subscription{}, err
	}

	s.log.Info("subscription created",
		zap.String("subscription_id", subscription.ID.String()),
		zap.String("customer_id", customerID.String()),
		zap.String("service_id", serviceID.String()),
	)
	s.metrics.RecordOperation("subscription.create", metrics.OutcomeOK)

	subject, body := notifier.Render(s.templates.Welcome, map[string]string{
		"service": service.Name,
	})
	s.notifier.Deliver(ctx, notifier.Notification{
		Channel:   notifier.ChannelEmail,
		Recipient: customer.Email,
		Subject:   subject,
		Message:   body,
	})

	return subscription, nil
}

// Cancel is idempotent. A missing or already canceled subscription yields a
// soft CancelResult, never an error, and never a second notification.
func (s *Service) Cancel(ctx context.Context, req domain.CancelSubscriptionRequest) (domain.CancelResult, error) {
	ctx, span := s.tracer.Start(ctx, "subscription.Cancel")
	defer span.End()

	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		s.metrics.RecordOperation("subscription.cancel", metrics.OutcomeInvalidInput)
		return domain.CancelResult{}, domain.ErrInvalidID
	}

	subscription, transitioned, err := s.repo.Cancel(ctx, id, s.clock.Now())
	if err != nil {
		return domain.CancelResult{}, err
	}
	if subscription == nil {
		s.log.Warn("cancel requested for unknown subscription", zap.String("subscription_id", id.String()))
		s.metrics.RecordOperation("subscription.cancel", metrics.OutcomeNoop)
		return domain.CancelResult{Canceled: false, Reason: domain.CancelReasonNotFound}, nil
	}
	if !transitioned {
		s.metrics.RecordOperation("subscription.cancel", metrics.OutcomeNoop)
		return domain.CancelResult{Canceled: false, Reason: domain.CancelReasonAlreadyCanceled}, nil
	}

	s.log.Info("subscription canceled", zap.String("subscription_id", id.String()))
	s.metrics.RecordOperation("subscription.cancel", metrics.OutcomeOK)

	s.notifyCanceled(ctx, subscription)

	return domain.CancelResult{Canceled: true, Reason: domain.CancelReasonCanceled}, nil
}

func (s *Service) notifyCanceled(ctx context.Context, subscription *domain.Subscription) {
	customer, err := s.customers.FindByID(ctx, subscription.CustomerID)
	if err != nil || customer == nil {
		return
	}

	serviceName := ""
	if service, err := s.catalog.FindByID(ctx, subscription.ServiceID); err == nil && service != nil {
		serviceName = service.Name
	}

	subject, body := notifier.Render(s.templates.Cancellation, map[string]string{
		"service": serviceName,
	})
	s.notifier.Deliver(ctx, notifier.Notification{
		Channel:   notifier.ChannelEmail,
		Recipient: customer.Email,
		Subject:   subject,
		Message:   body,
	})
}

func (s *Service) ListActive(ctx context.Context) ([]domain.Subscription, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]domain.Subscription, 0, len(all))
	for _, subscription := range all {
		if subscription.IsActive() {
			active = append(active, subscription)
		}
	}
	return active, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Subscription, error) {
	return s.repo.List(ctx)
}

// ActiveServicesForCustomer resolves the catalog entries behind the
// customer's active subscriptions. Unresolvable service ids are dropped.
func (s *Service) ActiveServicesForCustomer(ctx context.Context, req domain.CustomerServicesRequest) ([]catalogdomain.Service, error) {
	customerID, err := snowflake.ParseString(strings.TrimSpace(req.CustomerID))
	if err != nil {
		return nil, domain.ErrInvalidCustomerID
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	services := make([]catalogdomain.Service, 0)
	for _, subscription := range all {
		if subscription.CustomerID != customerID || !subscription.IsActive() {
			continue
		}
		service, err := s.catalog.FindByID(ctx, subscription.ServiceID)
		if err != nil {
			return nil, err
		}
		if service == nil {
			continue
		}
		services = append(services, *service)
	}
	return services, nil
}

// CustomersForService is the symmetric query, filtered by service id.
func (s *Service) CustomersForService(ctx context.Context, req domain.ServiceCustomersRequest) ([]customerdomain.Customer, error) {
	serviceID, err := snowflake.ParseString(strings.TrimSpace(req.ServiceID))
	if err != nil {
		return nil, domain.ErrInvalidServiceID
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	customers := make([]customerdomain.Customer, 0)
	for _, subscription := range all {
		if subscription.ServiceID != serviceID || !subscription.IsActive() {
			continue
		}
		customer, err := s.customers.FindByID(ctx, subscription.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			continue
		}
		customers = append(customers, *customer)
	}
	return customers, nil
}
