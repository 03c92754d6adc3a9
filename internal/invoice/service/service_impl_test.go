package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/subtrack/internal/clock"
	"github.com/smallbiznis/subtrack/internal/config"
	customerdomain "github.com/smallbiznis/subtrack/internal/customer/domain"
	customerstore "github.com/smallbiznis/subtrack/internal/customer/store"
	"github.com/smallbiznis/subtrack/internal/invoice/domain"
	"github.com/smallbiznis/subtrack/internal/invoice/store"
	"github.com/smallbiznis/subtrack/internal/notifier"
	subscriptiondomain "github.com/smallbiznis/subtrack/internal/subscription/domain"
	subscriptionstore "github.com/smallbiznis/subtrack/internal/subscription/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingDispatcher struct {
	mu   sync.Mutex
	sent []notifier.Notification
}

func (d *recordingDispatcher) Deliver(_ context.Context, n notifier.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, n)
}

type fixture struct {
	svc          domain.Service
	clock        *clock.FakeClock
	dispatch     *recordingDispatcher
	subscription subscriptiondomain.Subscription
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fc := clock.NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	dispatch := &recordingDispatcher{}
	customers := customerstore.NewMemoryStore()
	subscriptions := subscriptionstore.NewMemoryStore()

	customer := customerdomain.Customer{
		ID:        node.Generate(),
		Name:      "Ann Wilson",
		Email:     "ann@example.com",
		CreatedAt: fc.Now(),
	}
	require.NoError(t, customers.Insert(context.Background(), &customer))

	subscription := subscriptiondomain.Subscription{
		ID:         node.Generate(),
		CustomerID: customer.ID,
		ServiceID:  node.Generate(),
		Status:     subscriptiondomain.StatusActive,
		StartDate:  fc.Now(),
	}
	require.NoError(t, subscriptions.Insert(context.Background(), &subscription))

	svc := New(Params{
		Log:           zap.NewNop(),
		GenID:         node,
		Clock:         fc,
		Repo:          store.NewMemoryStore(),
		Subscriptions: subscriptions,
		Customers:     customers,
		Notifier:      dispatch,
		Templates:     config.DefaultNotificationConfig(),
	})

	return &fixture{svc: svc, clock: fc, dispatch: dispatch, subscription: subscription}
}

func TestCreateInvoice(t *testing.T) {
	f := newFixture(t)

	invoice, err := f.svc.CreateForSubscription(context.Background(), domain.CreateInvoiceRequest{
		SubscriptionID: f.subscription.ID.String(),
		Amount:         1599,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1599), invoice.Amount)
	assert.Equal(t, "USD", invoice.Currency)
	assert.Equal(t, f.subscription.CustomerID, invoice.CustomerID)
	assert.Equal(t, f.clock.Now(), invoice.IssueDate)
	assert.Equal(t, f.clock.Now().AddDate(0, 0, 14), invoice.DueDate)
	assert.Equal(t, "INV-20250310-000001", invoice.Number)

	f.dispatch.mu.Lock()
	defer f.dispatch.mu.Unlock()
	require.Len(t, f.dispatch.sent, 1)
	assert.Equal(t, notifier.ChannelEmail, f.dispatch.sent[0].Channel)
	assert.Contains(t, f.dispatch.sent[0].Message, "$15.99")
	assert.Contains(t, f.dispatch.sent[0].Message, "2025-03-24")
}

func TestCreateInvoiceValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateForSubscription(ctx, domain.CreateInvoiceRequest{
		SubscriptionID: f.subscription.ID.String(),
		Amount:         0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.svc.CreateForSubscription(ctx, domain.CreateInvoiceRequest{
		SubscriptionID: f.subscription.ID.String(),
		Amount:         -500,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.svc.CreateForSubscription(ctx, domain.CreateInvoiceRequest{
		SubscriptionID: "bogus",
		Amount:         1599,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSubscriptionID)

	_, err = f.svc.CreateForSubscription(ctx, domain.CreateInvoiceRequest{
		SubscriptionID: "999999999999999999",
		Amount:         1599,
	})
	assert.ErrorIs(t, err, subscriptiondomain.ErrNotFound)
}

func TestCanceledSubscriptionIsStillBillable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	subscriptions := subscriptionstore.NewMemoryStore()
	canceled := f.subscription
	canceledAt := f.clock.Now()
	canceled.Status = subscriptiondomain.StatusCanceled
	canceled.CanceledAt = &canceledAt
	require.NoError(t, subscriptions.Insert(ctx, &canceled))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	svc := New(Params{
		Log:           zap.NewNop(),
		GenID:         node,
		Clock:         f.clock,
		Repo:          store.NewMemoryStore(),
		Subscriptions: subscriptions,
		Customers:     customerstore.NewMemoryStore(),
		Notifier:      f.dispatch,
		Templates:     config.DefaultNotificationConfig(),
	})

	invoice, err := svc.CreateForSubscription(ctx, domain.CreateInvoiceRequest{
		SubscriptionID: canceled.ID.String(),
		Amount:         1599,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1599), invoice.Amount)
}

func TestInvoiceNumberSequenceAdvances(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.CreateForSubscription(ctx, domain.CreateInvoiceRequest{
		SubscriptionID: f.subscription.ID.String(),
		Amount:         1000,
	})
	require.NoError(t, err)
	second, err := f.svc.CreateForSubscription(ctx, domain.CreateInvoiceRequest{
		SubscriptionID: f.subscription.ID.String(),
		Amount:         2000,
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-20250310-000001", first.Number)
	assert.Equal(t, "INV-20250310-000002", second.Number)
}

func TestCreateInvoiceCurrencyOverride(t *testing.T) {
	f := newFixture(t)

	invoice, err := f.svc.CreateForSubscription(context.Background(), domain.CreateInvoiceRequest{
		SubscriptionID: f.subscription.ID.String(),
		Amount:         1599,
		Currency:       "eur",
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", invoice.Currency)
}

func TestGetInvoiceByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateForSubscription(ctx, domain.CreateInvoiceRequest{
		SubscriptionID: f.subscription.ID.String(),
		Amount:         1599,
	})
	require.NoError(t, err)

	got, err := f.svc.GetByID(ctx, domain.GetInvoiceRequest{ID: created.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = f.svc.GetByID(ctx, domain.GetInvoiceRequest{ID: "999999999999999999"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
