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
	invoicedomain "github.com/smallbiznis/subtrack/internal/invoice/domain"
	invoicestore "github.com/smallbiznis/subtrack/internal/invoice/store"
	"github.com/smallbiznis/subtrack/internal/notifier"
	"github.com/smallbiznis/subtrack/internal/payment/domain"
	"github.com/smallbiznis/subtrack/internal/payment/store"
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
	svc      domain.Service
	clock    *clock.FakeClock
	dispatch *recordingDispatcher
	invoice  invoicedomain.Invoice
}

func newFixture(t *testing.T, phone string) *fixture {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fc := clock.NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	dispatch := &recordingDispatcher{}
	customers := customerstore.NewMemoryStore()
	invoices := invoicestore.NewMemoryStore()

	customer := customerdomain.Customer{
		ID:        node.Generate(),
		Name:      "Ann Wilson",
		Email:     "ann@example.com",
		Phone:     phone,
		CreatedAt: fc.Now(),
	}
	require.NoError(t, customers.Insert(context.Background(), &customer))

	invoice := invoicedomain.Invoice{
		ID:             node.Generate(),
		Number:         "INV-20250310-000001",
		SubscriptionID: node.Generate(),
		CustomerID:     customer.ID,
		Amount:         1599,
		Currency:       "USD",
		IssueDate:      fc.Now(),
		DueDate:        fc.Now().AddDate(0, 0, 14),
	}
	require.NoError(t, invoices.Insert(context.Background(), &invoice))

	svc := New(Params{
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     fc,
		Repo:      store.NewMemoryStore(),
		Invoices:  invoices,
		Customers: customers,
		Notifier:  dispatch,
		Templates: config.DefaultNotificationConfig(),
	})

	return &fixture{svc: svc, clock: fc, dispatch: dispatch, invoice: invoice}
}

func TestProcessPayment(t *testing.T) {
	f := newFixture(t, "+15550100")

	payment, err := f.svc.Process(context.Background(), domain.ProcessPaymentRequest{
		InvoiceID: f.invoice.ID.String(),
		Amount:    1599,
		Method:    "credit_card",
	})
	require.NoError(t, err)
	assert.Equal(t, f.invoice.ID, payment.InvoiceID)
	assert.Equal(t, int64(1599), payment.Amount)
	assert.Equal(t, "USD", payment.Currency)
	assert.Equal(t, "credit_card", payment.Method)
	assert.NotEmpty(t, payment.Reference)
	assert.Equal(t, f.clock.Now(), payment.PaidAt)

	f.dispatch.mu.Lock()
	defer f.dispatch.mu.Unlock()
	require.Len(t, f.dispatch.sent, 1)
	assert.Equal(t, notifier.ChannelSMS, f.dispatch.sent[0].Channel)
	assert.Equal(t, "+15550100", f.dispatch.sent[0].Recipient)
	assert.Contains(t, f.dispatch.sent[0].Message, "$15.99")
}

func TestProcessPaymentWithoutPhoneSkipsSMS(t *testing.T) {
	f := newFixture(t, "")

	_, err := f.svc.Process(context.Background(), domain.ProcessPaymentRequest{
		InvoiceID: f.invoice.ID.String(),
		Amount:    1599,
		Method:    "credit_card",
	})
	require.NoError(t, err)

	f.dispatch.mu.Lock()
	defer f.dispatch.mu.Unlock()
	assert.Empty(t, f.dispatch.sent)
}

func TestProcessPaymentValidation(t *testing.T) {
	f := newFixture(t, "+15550100")
	ctx := context.Background()

	_, err := f.svc.Process(ctx, domain.ProcessPaymentRequest{
		InvoiceID: f.invoice.ID.String(),
		Amount:    0,
		Method:    "credit_card",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.svc.Process(ctx, domain.ProcessPaymentRequest{
		InvoiceID: f.invoice.ID.String(),
		Amount:    1599,
		Method:    "  ",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMethod)

	_, err = f.svc.Process(ctx, domain.ProcessPaymentRequest{
		InvoiceID: "bogus",
		Amount:    1599,
		Method:    "credit_card",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInvoiceID)

	_, err = f.svc.Process(ctx, domain.ProcessPaymentRequest{
		InvoiceID: "999999999999999999",
		Amount:    1599,
		Method:    "credit_card",
	})
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)
}

func TestListPaymentsByInvoice(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.svc.Process(ctx, domain.ProcessPaymentRequest{
			InvoiceID: f.invoice.ID.String(),
			Amount:    800,
			Method:    "bank_transfer",
		})
		require.NoError(t, err)
	}

	payments, err := f.svc.ListByInvoice(ctx, domain.ListPaymentsRequest{InvoiceID: f.invoice.ID.String()})
	require.NoError(t, err)
	assert.Len(t, payments, 2)

	none, err := f.svc.ListByInvoice(ctx, domain.ListPaymentsRequest{InvoiceID: "999999999999999999"})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.svc.ListByInvoice(ctx, domain.ListPaymentsRequest{InvoiceID: "bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidInvoiceID)
}
