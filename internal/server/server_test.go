package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	catalogservice "github.com/smallbiznis/subtrack/internal/catalog/service"
	catalogstore "github.com/smallbiznis/subtrack/internal/catalog/store"
	"github.com/smallbiznis/subtrack/internal/clock"
	"github.com/smallbiznis/subtrack/internal/config"
	customerservice "github.com/smallbiznis/subtrack/internal/customer/service"
	customerstore "github.com/smallbiznis/subtrack/internal/customer/store"
	invoiceservice "github.com/smallbiznis/subtrack/internal/invoice/service"
	invoicestore "github.com/smallbiznis/subtrack/internal/invoice/store"
	"github.com/smallbiznis/subtrack/internal/notifier"
	paymentservice "github.com/smallbiznis/subtrack/internal/payment/service"
	paymentstore "github.com/smallbiznis/subtrack/internal/payment/store"
	"github.com/smallbiznis/subtrack/internal/providers/pdf"
	subscriptionservice "github.com/smallbiznis/subtrack/internal/subscription/service"
	subscriptionstore "github.com/smallbiznis/subtrack/internal/subscription/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type noopDispatcher struct{}

func (noopDispatcher) Deliver(context.Context, notifier.Notification) {}

// recordingPDF captures the document data handed to the renderer.
type recordingPDF struct {
	last pdf.InvoiceData
}

func (p *recordingPDF) GenerateInvoice(_ context.Context, data pdf.InvoiceData) (io.Reader, error) {
	p.last = data
	return bytes.NewReader([]byte("%PDF-1.4")), nil
}

func newTestServer(t *testing.T) (*gin.Engine, *recordingPDF) {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	fc := clock.NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	templates := config.DefaultNotificationConfig()
	dispatch := noopDispatcher{}
	renderer := &recordingPDF{}

	customerRepo := customerstore.NewMemoryStore()
	catalogRepo := catalogstore.NewMemoryStore()
	subscriptionRepo := subscriptionstore.NewMemoryStore()
	invoiceRepo := invoicestore.NewMemoryStore()
	paymentRepo := paymentstore.NewMemoryStore()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	s := NewServer(ServerParams{
		Gin: engine,
		CustomerSvc: customerservice.New(customerservice.Params{
			Log: log, GenID: node, Clock: fc, Repo: customerRepo,
		}),
		CatalogSvc: catalogservice.New(catalogservice.Params{
			Log: log, GenID: node, Clock: fc, Repo: catalogRepo,
		}),
		SubscriptionSvc: subscriptionservice.New(subscriptionservice.Params{
			Log: log, GenID: node, Clock: fc, Repo: subscriptionRepo,
			Customers: customerRepo, Catalog: catalogRepo,
			Notifier: dispatch, Templates: templates,
		}),
		InvoiceSvc: invoiceservice.New(invoiceservice.Params{
			Log: log, GenID: node, Clock: fc, Repo: invoiceRepo,
			Subscriptions: subscriptionRepo, Customers: customerRepo,
			Notifier: dispatch, Templates: templates,
		}),
		PaymentSvc: paymentservice.New(paymentservice.Params{
			Log: log, GenID: node, Clock: fc, Repo: paymentRepo,
			Invoices: invoiceRepo, Customers: customerRepo,
			Notifier: dispatch, Templates: templates,
		}),
		Customers:     customerRepo,
		Services:      catalogRepo,
		Subscriptions: subscriptionRepo,
		PDF:           renderer,
	})
	registerRoutes(s)
	return engine, renderer
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestCreateCustomerEndpoint(t *testing.T) {
	engine, _ := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/v1/customers", gin.H{
		"name":  "Ann Wilson",
		"email": "ann@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, "Ann Wilson", data["name"])
	assert.NotEmpty(t, data["id"])
}

func TestCreateCustomerEndpointRejectsBadEmail(t *testing.T) {
	engine, _ := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/v1/customers", gin.H{
		"name":  "Ann",
		"email": "nope",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_input", resp.Error.Type)
}

func TestGetUnknownCustomerReturns404(t *testing.T) {
	engine, _ := newTestServer(t)

	w := doJSON(t, engine, http.MethodGet, "/v1/customers/999999999999999999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelUnknownSubscriptionIsSoft(t *testing.T) {
	engine, _ := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/v1/subscriptions/999999999999999999/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, false, data["canceled"])
	assert.Equal(t, "not_found", data["reason"])
}

func TestListSubscriptionsRejectsUnknownStatus(t *testing.T) {
	engine, _ := newTestServer(t)

	w := doJSON(t, engine, http.MethodGet, "/v1/subscriptions?status=paused", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetInvoicePDFResolvesLineItem(t *testing.T) {
	engine, renderer := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/v1/customers", gin.H{
		"name": "Ann Wilson", "email": "ann@example.com", "address": "12 Harbor Lane",
	})
	require.Equal(t, http.StatusOK, w.Code)
	customerID := dataField(t, w)["id"].(string)

	w = doJSON(t, engine, http.MethodPost, "/v1/services", gin.H{
		"name": "Premium Video",
	})
	require.Equal(t, http.StatusOK, w.Code)
	serviceID := dataField(t, w)["id"].(string)

	w = doJSON(t, engine, http.MethodPost, "/v1/subscriptions", gin.H{
		"customer_id": customerID,
		"service_id":  serviceID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	subscriptionID := dataField(t, w)["id"].(string)

	w = doJSON(t, engine, http.MethodPost, "/v1/invoices", gin.H{
		"subscription_id": subscriptionID,
		"amount":          1599,
	})
	require.Equal(t, http.StatusOK, w.Code)
	invoiceID := dataField(t, w)["id"].(string)

	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/v1/invoices/%s/pdf", invoiceID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))

	assert.Equal(t, "Premium Video", renderer.last.ServiceName)
	assert.Equal(t, "Ann Wilson", renderer.last.BillToName)
	assert.Equal(t, "12 Harbor Lane", renderer.last.BillToAddress)
	assert.Equal(t, "$15.99", renderer.last.AmountDue)
	assert.Equal(t, "INV-20250310-000001", renderer.last.Number)
}

func TestSubscriptionFlowOverHTTP(t *testing.T) {
	engine, _ := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/v1/customers", gin.H{
		"name": "Ann", "email": "ann@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	customerID := dataField(t, w)["id"].(string)

	w = doJSON(t, engine, http.MethodPost, "/v1/services", gin.H{
		"name": "Premium Video",
	})
	require.Equal(t, http.StatusOK, w.Code)
	serviceID := dataField(t, w)["id"].(string)

	w = doJSON(t, engine, http.MethodPost, "/v1/subscriptions", gin.H{
		"customer_id": customerID,
		"service_id":  serviceID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	subscriptionID := dataField(t, w)["id"].(string)

	w = doJSON(t, engine, http.MethodPost, "/v1/invoices", gin.H{
		"subscription_id": subscriptionID,
		"amount":          1599,
	})
	require.Equal(t, http.StatusOK, w.Code)
	invoice := dataField(t, w)
	invoiceID := invoice["id"].(string)
	assert.Equal(t, "INV-20250310-000001", invoice["number"])

	w = doJSON(t, engine, http.MethodPost, "/v1/payments", gin.H{
		"invoice_id": invoiceID,
		"amount":     1599,
		"method":     "credit_card",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/v1/customers/%s/services", customerID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/v1/subscriptions/%s/cancel", subscriptionID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, dataField(t, w)["canceled"])
}
