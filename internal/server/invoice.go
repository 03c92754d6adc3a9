package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/subtrack/internal/invoice/domain"
	"github.com/smallbiznis/subtrack/internal/providers/pdf"
	"github.com/smallbiznis/subtrack/pkg/money"
)

type createInvoiceRequest struct {
	SubscriptionID string `json:"subscription_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.invoiceSvc.CreateForSubscription(c.Request.Context(), invoicedomain.CreateInvoiceRequest{
		SubscriptionID: strings.TrimSpace(req.SubscriptionID),
		Amount:         req.Amount,
		Currency:       strings.TrimSpace(req.Currency),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	resp, err := s.invoiceSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), invoicedomain.GetInvoiceRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoicePDF(c *gin.Context) {
	ctx := c.Request.Context()

	invoice, err := s.invoiceSvc.GetByID(ctx, invoicedomain.GetInvoiceRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data := pdf.InvoiceData{
		Number:    invoice.Number,
		IssueDate: invoice.IssueDate.Format("2006-01-02"),
		DueDate:   invoice.DueDate.Format("2006-01-02"),
		AmountDue: money.Format(invoice.Amount, invoice.Currency),
	}

	if customer, err := s.customers.FindByID(ctx, invoice.CustomerID); err == nil && customer != nil {
		data.BillToName = customer.Name
		data.BillToAddress = customer.Address
		data.BillToEmail = customer.Email
	}

	if subscription, err := s.subscriptions.FindByID(ctx, invoice.SubscriptionID); err == nil && subscription != nil {
		if service, err := s.services.FindByID(ctx, subscription.ServiceID); err == nil && service != nil {
			data.ServiceName = service.Name
		}
	}

	reader, err := s.pdf.GenerateInvoice(ctx, data)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+invoice.Number+".pdf")
	c.DataFromReader(http.StatusOK, -1, "application/pdf", reader, nil)
}
