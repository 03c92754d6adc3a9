package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/smallbiznis/subtrack/internal/payment/domain"
)

type processPaymentRequest struct {
	InvoiceID string `json:"invoice_id"`
	Amount    int64  `json:"amount"`
	Method    string `json:"method"`
}

func (s *Server) ProcessPayment(c *gin.Context) {
	var req processPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.paymentSvc.Process(c.Request.Context(), paymentdomain.ProcessPaymentRequest{
		InvoiceID: strings.TrimSpace(req.InvoiceID),
		Amount:    req.Amount,
		Method:    strings.TrimSpace(req.Method),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPayments(c *gin.Context) {
	invoiceID := strings.TrimSpace(c.Query("invoice_id"))
	if invoiceID != "" {
		resp, err := s.paymentSvc.ListByInvoice(c.Request.Context(), paymentdomain.ListPaymentsRequest{
			InvoiceID: invoiceID,
		})
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": resp})
		return
	}

	resp, err := s.paymentSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
