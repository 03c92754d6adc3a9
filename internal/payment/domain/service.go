package domain

import (
	"context"
	"errors"
)

type ProcessPaymentRequest struct {
	InvoiceID string
	Amount    int64
	Method    string
}

type ListPaymentsRequest struct {
	InvoiceID string
}

type Service interface {
	Process(context.Context, ProcessPaymentRequest) (Payment, error)
	ListByInvoice(context.Context, ListPaymentsRequest) ([]Payment, error)
	List(context.Context) ([]Payment, error)
}

var (
	ErrInvalidInvoiceID = errors.New("invalid_invoice_id")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidMethod    = errors.New("invalid_method")
)
