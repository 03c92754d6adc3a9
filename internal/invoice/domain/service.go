package domain

import (
	"context"
	"errors"
)

// CreateInvoiceRequest bills a subscription. Amount is in minor units and
// Currency defaults to USD when empty.
type CreateInvoiceRequest struct {
	SubscriptionID string
	Amount         int64
	Currency       string
}

type GetInvoiceRequest struct {
	ID string
}

type Service interface {
	CreateForSubscription(context.Context, CreateInvoiceRequest) (Invoice, error)
	GetByID(context.Context, GetInvoiceRequest) (Invoice, error)
	List(context.Context) ([]Invoice, error)
}

var (
	ErrInvalidID             = errors.New("invalid_invoice_id")
	ErrInvalidSubscriptionID = errors.New("invalid_subscription_id")
	ErrInvalidAmount         = errors.New("invalid_amount")
	ErrNotFound              = errors.New("invoice_not_found")
)
