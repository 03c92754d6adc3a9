package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Repository is the keyed payment collection.
type Repository interface {
	Insert(ctx context.Context, payment *Payment) error
	ListByInvoice(ctx context.Context, invoiceID snowflake.ID) ([]Payment, error)
	List(ctx context.Context) ([]Payment, error)
}
