package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Repository is the keyed invoice collection. NextSequence returns the next
// value of a monotonic counter used for invoice numbering.
type Repository interface {
	Insert(ctx context.Context, invoice *Invoice) error
	FindByID(ctx context.Context, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context) ([]Invoice, error)
	NextSequence(ctx context.Context) (int64, error)
}
