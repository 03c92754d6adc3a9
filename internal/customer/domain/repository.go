package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Repository is the keyed customer collection. Implementations must support
// concurrent insert and lookup without caller-visible locking.
type Repository interface {
	Insert(ctx context.Context, customer *Customer) error
	FindByID(ctx context.Context, id snowflake.ID) (*Customer, error)
	List(ctx context.Context) ([]Customer, error)
}
