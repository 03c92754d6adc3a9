package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Repository is the keyed subscription collection.
//
// Cancel performs the check-then-transition atomically for the given id: it
// returns the stored subscription (nil when absent) and whether this call
// performed the active→canceled transition. At most one call ever returns
// transitioned=true for a given id.
type Repository interface {
	Insert(ctx context.Context, subscription *Subscription) error
	FindByID(ctx context.Context, id snowflake.ID) (*Subscription, error)
	List(ctx context.Context) ([]Subscription, error)
	Cancel(ctx context.Context, id snowflake.ID, at time.Time) (*Subscription, bool, error)
}
