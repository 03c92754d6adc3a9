package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Repository is the keyed catalog collection.
type Repository interface {
	Insert(ctx context.Context, service *Service) error
	FindByID(ctx context.Context, id snowflake.ID) (*Service, error)
	List(ctx context.Context) ([]Service, error)
}
