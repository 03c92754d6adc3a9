package domain

import (
	"context"
	"errors"
)

type CreateServiceRequest struct {
	Name        string
	Description string
}

type GetServiceRequest struct {
	ID string
}

// Catalog is the use-case surface for the service catalog. The entity itself
// is named Service, so the interface takes the package's name instead.
type Catalog interface {
	Create(context.Context, CreateServiceRequest) (Service, error)
	GetByID(context.Context, GetServiceRequest) (Service, error)
	List(context.Context) ([]Service, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("service_not_found")
)
