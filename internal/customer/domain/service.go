package domain

import (
	"context"
	"errors"
)

// CreateCustomerRequest carries the required fields plus the optional contact
// details. Phone and Address default to empty when not supplied.
type CreateCustomerRequest struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type GetCustomerRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	GetByID(context.Context, GetCustomerRequest) (Customer, error)
	List(context.Context) ([]Customer, error)
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("customer_not_found")
)
