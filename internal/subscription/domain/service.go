package domain

import (
	"context"
	"errors"

	catalogdomain "github.com/smallbiznis/subtrack/internal/catalog/domain"
	customerdomain "github.com/smallbiznis/subtrack/internal/customer/domain"
)

type CreateSubscriptionRequest struct {
	CustomerID string
	ServiceID  string
}

type CancelSubscriptionRequest struct {
	ID string
}

// CancelReason explains a cancel outcome.
type CancelReason string

const (
	CancelReasonCanceled        CancelReason = "canceled"
	CancelReasonNotFound        CancelReason = "not_found"
	CancelReasonAlreadyCanceled CancelReason = "already_canceled"
)

// CancelResult is a soft outcome: cancelling a missing or already canceled
// subscription is reported here, not as an error.
type CancelResult struct {
	Canceled bool         `json:"canceled"`
	Reason   CancelReason `json:"reason"`
}

type CustomerServicesRequest struct {
	CustomerID string
}

type ServiceCustomersRequest struct {
	ServiceID string
}

type Service interface {
	Create(context.Context, CreateSubscriptionRequest) (Subscription, error)
	Cancel(context.Context, CancelSubscriptionRequest) (CancelResult, error)
	ListActive(context.Context) ([]Subscription, error)
	List(context.Context) ([]Subscription, error)
	ActiveServicesForCustomer(context.Context, CustomerServicesRequest) ([]catalogdomain.Service, error)
	CustomersForService(context.Context, ServiceCustomersRequest) ([]customerdomain.Customer, error)
}

var (
	ErrInvalidID         = errors.New("invalid_subscription_id")
	ErrInvalidCustomerID = errors.New("invalid_customer_id")
	ErrInvalidServiceID  = errors.New("invalid_service_id")
	ErrNotFound          = errors.New("subscription_not_found")
)
