// Package domain contains the subscription lifecycle model. A subscription is
// created active and can transition to canceled exactly once; canceled is
// terminal.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Status represents lifecycle states for a subscription.
type Status string

const (
	StatusActive   Status = "active"
	StatusCanceled Status = "canceled"
)

// Subscription links a customer to a catalog service.
type Subscription struct {
	ID         snowflake.ID `json:"id"`
	CustomerID snowflake.ID `json:"customer_id"`
	ServiceID  snowflake.ID `json:"service_id"`
	Status     Status       `json:"status"`
	StartDate  time.Time    `json:"start_date"`
	CanceledAt *time.Time   `json:"canceled_at,omitempty"`
}

// IsActive reports whether the subscription has not been canceled.
func (s Subscription) IsActive() bool {
	return s.Status == StatusActive
}
