// Package domain describes the service catalog: the plans customers can
// subscribe to.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Service is an immutable catalog entry. Code is a URL-safe slug derived
// from the name at creation time.
type Service struct {
	ID          snowflake.ID `json:"id"`
	Code        string       `json:"code"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}
