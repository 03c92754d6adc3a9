package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Customer is an immutable registry entity. Phone and Address are optional
// and empty when not supplied at creation.
type Customer struct {
	ID        snowflake.ID `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone,omitempty"`
	Address   string       `json:"address,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}
