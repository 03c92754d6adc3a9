package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Payment is an immutable record of money received against an invoice. It is
// fully populated in a single orchestration step; Reference is an opaque
// receipt identifier handed back to the payer.
type Payment struct {
	ID        snowflake.ID `json:"id"`
	InvoiceID snowflake.ID `json:"invoice_id"`
	Amount    int64        `json:"amount"`
	Currency  string       `json:"currency"`
	Method    string       `json:"method"`
	Reference string       `json:"reference"`
	PaidAt    time.Time    `json:"paid_at"`
}
