package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// DuePeriodDays is the fixed term between issue and due date.
const DuePeriodDays = 14

// Invoice is an immutable billing document. Amount is exact minor units.
// DueDate is always derived from IssueDate, never set directly.
type Invoice struct {
	ID             snowflake.ID `json:"id"`
	Number         string       `json:"number"`
	SubscriptionID snowflake.ID `json:"subscription_id"`
	CustomerID     snowflake.ID `json:"customer_id"`
	Amount         int64        `json:"amount"`
	Currency       string       `json:"currency"`
	IssueDate      time.Time    `json:"issue_date"`
	DueDate        time.Time    `json:"due_date"`
}
