package payment

import (
	"time"

	"github.com/google/uuid"
)

// Payment represents money a user paid in to settle their balance.
// A payment may be scoped to one event or recorded globally (nil
// EventID).
type Payment struct {
	ID          uuid.UUID  `json:"id"`
	PayerID     uuid.UUID  `json:"payer_id"`
	Amount      float64    `json:"amount"`
	Description *string    `json:"description,omitempty"`
	Date        time.Time  `json:"date"`
	EventID     *uuid.UUID `json:"event_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`
}
