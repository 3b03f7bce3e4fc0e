package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/scott3212/EventCostSplit-sub002/internal/expense/split"
)

// Expense represents one cost item recorded against an event
type Expense struct {
	ID          uuid.UUID  `json:"id"`
	EventID     uuid.UUID  `json:"event_id"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	PaidBy      uuid.UUID  `json:"paid_by"`
	Date        time.Time  `json:"date"`
	SplitType   split.Type `json:"split_type"`

	// SplitPercentage maps user ID to percentage (0-100). Only
	// meaningful when SplitType is split.TypeCustom; a participant
	// absent from the map owes 0%.
	SplitPercentage map[uuid.UUID]float64 `json:"split_percentage,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`
}

// SplitInput converts the expense to the split package's input type
func (e *Expense) SplitInput() split.Input {
	return split.Input{
		Amount:      e.Amount,
		Type:        e.SplitType,
		Percentages: e.SplitPercentage,
	}
}
