package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/scott3212/EventCostSplit-sub002/pkg/response"
)

// CreateExpenseRequest represents the request body for creating an expense
type CreateExpenseRequest struct {
	EventID         string             `json:"event_id" validate:"required,uuid"`
	Description     string             `json:"description" validate:"required"`
	Amount          float64            `json:"amount" validate:"required,gt=0"`
	PaidBy          string             `json:"paid_by" validate:"required,uuid"`
	Date            time.Time          `json:"date"`
	SplitType       string             `json:"split_type" validate:"required,oneof=equal custom"`
	SplitPercentage map[string]float64 `json:"split_percentage,omitempty"`
}

// UpdateExpenseRequest represents the request body for updating an expense
type UpdateExpenseRequest struct {
	Description     *string            `json:"description,omitempty"`
	Amount          *float64           `json:"amount,omitempty"`
	PaidBy          *string            `json:"paid_by,omitempty"`
	Date            *time.Time         `json:"date,omitempty"`
	SplitType       *string            `json:"split_type,omitempty"`
	SplitPercentage map[string]float64 `json:"split_percentage,omitempty"`
}

// ExpenseResponse represents the response for a single expense
type ExpenseResponse struct {
	ID              string             `json:"id"`
	EventID         string             `json:"event_id"`
	Description     string             `json:"description"`
	Amount          float64            `json:"amount"`
	PaidBy          string             `json:"paid_by"`
	PayerName       string             `json:"payer_name,omitempty"`
	Date            string             `json:"date"`
	SplitType       string             `json:"split_type"`
	SplitPercentage map[string]float64 `json:"split_percentage,omitempty"`
	CreatedAt       string             `json:"created_at"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	resp := &ExpenseResponse{
		ID:          e.ID.String(),
		EventID:     e.EventID.String(),
		Description: e.Description,
		Amount:      response.RoundCurrency(e.Amount),
		PaidBy:      e.PaidBy.String(),
		PayerName:   e.PayerName,
		Date:        e.Date.Format("2006-01-02T15:04:05Z"),
		SplitType:   string(e.SplitType),
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}

	if len(e.SplitPercentage) > 0 {
		resp.SplitPercentage = make(map[string]float64, len(e.SplitPercentage))
		for id, pct := range e.SplitPercentage {
			resp.SplitPercentage[id.String()] = pct
		}
	}

	return resp
}

// parsePercentages converts string-keyed request percentages to UUID keys
func parsePercentages(raw map[string]float64) (map[uuid.UUID]float64, error) {
	if raw == nil {
		return nil, nil
	}

	percentages := make(map[uuid.UUID]float64, len(raw))
	for key, pct := range raw {
		id, err := uuid.Parse(key)
		if err != nil {
			return nil, err
		}
		percentages[id] = pct
	}
	return percentages, nil
}
