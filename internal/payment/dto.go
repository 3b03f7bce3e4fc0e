package payment

import (
	"time"

	"github.com/scott3212/EventCostSplit-sub002/pkg/response"
)

// CreatePaymentRequest represents the request body for recording a payment
type CreatePaymentRequest struct {
	PayerID     string    `json:"payer_id" validate:"required,uuid"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Description *string   `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	EventID     *string   `json:"event_id,omitempty" validate:"omitempty,uuid"`
}

// PaymentResponse represents the response for a single payment
type PaymentResponse struct {
	ID          string  `json:"id"`
	PayerID     string  `json:"payer_id"`
	PayerName   string  `json:"payer_name,omitempty"`
	Amount      float64 `json:"amount"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
	EventID     *string `json:"event_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// ToResponse converts a Payment model to a PaymentResponse DTO
func (p *Payment) ToResponse() *PaymentResponse {
	resp := &PaymentResponse{
		ID:          p.ID.String(),
		PayerID:     p.PayerID.String(),
		PayerName:   p.PayerName,
		Amount:      response.RoundCurrency(p.Amount),
		Description: p.Description,
		Date:        p.Date.Format("2006-01-02T15:04:05Z"),
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}

	if p.EventID != nil {
		eventID := p.EventID.String()
		resp.EventID = &eventID
	}

	return resp
}
