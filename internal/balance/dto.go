package balance

import "github.com/scott3212/EventCostSplit-sub002/pkg/response"

// EventBalanceEntry is the wire shape existing consumers expect from
// GET /events/{id}/balance: one element per participant, currency
// rounded to 2 decimals at this boundary only.
type EventBalanceEntry struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	EventBalance float64 `json:"eventBalance"`
	EventOwes    float64 `json:"eventOwes"`
	EventPaid    float64 `json:"eventPaid"`
}

// GlobalBalanceEntry is one user's totals across all events
type GlobalBalanceEntry struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
	Owes    float64 `json:"owes"`
	Paid    float64 `json:"paid"`
}

// SuggestionResponse is one recommended transfer
type SuggestionResponse struct {
	FromUserID string  `json:"fromUserId"`
	ToUserID   string  `json:"toUserId"`
	Amount     float64 `json:"amount"`
}

// ToEventEntry converts a UserBalance to the event wire shape
func (b *UserBalance) ToEventEntry() *EventBalanceEntry {
	return &EventBalanceEntry{
		ID:           b.UserID.String(),
		Name:         b.Name,
		EventBalance: response.RoundCurrency(b.Record.Net),
		EventOwes:    response.RoundCurrency(b.Record.Owes),
		EventPaid:    response.RoundCurrency(b.Record.Paid),
	}
}

// ToGlobalEntry converts a UserBalance to the global wire shape
func (b *UserBalance) ToGlobalEntry() *GlobalBalanceEntry {
	return &GlobalBalanceEntry{
		ID:      b.UserID.String(),
		Name:    b.Name,
		Balance: response.RoundCurrency(b.Record.Net),
		Owes:    response.RoundCurrency(b.Record.Owes),
		Paid:    response.RoundCurrency(b.Record.Paid),
	}
}

// ToResponse converts a Suggestion to its wire shape
func (s *Suggestion) ToResponse() *SuggestionResponse {
	return &SuggestionResponse{
		FromUserID: s.FromUserID.String(),
		ToUserID:   s.ToUserID.String(),
		Amount:     response.RoundCurrency(s.Amount),
	}
}
