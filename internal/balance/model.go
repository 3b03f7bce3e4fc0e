package balance

import "github.com/google/uuid"

// Record holds one user's derived totals for a scope. Records are
// recomputed from raw expenses and payments on every query and never
// persisted, so they can't go stale.
type Record struct {
	Paid float64 `json:"paid"` // expenses paid out plus payments made
	Owes float64 `json:"owes"` // sum of owed shares across expenses
	Net  float64 `json:"net"`  // Paid - Owes; positive = group owes the user
}

// Suggestion is a recommended direct transfer that reduces the
// outstanding group imbalance.
type Suggestion struct {
	FromUserID uuid.UUID `json:"from_user_id"`
	ToUserID   uuid.UUID `json:"to_user_id"`
	Amount     float64   `json:"amount"`
}

// UserBalance pairs a balance record with the user it belongs to
type UserBalance struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Record Record    `json:"record"`
}
