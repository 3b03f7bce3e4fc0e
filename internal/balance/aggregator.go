package balance

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/scott3212/EventCostSplit-sub002/internal/expense"
	"github.com/scott3212/EventCostSplit-sub002/internal/expense/split"
	"github.com/scott3212/EventCostSplit-sub002/internal/payment"
)

// Scope is the snapshot of records a balance computation runs over:
// one event's records and participants, or everything (global).
type Scope struct {
	Expenses []*expense.Expense
	Payments []*payment.Payment

	// ParticipantIDs are the users represented in the output; each
	// gets a record even with zero activity.
	ParticipantIDs []uuid.UUID

	// EventParticipants resolves the participant set used to split
	// each expense, keyed by event ID. When nil, ParticipantIDs is
	// used for every expense (single-event scope).
	EventParticipants map[uuid.UUID][]uuid.UUID
}

func (s *Scope) splitParticipants(eventID uuid.UUID) []uuid.UUID {
	if s.EventParticipants == nil {
		return s.ParticipantIDs
	}
	return s.EventParticipants[eventID]
}

// Aggregator folds expenses and payments for one scope into per-user
// totals. It is a pure function of its inputs: no caching, no shared
// state, identical output for any ordering of the input records.
type Aggregator struct {
	calculator *split.Calculator
}

// NewAggregator creates an aggregator using the given split calculator
func NewAggregator(calculator *split.Calculator) *Aggregator {
	return &Aggregator{calculator: calculator}
}

// Compute derives a balance record for every participant in scope.
//
// A payer who has since left the participant set keeps their paid
// contribution; history does not disappear when membership changes.
// Payments count toward Paid, offsetting what the payer still owes:
//
//	Net = expensesPaid + paymentsMade - owedShare
func (a *Aggregator) Compute(scope Scope) (map[uuid.UUID]*Record, error) {
	records := make(map[uuid.UUID]*Record, len(scope.ParticipantIDs))
	for _, id := range scope.ParticipantIDs {
		records[id] = &Record{}
	}

	record := func(id uuid.UUID) *Record {
		if r, ok := records[id]; ok {
			return r
		}
		r := &Record{}
		records[id] = r
		return r
	}

	for _, e := range scope.Expenses {
		shares, err := a.calculator.Shares(e.SplitInput(), scope.splitParticipants(e.EventID))
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}

		record(e.PaidBy).Paid += e.Amount
		for id, share := range shares {
			record(id).Owes += share
		}
	}

	for _, p := range scope.Payments {
		record(p.PayerID).Paid += p.Amount
	}

	for _, r := range records {
		r.Net = r.Paid - r.Owes
	}

	return records, nil
}
