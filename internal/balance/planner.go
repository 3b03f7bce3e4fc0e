package balance

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Epsilon is the tolerance below which a floating balance counts as
// settled. Comparisons never use exact equality.
const Epsilon = 0.01

// ErrImbalancedLedger is returned when the net balances handed to the
// planner do not sum to zero. That points at an upstream aggregation
// defect; the planner refuses to emit an incomplete plan.
var ErrImbalancedLedger = errors.New("ledger does not balance")

// Planner turns net balances into a short list of direct transfers
// that settle all debts.
//
// The matching is greedy: largest outstanding debt against largest
// outstanding credit, repeated until everyone is settled. This keeps
// the transfer count low but is a heuristic, not a guaranteed minimum
// for multi-party netting.
type Planner struct{}

// NewPlanner creates a settlement planner
func NewPlanner() *Planner {
	return &Planner{}
}

type party struct {
	id     uuid.UUID
	amount float64 // positive magnitude: debt for debtors, credit for creditors
}

// Suggest produces an ordered list of transfers that bring every net
// balance within Epsilon of zero. Ties on magnitude break by ascending
// user ID so output is deterministic.
func (p *Planner) Suggest(nets map[uuid.UUID]float64) ([]Suggestion, error) {
	var total float64
	for _, net := range nets {
		total += net
	}
	if math.Abs(total) > Epsilon {
		return nil, fmt.Errorf("%w: net balances sum to %.4f", ErrImbalancedLedger, total)
	}

	var debtors, creditors []party
	for id, net := range nets {
		switch {
		case net < -Epsilon:
			debtors = append(debtors, party{id: id, amount: -net})
		case net > Epsilon:
			creditors = append(creditors, party{id: id, amount: net})
		}
	}

	var suggestions []Suggestion
	for len(debtors) > 0 && len(creditors) > 0 {
		d := largest(debtors)
		c := largest(creditors)

		amount := math.Min(debtors[d].amount, creditors[c].amount)
		suggestions = append(suggestions, Suggestion{
			FromUserID: debtors[d].id,
			ToUserID:   creditors[c].id,
			Amount:     amount,
		})

		debtors[d].amount -= amount
		creditors[c].amount -= amount

		if debtors[d].amount <= Epsilon {
			debtors = append(debtors[:d], debtors[d+1:]...)
		}
		if creditors[c].amount <= Epsilon {
			creditors = append(creditors[:c], creditors[c+1:]...)
		}
	}

	return suggestions, nil
}

// largest returns the index of the party with the greatest outstanding
// amount, breaking ties by ascending user ID.
func largest(parties []party) int {
	best := 0
	for i := 1; i < len(parties); i++ {
		if parties[i].amount > parties[best].amount ||
			(parties[i].amount == parties[best].amount &&
				parties[i].id.String() < parties[best].id.String()) {
			best = i
		}
	}
	return best
}
