// Package split computes per-participant shares for an expense.
//
// Shares are kept in full float precision; rounding to currency
// precision happens only at the response boundary so that error does
// not compound across many expenses during aggregation.
package split

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Type discriminates how an expense is divided among participants
type Type string

const (
	TypeEqual  Type = "equal"
	TypeCustom Type = "custom"
)

// DefaultTolerance is the accepted drift on the sum of custom split
// percentages. UI rounding produces sums like 99.99 or 100.01
// (33.33/33.33/33.34), so exact equality with 100 is too strict.
const DefaultTolerance = 0.5

var (
	// ErrInvalidSplit is returned for an equal split with no participants
	ErrInvalidSplit = errors.New("invalid split: expense has no participants")

	// ErrUnknownSplitType is returned for an unrecognized split type
	ErrUnknownSplitType = errors.New("unknown split type")
)

// PercentageSumError reports custom split percentages whose sum falls
// outside the accepted band.
type PercentageSumError struct {
	Sum float64
}

func (e *PercentageSumError) Error() string {
	return fmt.Sprintf("split percentages sum to %.2f, expected between 0 and 100", e.Sum)
}

// Input carries the split-relevant fields of an expense
type Input struct {
	Amount      float64
	Type        Type
	Percentages map[uuid.UUID]float64 // only meaningful for TypeCustom
}

// Calculator computes owed shares for expenses
type Calculator struct {
	// Tolerance widens the [0, 100] percentage-sum band on both ends
	Tolerance float64
}

// NewCalculator creates a calculator with the default drift tolerance
func NewCalculator() *Calculator {
	return &Calculator{Tolerance: DefaultTolerance}
}

// Shares computes each participant's owed share of the expense amount.
//
// For an equal split every current participant, payer included, owes
// amount/N; the payer's own payment is tracked separately by the
// aggregator. For a custom split each participant owes their
// percentage of the amount (absent from the map means 0%).
//
// Percentage entries for users no longer in participantIDs are dropped
// from both the shares and the percentage-sum check, so a participant
// removed after the expense was recorded never blocks recomputation.
func (c *Calculator) Shares(in Input, participantIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	switch in.Type {
	case TypeEqual:
		return c.equalShares(in.Amount, participantIDs)
	case TypeCustom:
		return c.customShares(in.Amount, in.Percentages, participantIDs)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSplitType, in.Type)
	}
}

func (c *Calculator) equalShares(amount float64, participantIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	if len(participantIDs) == 0 {
		return nil, ErrInvalidSplit
	}

	share := amount / float64(len(participantIDs))
	shares := make(map[uuid.UUID]float64, len(participantIDs))
	for _, id := range participantIDs {
		shares[id] = share
	}

	return shares, nil
}

func (c *Calculator) customShares(amount float64, percentages map[uuid.UUID]float64, participantIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	current := make(map[uuid.UUID]bool, len(participantIDs))
	for _, id := range participantIDs {
		current[id] = true
	}

	// Sum only percentages of users still in the event; stale entries
	// are ignored entirely.
	var sum float64
	for id, pct := range percentages {
		if current[id] {
			sum += pct
		}
	}

	if sum < -c.Tolerance || sum > 100+c.Tolerance {
		return nil, &PercentageSumError{Sum: sum}
	}

	shares := make(map[uuid.UUID]float64, len(participantIDs))
	for _, id := range participantIDs {
		shares[id] = amount * percentages[id] / 100
	}

	return shares, nil
}
