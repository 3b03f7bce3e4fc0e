package split

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"
)

var (
	alice   = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	bob     = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	charlie = uuid.MustParse("00000000-0000-0000-0000-000000000003")
	diana   = uuid.MustParse("00000000-0000-0000-0000-000000000004")
)

func TestShares_Equal(t *testing.T) {
	calc := NewCalculator()

	shares, err := calc.Shares(Input{Amount: 80, Type: TypeEqual}, []uuid.UUID{alice, bob, charlie, diana})
	if err != nil {
		t.Fatalf("Shares failed: %v", err)
	}

	if len(shares) != 4 {
		t.Fatalf("expected 4 shares, got %d", len(shares))
	}

	var total float64
	for id, share := range shares {
		if math.Abs(share-20) > 0.01 {
			t.Errorf("share for %s = %v, want 20", id, share)
		}
		total += share
	}
	if math.Abs(total-80) > 0.01 {
		t.Errorf("shares sum to %v, want 80", total)
	}
}

func TestShares_EqualNoParticipants(t *testing.T) {
	calc := NewCalculator()

	_, err := calc.Shares(Input{Amount: 50, Type: TypeEqual}, nil)
	if !errors.Is(err, ErrInvalidSplit) {
		t.Fatalf("expected ErrInvalidSplit, got %v", err)
	}
}

func TestShares_Custom(t *testing.T) {
	tests := []struct {
		name         string
		amount       float64
		percentages  map[uuid.UUID]float64
		participants []uuid.UUID
		want         map[uuid.UUID]float64
	}{
		{
			name:   "percentages with UI rounding drift",
			amount: 30,
			percentages: map[uuid.UUID]float64{
				alice: 33.33, bob: 33.33, charlie: 33.34, diana: 0,
			},
			participants: []uuid.UUID{alice, bob, charlie, diana},
			want: map[uuid.UUID]float64{
				alice: 9.999, bob: 9.999, charlie: 10.002, diana: 0,
			},
		},
		{
			name:   "participant omitted from map owes nothing",
			amount: 40,
			percentages: map[uuid.UUID]float64{
				alice: 25, bob: 25, diana: 50,
			},
			participants: []uuid.UUID{alice, bob, charlie, diana},
			want: map[uuid.UUID]float64{
				alice: 10, bob: 10, charlie: 0, diana: 20,
			},
		},
		{
			name:         "all-zero split is valid",
			amount:       25,
			percentages:  map[uuid.UUID]float64{alice: 0, bob: 0},
			participants: []uuid.UUID{alice, bob},
			want:         map[uuid.UUID]float64{alice: 0, bob: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewCalculator()
			shares, err := calc.Shares(Input{
				Amount:      tt.amount,
				Type:        TypeCustom,
				Percentages: tt.percentages,
			}, tt.participants)
			if err != nil {
				t.Fatalf("Shares failed: %v", err)
			}

			for id, want := range tt.want {
				if math.Abs(shares[id]-want) > 0.001 {
					t.Errorf("share for %s = %v, want %v", id, shares[id], want)
				}
			}
		})
	}
}

func TestShares_CustomSumMatchesAmount(t *testing.T) {
	calc := NewCalculator()

	shares, err := calc.Shares(Input{
		Amount: 100,
		Type:   TypeCustom,
		Percentages: map[uuid.UUID]float64{
			alice: 33.33, bob: 33.33, charlie: 33.34,
		},
	}, []uuid.UUID{alice, bob, charlie})
	if err != nil {
		t.Fatalf("Shares failed: %v", err)
	}

	var total float64
	for _, share := range shares {
		total += share
	}
	if math.Abs(total-100) > 0.01 {
		t.Errorf("shares sum to %v, want 100", total)
	}
}

func TestShares_StaleParticipantSanitized(t *testing.T) {
	calc := NewCalculator()

	// Diana was removed from the event after this expense was recorded.
	// Her 50% must not appear in the shares or break the sum check
	// (remaining percentages only sum to 50).
	shares, err := calc.Shares(Input{
		Amount: 60,
		Type:   TypeCustom,
		Percentages: map[uuid.UUID]float64{
			alice: 25, bob: 25, diana: 50,
		},
	}, []uuid.UUID{alice, bob})
	if err != nil {
		t.Fatalf("Shares failed with stale participant: %v", err)
	}

	if _, ok := shares[diana]; ok {
		t.Error("stale participant should not receive a share")
	}
	if math.Abs(shares[alice]-15) > 0.001 {
		t.Errorf("alice share = %v, want 15", shares[alice])
	}
	if math.Abs(shares[bob]-15) > 0.001 {
		t.Errorf("bob share = %v, want 15", shares[bob])
	}
}

func TestShares_PercentageSumOutOfBand(t *testing.T) {
	calc := NewCalculator()

	_, err := calc.Shares(Input{
		Amount: 50,
		Type:   TypeCustom,
		Percentages: map[uuid.UUID]float64{
			alice: 70, bob: 70,
		},
	}, []uuid.UUID{alice, bob})

	var pctErr *PercentageSumError
	if !errors.As(err, &pctErr) {
		t.Fatalf("expected PercentageSumError, got %v", err)
	}
	if math.Abs(pctErr.Sum-140) > 0.001 {
		t.Errorf("reported sum = %v, want 140", pctErr.Sum)
	}
	if !strings.Contains(pctErr.Error(), "140.00") {
		t.Errorf("error should name the offending sum, got %q", pctErr.Error())
	}
}

func TestShares_ToleranceConfigurable(t *testing.T) {
	// 100.3 passes with the default 0.5 tolerance but fails with 0.1
	percentages := map[uuid.UUID]float64{alice: 50.2, bob: 50.1}
	participants := []uuid.UUID{alice, bob}
	in := Input{Amount: 10, Type: TypeCustom, Percentages: percentages}

	if _, err := NewCalculator().Shares(in, participants); err != nil {
		t.Errorf("default tolerance should accept 100.3: %v", err)
	}

	strict := &Calculator{Tolerance: 0.1}
	if _, err := strict.Shares(in, participants); err == nil {
		t.Error("tolerance 0.1 should reject 100.3")
	}
}

func TestShares_UnknownType(t *testing.T) {
	calc := NewCalculator()

	_, err := calc.Shares(Input{Amount: 10, Type: "ratio"}, []uuid.UUID{alice})
	if !errors.Is(err, ErrUnknownSplitType) {
		t.Fatalf("expected ErrUnknownSplitType, got %v", err)
	}
}
