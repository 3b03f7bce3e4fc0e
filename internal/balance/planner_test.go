package balance

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestSuggest_SimpleEqualSplit(t *testing.T) {
	// One 60 expense split three ways: A fronted it, B and C each owe 20.
	nets := map[uuid.UUID]float64{
		alice:   40,
		bob:     -20,
		charlie: -20,
	}

	suggestions, err := NewPlanner().Suggest(nets)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	if len(suggestions) != 2 {
		t.Fatalf("expected 2 transfers, got %d: %+v", len(suggestions), suggestions)
	}
	for _, s := range suggestions {
		if s.ToUserID != alice {
			t.Errorf("transfer to %s, want %s", s.ToUserID, alice)
		}
		if math.Abs(s.Amount-20) > 0.001 {
			t.Errorf("transfer amount = %v, want 20", s.Amount)
		}
	}
}

func TestSuggest_TransfersSettleAllDebts(t *testing.T) {
	nets := map[uuid.UUID]float64{
		alice:   40.00,
		bob:     -10.00,
		charlie: 9.98,
		diana:   -39.98,
	}

	suggestions, err := NewPlanner().Suggest(nets)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	remaining := make(map[uuid.UUID]float64, len(nets))
	for id, net := range nets {
		remaining[id] = net
	}
	for _, s := range suggestions {
		remaining[s.FromUserID] += s.Amount
		remaining[s.ToUserID] -= s.Amount
	}

	for id, net := range remaining {
		if math.Abs(net) > Epsilon {
			t.Errorf("after transfers, %s still at %.4f", id, net)
		}
	}
}

func TestSuggest_GreedyPicksLargestPair(t *testing.T) {
	nets := map[uuid.UUID]float64{
		alice:   50,
		bob:     10,
		charlie: -45,
		diana:   -15,
	}

	suggestions, err := NewPlanner().Suggest(nets)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	if len(suggestions) == 0 {
		t.Fatal("expected at least one transfer")
	}
	first := suggestions[0]
	if first.FromUserID != charlie || first.ToUserID != alice {
		t.Errorf("first transfer %s -> %s, want %s -> %s",
			first.FromUserID, first.ToUserID, charlie, alice)
	}
	if math.Abs(first.Amount-45) > 0.001 {
		t.Errorf("first transfer amount = %v, want 45", first.Amount)
	}
}

func TestSuggest_Deterministic(t *testing.T) {
	// Equal magnitudes everywhere so ordering falls back to the ID
	// tie-break; map iteration order must not leak into the output.
	nets := map[uuid.UUID]float64{
		alice:   25,
		bob:     25,
		charlie: -25,
		diana:   -25,
	}

	first, err := NewPlanner().Suggest(nets)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	for i := 0; i < 20; i++ {
		again, err := NewPlanner().Suggest(nets)
		if err != nil {
			t.Fatalf("Suggest failed on run %d: %v", i, err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d produced %d transfers, first run %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("run %d transfer %d = %+v, first run %+v", i, j, again[j], first[j])
			}
		}
	}

	// Ties break by ascending user ID.
	if first[0].FromUserID != charlie || first[0].ToUserID != alice {
		t.Errorf("first transfer %s -> %s, want %s -> %s",
			first[0].FromUserID, first[0].ToUserID, charlie, alice)
	}
}

func TestSuggest_AlreadySettled(t *testing.T) {
	suggestions, err := NewPlanner().Suggest(map[uuid.UUID]float64{
		alice: 0.004,
		bob:   -0.004,
	})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("expected no transfers within tolerance, got %+v", suggestions)
	}
}

func TestSuggest_ImbalancedLedger(t *testing.T) {
	_, err := NewPlanner().Suggest(map[uuid.UUID]float64{
		alice: 10,
		bob:   -3,
	})
	if !errors.Is(err, ErrImbalancedLedger) {
		t.Fatalf("expected ErrImbalancedLedger, got %v", err)
	}
}
