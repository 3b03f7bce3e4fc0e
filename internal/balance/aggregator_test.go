package balance

import (
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/scott3212/EventCostSplit-sub002/internal/expense"
	"github.com/scott3212/EventCostSplit-sub002/internal/expense/split"
	"github.com/scott3212/EventCostSplit-sub002/internal/payment"
)

var (
	alice   = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	bob     = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	charlie = uuid.MustParse("00000000-0000-0000-0000-000000000003")
	diana   = uuid.MustParse("00000000-0000-0000-0000-000000000004")

	eventID = uuid.MustParse("10000000-0000-0000-0000-000000000001")
)

// weekendTripExpenses is a four-person event mixing equal and custom
// splits, including a member with an all-zero custom split.
func weekendTripExpenses() []*expense.Expense {
	return []*expense.Expense{
		{
			ID: uuid.MustParse("20000000-0000-0000-0000-000000000001"), EventID: eventID,
			Amount: 80, PaidBy: alice, SplitType: split.TypeEqual,
		},
		{
			ID: uuid.MustParse("20000000-0000-0000-0000-000000000002"), EventID: eventID,
			Amount: 30, PaidBy: bob, SplitType: split.TypeCustom,
			SplitPercentage: map[uuid.UUID]float64{alice: 33.33, bob: 33.33, charlie: 33.34, diana: 0},
		},
		{
			ID: uuid.MustParse("20000000-0000-0000-0000-000000000003"), EventID: eventID,
			Amount: 40, PaidBy: charlie, SplitType: split.TypeCustom,
			SplitPercentage: map[uuid.UUID]float64{alice: 25, bob: 25, charlie: 0, diana: 50},
		},
		{
			ID: uuid.MustParse("20000000-0000-0000-0000-000000000004"), EventID: eventID,
			Amount: 25, PaidBy: diana, SplitType: split.TypeCustom,
			SplitPercentage: map[uuid.UUID]float64{alice: 0, bob: 0, charlie: 0, diana: 0},
		},
	}
}

func newAggregator() *Aggregator {
	return NewAggregator(split.NewCalculator())
}

func TestCompute_MixedSplits(t *testing.T) {
	records, err := newAggregator().Compute(Scope{
		Expenses:       weekendTripExpenses(),
		ParticipantIDs: []uuid.UUID{alice, bob, charlie, diana},
	})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	want := map[uuid.UUID]float64{
		alice:   40.00,
		bob:     -10.00,
		charlie: 9.98,
		diana:   -15.00,
	}
	for id, net := range want {
		if math.Abs(records[id].Net-net) > 0.1 {
			t.Errorf("net for %s = %.4f, want %.2f", id, records[id].Net, net)
		}
	}

	if math.Abs(records[alice].Paid-80) > 0.001 {
		t.Errorf("alice paid = %v, want 80", records[alice].Paid)
	}
	if math.Abs(records[diana].Paid-25) > 0.001 {
		t.Errorf("diana paid = %v, want 25", records[diana].Paid)
	}
}

func TestCompute_NetsSumToZero(t *testing.T) {
	// The all-zero custom split is excluded here: money paid in with no
	// owed shares is a deliberate ledger credit, not conserved.
	records, err := newAggregator().Compute(Scope{
		Expenses:       weekendTripExpenses()[:3],
		ParticipantIDs: []uuid.UUID{alice, bob, charlie, diana},
	})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	var total float64
	for _, r := range records {
		total += r.Net
	}
	if math.Abs(total) > Epsilon {
		t.Errorf("nets sum to %.6f, want 0", total)
	}
}

func TestCompute_OrderIndependent(t *testing.T) {
	participants := []uuid.UUID{alice, bob, charlie, diana}

	forward, err := newAggregator().Compute(Scope{
		Expenses:       weekendTripExpenses(),
		ParticipantIDs: participants,
	})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	expenses := weekendTripExpenses()
	for i, j := 0, len(expenses)-1; i < j; i, j = i+1, j-1 {
		expenses[i], expenses[j] = expenses[j], expenses[i]
	}
	reversed, err := newAggregator().Compute(Scope{
		Expenses:       expenses,
		ParticipantIDs: participants,
	})
	if err != nil {
		t.Fatalf("Compute failed on reversed input: %v", err)
	}

	for _, id := range participants {
		if math.Abs(forward[id].Net-reversed[id].Net) > 1e-9 {
			t.Errorf("net for %s differs by input order: %v vs %v", id, forward[id].Net, reversed[id].Net)
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	scope := Scope{
		Expenses:       weekendTripExpenses(),
		ParticipantIDs: []uuid.UUID{alice, bob, charlie, diana},
	}
	agg := newAggregator()

	first, err := agg.Compute(scope)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	second, err := agg.Compute(scope)
	if err != nil {
		t.Fatalf("second Compute failed: %v", err)
	}

	for id, r := range first {
		if *second[id] != *r {
			t.Errorf("record for %s changed between runs: %+v vs %+v", id, r, second[id])
		}
	}
}

func TestCompute_ZeroActivityParticipant(t *testing.T) {
	records, err := newAggregator().Compute(Scope{
		Expenses: []*expense.Expense{
			{EventID: eventID, Amount: 30, PaidBy: alice, SplitType: split.TypeCustom,
				SplitPercentage: map[uuid.UUID]float64{alice: 50, bob: 50}},
		},
		ParticipantIDs: []uuid.UUID{alice, bob, charlie},
	})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	r, ok := records[charlie]
	if !ok {
		t.Fatal("participant with zero activity should still get a record")
	}
	if r.Paid != 0 || r.Owes != 0 || r.Net != 0 {
		t.Errorf("zero-activity record = %+v, want all zeros", r)
	}
}

func TestCompute_PayerOutsideParticipants(t *testing.T) {
	// Diana paid for the event but was later removed from it. Her
	// contribution stays on the books; she owes no share.
	records, err := newAggregator().Compute(Scope{
		Expenses: []*expense.Expense{
			{EventID: eventID, Amount: 90, PaidBy: diana, SplitType: split.TypeEqual},
		},
		ParticipantIDs: []uuid.UUID{alice, bob, charlie},
	})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if math.Abs(records[diana].Paid-90) > 0.001 {
		t.Errorf("removed payer paid = %v, want 90", records[diana].Paid)
	}
	if records[diana].Owes != 0 {
		t.Errorf("removed payer owes = %v, want 0", records[diana].Owes)
	}
	for _, id := range []uuid.UUID{alice, bob, charlie} {
		if math.Abs(records[id].Owes-30) > 0.001 {
			t.Errorf("share for %s = %v, want 30", id, records[id].Owes)
		}
	}
}

func TestCompute_PaymentOffsetsDebt(t *testing.T) {
	records, err := newAggregator().Compute(Scope{
		Expenses: []*expense.Expense{
			{EventID: eventID, Amount: 60, PaidBy: alice, SplitType: split.TypeEqual},
		},
		Payments: []*payment.Payment{
			{PayerID: bob, Amount: 20, EventID: &eventID},
		},
		ParticipantIDs: []uuid.UUID{alice, bob, charlie},
	})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if math.Abs(records[bob].Net) > 0.001 {
		t.Errorf("bob net after payment = %v, want 0", records[bob].Net)
	}
	if math.Abs(records[charlie].Net+20) > 0.001 {
		t.Errorf("charlie net = %v, want -20", records[charlie].Net)
	}
}

func TestCompute_PerEventParticipants(t *testing.T) {
	// Global scope: the dinner splits among its two participants only,
	// never diluted across every known user.
	dinner := uuid.MustParse("10000000-0000-0000-0000-000000000002")

	records, err := newAggregator().Compute(Scope{
		Expenses: []*expense.Expense{
			{EventID: dinner, Amount: 50, PaidBy: alice, SplitType: split.TypeEqual},
		},
		ParticipantIDs: []uuid.UUID{alice, bob, charlie, diana},
		EventParticipants: map[uuid.UUID][]uuid.UUID{
			dinner: {alice, bob},
		},
	})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if math.Abs(records[bob].Owes-25) > 0.001 {
		t.Errorf("bob owes = %v, want 25", records[bob].Owes)
	}
	if records[charlie].Owes != 0 {
		t.Errorf("non-participant owes = %v, want 0", records[charlie].Owes)
	}
}

func TestCompute_InvalidSplitPropagates(t *testing.T) {
	_, err := newAggregator().Compute(Scope{
		Expenses: []*expense.Expense{
			{EventID: eventID, Amount: 50, PaidBy: alice, SplitType: split.TypeCustom,
				SplitPercentage: map[uuid.UUID]float64{alice: 80, bob: 80}},
		},
		ParticipantIDs: []uuid.UUID{alice, bob},
	})
	if err == nil {
		t.Fatal("expected error for out-of-band percentages")
	}
}
