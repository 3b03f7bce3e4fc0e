package balance

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/scott3212/EventCostSplit-sub002/internal/event"
	"github.com/scott3212/EventCostSplit-sub002/internal/expense"
	"github.com/scott3212/EventCostSplit-sub002/internal/expense/split"
	"github.com/scott3212/EventCostSplit-sub002/internal/payment"
	"github.com/scott3212/EventCostSplit-sub002/internal/user"
)

// memoryStore is an in-memory Store for service tests.
type memoryStore struct {
	users        []*user.User
	participants map[uuid.UUID][]*event.Participant
	expenses     []*expense.Expense
	payments     []*payment.Payment
}

func (m *memoryStore) ListExpenses(_ context.Context, eventID *uuid.UUID) ([]*expense.Expense, error) {
	if eventID == nil {
		return m.expenses, nil
	}
	var out []*expense.Expense
	for _, e := range m.expenses {
		if e.EventID == *eventID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memoryStore) ListPayments(_ context.Context, eventID *uuid.UUID) ([]*payment.Payment, error) {
	if eventID == nil {
		return m.payments, nil
	}
	var out []*payment.Payment
	for _, p := range m.payments {
		if p.EventID != nil && *p.EventID == *eventID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryStore) ListParticipants(_ context.Context, eventID uuid.UUID) ([]*event.Participant, error) {
	participants, ok := m.participants[eventID]
	if !ok {
		return nil, event.ErrEventNotFound
	}
	return participants, nil
}

func (m *memoryStore) ListUsers(_ context.Context) ([]*user.User, error) {
	return m.users, nil
}

func newTestService(store Store) *Service {
	return NewService(store, NewAggregator(split.NewCalculator()), NewPlanner())
}

func weekendTripStore() *memoryStore {
	return &memoryStore{
		users: []*user.User{
			{ID: alice, Name: "Alice"},
			{ID: bob, Name: "Bob"},
			{ID: charlie, Name: "Charlie"},
			{ID: diana, Name: "Diana"},
		},
		participants: map[uuid.UUID][]*event.Participant{
			eventID: {
				{EventID: eventID, UserID: alice, Name: "Alice"},
				{EventID: eventID, UserID: bob, Name: "Bob"},
				{EventID: eventID, UserID: charlie, Name: "Charlie"},
				{EventID: eventID, UserID: diana, Name: "Diana"},
			},
		},
		expenses: weekendTripExpenses(),
	}
}

func TestGetEventBalance(t *testing.T) {
	svc := newTestService(weekendTripStore())

	balances, err := svc.GetEventBalance(context.Background(), eventID)
	if err != nil {
		t.Fatalf("GetEventBalance failed: %v", err)
	}

	if len(balances) != 4 {
		t.Fatalf("expected 4 balances, got %d", len(balances))
	}

	// Sorted by name.
	wantNames := []string{"Alice", "Bob", "Charlie", "Diana"}
	wantNets := []float64{40.00, -10.00, 9.98, -15.00}
	for i, b := range balances {
		if b.Name != wantNames[i] {
			t.Errorf("balance[%d].Name = %q, want %q", i, b.Name, wantNames[i])
		}
		if math.Abs(b.Record.Net-wantNets[i]) > 0.1 {
			t.Errorf("balance[%d].Net = %.4f, want %.2f", i, b.Record.Net, wantNets[i])
		}
	}
}

func TestGetEventBalance_UnknownEvent(t *testing.T) {
	svc := newTestService(weekendTripStore())

	_, err := svc.GetEventBalance(context.Background(), uuid.New())
	if !errors.Is(err, event.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestGetEventBalance_RemovedPayerKeepsName(t *testing.T) {
	store := weekendTripStore()
	// Diana left the event after paying; her record survives with her
	// name resolved from the user table.
	store.participants[eventID] = store.participants[eventID][:3]

	svc := newTestService(store)
	balances, err := svc.GetEventBalance(context.Background(), eventID)
	if err != nil {
		t.Fatalf("GetEventBalance failed: %v", err)
	}

	var found *UserBalance
	for _, b := range balances {
		if b.UserID == diana {
			found = b
		}
	}
	if found == nil {
		t.Fatal("removed payer missing from balances")
	}
	if found.Name != "Diana" {
		t.Errorf("removed payer name = %q, want Diana", found.Name)
	}
	if math.Abs(found.Record.Paid-25) > 0.001 {
		t.Errorf("removed payer paid = %v, want 25", found.Record.Paid)
	}
}

func TestGetGlobalBalance_SplitsPerEvent(t *testing.T) {
	dinner := uuid.MustParse("10000000-0000-0000-0000-000000000002")
	store := &memoryStore{
		users: []*user.User{
			{ID: alice, Name: "Alice"},
			{ID: bob, Name: "Bob"},
			{ID: charlie, Name: "Charlie"},
			{ID: diana, Name: "Diana"},
		},
		participants: map[uuid.UUID][]*event.Participant{
			dinner: {
				{EventID: dinner, UserID: alice, Name: "Alice"},
				{EventID: dinner, UserID: bob, Name: "Bob"},
			},
		},
		expenses: []*expense.Expense{
			{EventID: dinner, Amount: 50, PaidBy: alice, SplitType: split.TypeEqual},
		},
	}

	svc := newTestService(store)
	balances, err := svc.GetGlobalBalance(context.Background())
	if err != nil {
		t.Fatalf("GetGlobalBalance failed: %v", err)
	}

	if len(balances) != 4 {
		t.Fatalf("expected a record for every user, got %d", len(balances))
	}
	nets := make(map[uuid.UUID]float64, len(balances))
	for _, b := range balances {
		nets[b.UserID] = b.Record.Net
	}

	if math.Abs(nets[alice]-25) > 0.001 {
		t.Errorf("alice net = %v, want 25", nets[alice])
	}
	if math.Abs(nets[bob]+25) > 0.001 {
		t.Errorf("bob net = %v, want -25", nets[bob])
	}
	if nets[charlie] != 0 || nets[diana] != 0 {
		t.Errorf("non-participants should net 0, got charlie=%v diana=%v", nets[charlie], nets[diana])
	}
}

func TestGetEventSettlements(t *testing.T) {
	store := weekendTripStore()
	// Drop the all-zero split so the scope's nets sum to zero and a
	// settlement plan exists.
	store.expenses = store.expenses[:3]
	svc := newTestService(store)

	suggestions, err := svc.GetEventSettlements(context.Background(), eventID)
	if err != nil {
		t.Fatalf("GetEventSettlements failed: %v", err)
	}

	// Applying the suggested transfers must zero everyone out.
	balances, err := svc.GetEventBalance(context.Background(), eventID)
	if err != nil {
		t.Fatalf("GetEventBalance failed: %v", err)
	}
	remaining := make(map[uuid.UUID]float64, len(balances))
	for _, b := range balances {
		remaining[b.UserID] = b.Record.Net
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

func TestGetEventSettlements_ImbalancedLedger(t *testing.T) {
	store := weekendTripStore()
	store.expenses = store.expenses[:3]
	// A payment credits only its payer, so it shifts the ledger total
	// off zero. Settlement planning refuses to paper over that.
	store.payments = []*payment.Payment{
		{ID: uuid.New(), PayerID: diana, Amount: 15, EventID: &eventID},
	}

	svc := newTestService(store)
	_, err := svc.GetEventSettlements(context.Background(), eventID)
	if !errors.Is(err, ErrImbalancedLedger) {
		t.Fatalf("expected ErrImbalancedLedger, got %v", err)
	}
}

func TestEventBalanceEntry_Rounding(t *testing.T) {
	b := &UserBalance{
		UserID: alice,
		Name:   "Alice",
		Record: Record{Paid: 80, Owes: 39.996, Net: 40.004},
	}

	entry := b.ToEventEntry()
	if entry.EventOwes != 40.00 {
		t.Errorf("owes rounded to %v, want 40.00", entry.EventOwes)
	}
	if entry.EventBalance != 40.00 {
		t.Errorf("balance rounded to %v, want 40.00", entry.EventBalance)
	}
	if entry.ID != alice.String() {
		t.Errorf("id = %q, want %q", entry.ID, alice.String())
	}
}
