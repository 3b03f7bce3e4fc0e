package balance

import (
	"context"
	"sort"

	"github.com/google/uuid"
)

// Service is the facade the HTTP layer talks to. It resolves scope
// data from the store, runs the aggregator and, for settlement
// queries, the planner. Every call recomputes from a fresh snapshot;
// nothing derived is cached.
type Service struct {
	store      Store
	aggregator *Aggregator
	planner    *Planner
}

// NewService creates a balance service
func NewService(store Store, aggregator *Aggregator, planner *Planner) *Service {
	return &Service{
		store:      store,
		aggregator: aggregator,
		planner:    planner,
	}
}

// GetEventBalance computes per-user balances for one event. Returns
// event.ErrEventNotFound if the event does not exist.
func (s *Service) GetEventBalance(ctx context.Context, eventID uuid.UUID) ([]*UserBalance, error) {
	scope, names, err := s.eventScope(ctx, eventID)
	if err != nil {
		return nil, err
	}

	records, err := s.aggregator.Compute(scope)
	if err != nil {
		return nil, err
	}

	return s.assemble(ctx, records, names)
}

// GetGlobalBalance computes per-user balances across all events and
// payments for the full user set.
func (s *Service) GetGlobalBalance(ctx context.Context) ([]*UserBalance, error) {
	scope, names, err := s.globalScope(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.aggregator.Compute(scope)
	if err != nil {
		return nil, err
	}

	return s.assemble(ctx, records, names)
}

// GetEventSettlements suggests transfers that settle one event's
// outstanding balances.
func (s *Service) GetEventSettlements(ctx context.Context, eventID uuid.UUID) ([]Suggestion, error) {
	scope, _, err := s.eventScope(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return s.settle(scope)
}

// GetGlobalSettlements suggests transfers that settle all outstanding
// balances across events.
func (s *Service) GetGlobalSettlements(ctx context.Context) ([]Suggestion, error) {
	scope, _, err := s.globalScope(ctx)
	if err != nil {
		return nil, err
	}

	return s.settle(scope)
}

func (s *Service) settle(scope Scope) ([]Suggestion, error) {
	records, err := s.aggregator.Compute(scope)
	if err != nil {
		return nil, err
	}

	nets := make(map[uuid.UUID]float64, len(records))
	for id, r := range records {
		nets[id] = r.Net
	}

	return s.planner.Suggest(nets)
}

func (s *Service) eventScope(ctx context.Context, eventID uuid.UUID) (Scope, map[uuid.UUID]string, error) {
	participants, err := s.store.ListParticipants(ctx, eventID)
	if err != nil {
		return Scope{}, nil, err
	}

	names := make(map[uuid.UUID]string, len(participants))
	ids := make([]uuid.UUID, len(participants))
	for i, p := range participants {
		ids[i] = p.UserID
		names[p.UserID] = p.Name
	}

	expenses, err := s.store.ListExpenses(ctx, &eventID)
	if err != nil {
		return Scope{}, nil, err
	}
	payments, err := s.store.ListPayments(ctx, &eventID)
	if err != nil {
		return Scope{}, nil, err
	}

	return Scope{
		Expenses:       expenses,
		Payments:       payments,
		ParticipantIDs: ids,
	}, names, nil
}

func (s *Service) globalScope(ctx context.Context) (Scope, map[uuid.UUID]string, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return Scope{}, nil, err
	}

	names := make(map[uuid.UUID]string, len(users))
	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
		names[u.ID] = u.Name
	}

	expenses, err := s.store.ListExpenses(ctx, nil)
	if err != nil {
		return Scope{}, nil, err
	}
	payments, err := s.store.ListPayments(ctx, nil)
	if err != nil {
		return Scope{}, nil, err
	}

	// Shares are always split against the expense's own event
	// participants, even in the global scope.
	eventParticipants := make(map[uuid.UUID][]uuid.UUID)
	for _, e := range expenses {
		if _, ok := eventParticipants[e.EventID]; ok {
			continue
		}
		participants, err := s.store.ListParticipants(ctx, e.EventID)
		if err != nil {
			return Scope{}, nil, err
		}
		participantIDs := make([]uuid.UUID, len(participants))
		for i, p := range participants {
			participantIDs[i] = p.UserID
		}
		eventParticipants[e.EventID] = participantIDs
	}

	return Scope{
		Expenses:          expenses,
		Payments:          payments,
		ParticipantIDs:    ids,
		EventParticipants: eventParticipants,
	}, names, nil
}

// assemble pairs records with user names, resolving names for payers
// outside the participant set, and sorts for stable output.
func (s *Service) assemble(ctx context.Context, records map[uuid.UUID]*Record, names map[uuid.UUID]string) ([]*UserBalance, error) {
	missing := false
	for id := range records {
		if _, ok := names[id]; !ok {
			missing = true
			break
		}
	}
	if missing {
		users, err := s.store.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			if _, ok := names[u.ID]; !ok {
				names[u.ID] = u.Name
			}
		}
	}

	balances := make([]*UserBalance, 0, len(records))
	for id, r := range records {
		balances = append(balances, &UserBalance{
			UserID: id,
			Name:   names[id],
			Record: *r,
		})
	}

	sort.Slice(balances, func(i, j int) bool {
		if balances[i].Name != balances[j].Name {
			return balances[i].Name < balances[j].Name
		}
		return balances[i].UserID.String() < balances[j].UserID.String()
	})

	return balances, nil
}
