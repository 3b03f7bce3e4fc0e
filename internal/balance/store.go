package balance

import (
	"context"

	"github.com/google/uuid"

	"github.com/scott3212/EventCostSplit-sub002/internal/event"
	"github.com/scott3212/EventCostSplit-sub002/internal/expense"
	"github.com/scott3212/EventCostSplit-sub002/internal/payment"
	"github.com/scott3212/EventCostSplit-sub002/internal/user"
)

// Store supplies the raw records a balance computation runs over. The
// engine reads a snapshot through this interface and owns no state of
// its own. A nil eventID means the global scope.
type Store interface {
	ListExpenses(ctx context.Context, eventID *uuid.UUID) ([]*expense.Expense, error)
	ListPayments(ctx context.Context, eventID *uuid.UUID) ([]*payment.Payment, error)

	// ListParticipants returns event.ErrEventNotFound for an unknown
	// event ID.
	ListParticipants(ctx context.Context, eventID uuid.UUID) ([]*event.Participant, error)
	ListUsers(ctx context.Context) ([]*user.User, error)
}

// repositoryStore adapts the postgres repositories to the Store
// interface.
type repositoryStore struct {
	events   *event.Repository
	expenses *expense.Repository
	payments *payment.Repository
	users    *user.Repository
}

// NewRepositoryStore wires the feature repositories into a balance Store
func NewRepositoryStore(events *event.Repository, expenses *expense.Repository, payments *payment.Repository, users *user.Repository) Store {
	return &repositoryStore{
		events:   events,
		expenses: expenses,
		payments: payments,
		users:    users,
	}
}

func (s *repositoryStore) ListExpenses(ctx context.Context, eventID *uuid.UUID) ([]*expense.Expense, error) {
	return s.expenses.ListAll(ctx, eventID)
}

func (s *repositoryStore) ListPayments(ctx context.Context, eventID *uuid.UUID) ([]*payment.Payment, error) {
	return s.payments.ListAll(ctx, eventID)
}

func (s *repositoryStore) ListParticipants(ctx context.Context, eventID uuid.UUID) ([]*event.Participant, error) {
	ev, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, event.ErrEventNotFound
	}

	return s.events.GetParticipants(ctx, eventID)
}

func (s *repositoryStore) ListUsers(ctx context.Context) ([]*user.User, error) {
	return s.users.ListAll(ctx)
}
