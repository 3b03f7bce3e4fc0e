package expense

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/scott3212/EventCostSplit-sub002/internal/event"
	"github.com/scott3212/EventCostSplit-sub002/internal/expense/split"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidPayer    = errors.New("invalid payer ID")
)

// Service handles expense business logic. Split rules are validated on
// every write with the same calculator the balance engine uses, so an
// expense that persists is one the engine can always recompute.
type Service struct {
	repo       *Repository
	eventRepo  *event.Repository
	calculator *split.Calculator
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, eventRepo *event.Repository, calculator *split.Calculator) *Service {
	return &Service{
		repo:       repo,
		eventRepo:  eventRepo,
		calculator: calculator,
	}
}

// Create validates the split against the event's current participants
// and persists the expense. No derived shares are stored; balances are
// recomputed from raw records on every query.
func (s *Service) Create(ctx context.Context, req *CreateExpenseRequest) (*Expense, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, event.ErrEventNotFound
	}
	paidBy, err := uuid.Parse(req.PaidBy)
	if err != nil {
		return nil, ErrInvalidPayer
	}
	percentages, err := parsePercentages(req.SplitPercentage)
	if err != nil {
		return nil, ErrInvalidPayer
	}

	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, event.ErrEventNotFound
	}

	participantIDs, err := s.participantIDs(ctx, eventID)
	if err != nil {
		return nil, err
	}

	in := split.Input{
		Amount:      req.Amount,
		Type:        split.Type(req.SplitType),
		Percentages: percentages,
	}
	if _, err := s.calculator.Shares(in, participantIDs); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, eventID, paidBy, req, percentages)
}

// GetByID retrieves an expense by its ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Expense, error) {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}
	return expense, nil
}

// ListByEventID retrieves expenses for an event
func (s *Service) ListByEventID(ctx context.Context, eventID uuid.UUID, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByEventID(ctx, eventID, perPage, offset)
}

// Update modifies an existing expense, revalidating the split rule
// against the event's current participant set. Stale percentage
// entries for removed participants do not block the edit.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateExpenseRequest) (*Expense, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrExpenseNotFound
	}

	updated := *existing
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, ErrInvalidAmount
		}
		updated.Amount = *req.Amount
	}
	if req.PaidBy != nil {
		paidBy, err := uuid.Parse(*req.PaidBy)
		if err != nil {
			return nil, ErrInvalidPayer
		}
		updated.PaidBy = paidBy
	}
	if req.Date != nil {
		updated.Date = *req.Date
	}
	if req.SplitType != nil {
		updated.SplitType = split.Type(*req.SplitType)
	}
	if req.SplitPercentage != nil {
		percentages, err := parsePercentages(req.SplitPercentage)
		if err != nil {
			return nil, ErrInvalidPayer
		}
		updated.SplitPercentage = percentages
	}

	participantIDs, err := s.participantIDs(ctx, existing.EventID)
	if err != nil {
		return nil, err
	}

	if _, err := s.calculator.Shares(updated.SplitInput(), participantIDs); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, &updated)
}

// Delete removes an expense
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return ErrExpenseNotFound
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) participantIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	participants, err := s.eventRepo.GetParticipants(ctx, eventID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(participants))
	for i, p := range participants {
		ids[i] = p.UserID
	}
	return ids, nil
}
