package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/scott3212/EventCostSplit-sub002/internal/event"
)

// Common errors
var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidPayer    = errors.New("invalid payer ID")
)

// Service handles payment business logic
type Service struct {
	repo      *Repository
	eventRepo *event.Repository
}

// NewService creates a new payment service
func NewService(repo *Repository, eventRepo *event.Repository) *Service {
	return &Service{repo: repo, eventRepo: eventRepo}
}

// Create records a payment, optionally scoped to an event
func (s *Service) Create(ctx context.Context, req *CreatePaymentRequest) (*Payment, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	payerID, err := uuid.Parse(req.PayerID)
	if err != nil {
		return nil, ErrInvalidPayer
	}

	var eventID *uuid.UUID
	if req.EventID != nil {
		id, err := uuid.Parse(*req.EventID)
		if err != nil {
			return nil, event.ErrEventNotFound
		}

		ev, err := s.eventRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if ev == nil {
			return nil, event.ErrEventNotFound
		}
		eventID = &id
	}

	return s.repo.Create(ctx, payerID, eventID, req)
}

// GetByID retrieves a payment by its ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Payment, error) {
	payment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// ListByEventID retrieves payments scoped to an event
func (s *Service) ListByEventID(ctx context.Context, eventID uuid.UUID, page, perPage int) ([]*Payment, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByEventID(ctx, eventID, perPage, offset)
}

// Delete removes a payment
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	payment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if payment == nil {
		return ErrPaymentNotFound
	}

	return s.repo.Delete(ctx, id)
}
