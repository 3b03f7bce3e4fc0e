package event

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrEventNotFound            = errors.New("event not found")
	ErrParticipantNotFound      = errors.New("participant not found")
	ErrParticipantAlreadyExists = errors.New("user is already a participant of this event")
)

// Service handles event business logic
type Service struct {
	repo *Repository
}

// NewService creates a new event service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new event
func (s *Service) Create(ctx context.Context, req *CreateEventRequest) (*Event, error) {
	return s.repo.Create(ctx, req)
}

// GetByID retrieves an event by its ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// GetByIDWithParticipants retrieves an event with all its participants
func (s *Service) GetByIDWithParticipants(ctx context.Context, id uuid.UUID) (*Event, []*Participant, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	participants, err := s.repo.GetParticipants(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return event, participants, nil
}

// List retrieves all events with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Event, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

// Update modifies an existing event
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateEventRequest) (*Event, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrEventNotFound
	}

	return s.repo.Update(ctx, id, req)
}

// Delete removes an event
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// AddParticipant adds a user to an event
func (s *Service) AddParticipant(ctx context.Context, eventID, userID uuid.UUID) (*Participant, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	existing, err := s.repo.GetParticipant(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrParticipantAlreadyExists
	}

	return s.repo.AddParticipant(ctx, eventID, userID)
}

// GetParticipants retrieves all participants of an event
func (s *Service) GetParticipants(ctx context.Context, eventID uuid.UUID) ([]*Participant, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	return s.repo.GetParticipants(ctx, eventID)
}

// RemoveParticipant removes a user from an event. Expenses the user
// paid or was included in stay recorded; balance computation
// sanitizes stale references.
func (s *Service) RemoveParticipant(ctx context.Context, eventID, userID uuid.UUID) error {
	existing, err := s.repo.GetParticipant(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrParticipantNotFound
	}

	return s.repo.RemoveParticipant(ctx, eventID, userID)
}
