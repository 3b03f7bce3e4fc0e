package event

import "time"

// CreateEventRequest represents the request body for creating an event
type CreateEventRequest struct {
	Name        string    `json:"name" validate:"required,min=1,max=100"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location" validate:"required"`
	Description *string   `json:"description,omitempty"`
}

// UpdateEventRequest represents the request body for updating an event
type UpdateEventRequest struct {
	Name        *string    `json:"name,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Description *string    `json:"description,omitempty"`
}

// AddParticipantRequest represents the request to add a user to an event
type AddParticipantRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// EventResponse represents the response for a single event
type EventResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Date         string                 `json:"date"`
	Location     string                 `json:"location"`
	Description  *string                `json:"description,omitempty"`
	CreatedAt    string                 `json:"created_at"`
	Participants []*ParticipantResponse `json:"participants,omitempty"`
}

// ParticipantResponse represents one event participant
type ParticipantResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
}

// ToResponse converts an Event model to an EventResponse DTO
func (e *Event) ToResponse() *EventResponse {
	return &EventResponse{
		ID:          e.ID.String(),
		Name:        e.Name,
		Date:        e.Date.Format("2006-01-02T15:04:05Z"),
		Location:    e.Location,
		Description: e.Description,
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Participant model to a ParticipantResponse DTO
func (p *Participant) ToResponse() *ParticipantResponse {
	return &ParticipantResponse{
		UserID: p.UserID.String(),
		Name:   p.Name,
		Email:  p.Email,
	}
}
