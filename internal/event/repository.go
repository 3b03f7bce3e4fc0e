package event

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles event and participant data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new event repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new event into the database
func (r *Repository) Create(ctx context.Context, req *CreateEventRequest) (*Event, error) {
	query := `
		INSERT INTO events (id, name, date, location, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, date, location, description, created_at
	`

	event := &Event{}
	err := r.db.QueryRowContext(ctx, query,
		uuid.New(),
		req.Name,
		req.Date,
		req.Location,
		req.Description,
	).Scan(
		&event.ID,
		&event.Name,
		&event.Date,
		&event.Location,
		&event.Description,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// GetByID retrieves an event by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	query := `SELECT id, name, date, location, description, created_at FROM events WHERE id = $1`

	event := &Event{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.Name,
		&event.Date,
		&event.Location,
		&event.Description,
		&event.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// List retrieves all events, newest first
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Event, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	query := `
		SELECT id, name, date, location, description, created_at
		FROM events
		ORDER BY date DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		event := &Event{}
		if err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.Date,
			&event.Location,
			&event.Description,
			&event.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	return events, total, nil
}

// Update modifies an existing event
func (r *Repository) Update(ctx context.Context, id uuid.UUID, req *UpdateEventRequest) (*Event, error) {
	query := `
		UPDATE events
		SET name = COALESCE($2, name),
		    date = COALESCE($3, date),
		    location = COALESCE($4, location),
		    description = COALESCE($5, description)
		WHERE id = $1
		RETURNING id, name, date, location, description, created_at
	`

	event := &Event{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name, req.Date, req.Location, req.Description).Scan(
		&event.ID,
		&event.Name,
		&event.Date,
		&event.Location,
		&event.Description,
		&event.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return event, nil
}

// Delete removes an event and its participant links
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM event_participants WHERE event_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event participants: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// AddParticipant adds a user to an event
func (r *Repository) AddParticipant(ctx context.Context, eventID, userID uuid.UUID) (*Participant, error) {
	query := `
		INSERT INTO event_participants (event_id, user_id)
		VALUES ($1, $2)
		RETURNING event_id, user_id, added_at
	`

	participant := &Participant{}
	err := r.db.QueryRowContext(ctx, query, eventID, userID).Scan(
		&participant.EventID,
		&participant.UserID,
		&participant.AddedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add participant: %w", err)
	}

	return participant, nil
}

// GetParticipant retrieves a single participant link, nil if absent
func (r *Repository) GetParticipant(ctx context.Context, eventID, userID uuid.UUID) (*Participant, error) {
	query := `
		SELECT event_id, user_id, added_at
		FROM event_participants
		WHERE event_id = $1 AND user_id = $2
	`

	participant := &Participant{}
	err := r.db.QueryRowContext(ctx, query, eventID, userID).Scan(
		&participant.EventID,
		&participant.UserID,
		&participant.AddedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	return participant, nil
}

// GetParticipants retrieves all participants of an event
func (r *Repository) GetParticipants(ctx context.Context, eventID uuid.UUID) ([]*Participant, error) {
	query := `
		SELECT p.event_id, p.user_id, p.added_at, u.name, u.email
		FROM event_participants p
		JOIN users u ON p.user_id = u.id
		WHERE p.event_id = $1
		ORDER BY u.name
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []*Participant
	for rows.Next() {
		participant := &Participant{}
		if err := rows.Scan(
			&participant.EventID,
			&participant.UserID,
			&participant.AddedAt,
			&participant.Name,
			&participant.Email,
		); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, participant)
	}

	return participants, nil
}

// RemoveParticipant removes a user from an event
func (r *Repository) RemoveParticipant(ctx context.Context, eventID, userID uuid.UUID) error {
	query := `DELETE FROM event_participants WHERE event_id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrParticipantNotFound
	}

	return nil
}
