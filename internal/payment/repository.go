package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles payment data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new payment repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new payment into the database
func (r *Repository) Create(ctx context.Context, payerID uuid.UUID, eventID *uuid.UUID, req *CreatePaymentRequest) (*Payment, error) {
	query := `
		INSERT INTO payments (id, payer_id, amount, description, date, event_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, payer_id, amount, description, date, event_id, created_at
	`

	payment := &Payment{}
	err := r.db.QueryRowContext(ctx, query,
		uuid.New(),
		payerID,
		req.Amount,
		req.Description,
		req.Date,
		eventID,
	).Scan(
		&payment.ID,
		&payment.PayerID,
		&payment.Amount,
		&payment.Description,
		&payment.Date,
		&payment.EventID,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	return payment, nil
}

// GetByID retrieves a payment by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Payment, error) {
	query := `
		SELECT p.id, p.payer_id, p.amount, p.description, p.date, p.event_id, p.created_at, u.name
		FROM payments p
		JOIN users u ON p.payer_id = u.id
		WHERE p.id = $1
	`

	payment := &Payment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&payment.ID,
		&payment.PayerID,
		&payment.Amount,
		&payment.Description,
		&payment.Date,
		&payment.EventID,
		&payment.CreatedAt,
		&payment.PayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return payment, nil
}

// ListByEventID retrieves payments for an event with pagination
func (r *Repository) ListByEventID(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]*Payment, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM payments WHERE event_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, eventID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	query := `
		SELECT p.id, p.payer_id, p.amount, p.description, p.date, p.event_id, p.created_at, u.name
		FROM payments p
		JOIN users u ON p.payer_id = u.id
		WHERE p.event_id = $1
		ORDER BY p.date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, eventID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		payment := &Payment{}
		if err := rows.Scan(
			&payment.ID,
			&payment.PayerID,
			&payment.Amount,
			&payment.Description,
			&payment.Date,
			&payment.EventID,
			&payment.CreatedAt,
			&payment.PayerName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, total, nil
}

// ListAll retrieves all payments, optionally scoped to one event.
// A nil eventID means every payment (global balance scope).
func (r *Repository) ListAll(ctx context.Context, eventID *uuid.UUID) ([]*Payment, error) {
	query := `
		SELECT id, payer_id, amount, description, date, event_id, created_at
		FROM payments
	`
	var args []interface{}
	if eventID != nil {
		query += ` WHERE event_id = $1`
		args = append(args, *eventID)
	}
	query += ` ORDER BY date`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		payment := &Payment{}
		if err := rows.Scan(
			&payment.ID,
			&payment.PayerID,
			&payment.Amount,
			&payment.Description,
			&payment.Date,
			&payment.EventID,
			&payment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, nil
}

// Delete removes a payment
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}
