package expense

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles expense data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new expense into the database
func (r *Repository) Create(ctx context.Context, eventID, paidBy uuid.UUID, req *CreateExpenseRequest, percentages map[uuid.UUID]float64) (*Expense, error) {
	percentageJSON, err := marshalPercentages(percentages)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO expenses (id, event_id, description, amount, paid_by, date, split_type, split_percentage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, event_id, description, amount, paid_by, date, split_type, split_percentage, created_at
	`

	return r.scanExpense(r.db.QueryRowContext(ctx, query,
		uuid.New(),
		eventID,
		req.Description,
		req.Amount,
		paidBy,
		req.Date,
		req.SplitType,
		percentageJSON,
	))
}

// GetByID retrieves an expense by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Expense, error) {
	query := `
		SELECT e.id, e.event_id, e.description, e.amount, e.paid_by, e.date, e.split_type, e.split_percentage, e.created_at, u.name
		FROM expenses e
		JOIN users u ON e.paid_by = u.id
		WHERE e.id = $1
	`

	expense := &Expense{}
	var percentageJSON []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.EventID,
		&expense.Description,
		&expense.Amount,
		&expense.PaidBy,
		&expense.Date,
		&expense.SplitType,
		&percentageJSON,
		&expense.CreatedAt,
		&expense.PayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := unmarshalPercentages(percentageJSON, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// ListByEventID retrieves expenses for an event with pagination
func (r *Repository) ListByEventID(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE event_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, eventID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.event_id, e.description, e.amount, e.paid_by, e.date, e.split_type, e.split_percentage, e.created_at, u.name
		FROM expenses e
		JOIN users u ON e.paid_by = u.id
		WHERE e.event_id = $1
		ORDER BY e.date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, eventID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses, err := scanExpenseRows(rows, true)
	if err != nil {
		return nil, 0, err
	}

	return expenses, total, nil
}

// ListAll retrieves all expenses, optionally scoped to one event.
// A nil eventID means every expense (global balance scope).
func (r *Repository) ListAll(ctx context.Context, eventID *uuid.UUID) ([]*Expense, error) {
	query := `
		SELECT id, event_id, description, amount, paid_by, date, split_type, split_percentage, created_at
		FROM expenses
	`
	var args []interface{}
	if eventID != nil {
		query += ` WHERE event_id = $1`
		args = append(args, *eventID)
	}
	query += ` ORDER BY date`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenseRows(rows, false)
}

// Update rewrites an expense record
func (r *Repository) Update(ctx context.Context, expense *Expense) (*Expense, error) {
	percentageJSON, err := marshalPercentages(expense.SplitPercentage)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE expenses
		SET description = $2, amount = $3, paid_by = $4, date = $5, split_type = $6, split_percentage = $7
		WHERE id = $1
		RETURNING id, event_id, description, amount, paid_by, date, split_type, split_percentage, created_at
	`

	return r.scanExpense(r.db.QueryRowContext(ctx, query,
		expense.ID,
		expense.Description,
		expense.Amount,
		expense.PaidBy,
		expense.Date,
		expense.SplitType,
		percentageJSON,
	))
}

// Delete removes an expense
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

func (r *Repository) scanExpense(row *sql.Row) (*Expense, error) {
	expense := &Expense{}
	var percentageJSON []byte
	err := row.Scan(
		&expense.ID,
		&expense.EventID,
		&expense.Description,
		&expense.Amount,
		&expense.PaidBy,
		&expense.Date,
		&expense.SplitType,
		&percentageJSON,
		&expense.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}

	if err := unmarshalPercentages(percentageJSON, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

func scanExpenseRows(rows *sql.Rows, withPayerName bool) ([]*Expense, error) {
	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		var percentageJSON []byte

		dest := []interface{}{
			&expense.ID,
			&expense.EventID,
			&expense.Description,
			&expense.Amount,
			&expense.PaidBy,
			&expense.Date,
			&expense.SplitType,
			&percentageJSON,
			&expense.CreatedAt,
		}
		if withPayerName {
			dest = append(dest, &expense.PayerName)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if err := unmarshalPercentages(percentageJSON, expense); err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	return expenses, nil
}

func marshalPercentages(percentages map[uuid.UUID]float64) ([]byte, error) {
	if percentages == nil {
		return nil, nil
	}
	data, err := json.Marshal(percentages)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal split percentages: %w", err)
	}
	return data, nil
}

func unmarshalPercentages(data []byte, expense *Expense) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &expense.SplitPercentage); err != nil {
		return fmt.Errorf("failed to unmarshal split percentages: %w", err)
	}
	return nil
}
