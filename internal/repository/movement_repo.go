package repository

import (
	"context"
	"errors"
	"fmt"

	"ingresos_gastos/internal/model"

	"github.com/jackc/pgx/v5"
)

// MovementRepository defines operations for movement data.
type MovementRepository interface {
	FindAll(ctx context.Context) ([]model.Movement, error)
	FindByID(ctx context.Context, id string) (*model.Movement, error)
	Create(ctx context.Context, m *model.Movement) error
	Update(ctx context.Context, m *model.Movement) error
	Delete(ctx context.Context, id string) error
}

type movementRepository struct {
	db Querier
}

// NewMovementRepository creates a new MovementRepository.
func NewMovementRepository(db Querier) MovementRepository {
	return &movementRepository{db: db}
}

const movementColumns = `m.id, m.concept, m.amount, m.type, m.date, m.user_id, u.id, u.name, u.email`

func scanMovement(row pgx.Row) (*model.Movement, error) {
	m := &model.Movement{User: &model.MovementUser{}}
	err := row.Scan(
		&m.ID, &m.Concept, &m.Amount, &m.Type, &m.Date, &m.UserID,
		&m.User.ID, &m.User.Name, &m.User.Email,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// FindAll retrieves every movement joined with its creator, newest date
// first. The result set is unbounded; movement volume is assumed small.
func (r *movementRepository) FindAll(ctx context.Context) ([]model.Movement, error) {
	sql := fmt.Sprintf(`SELECT %s FROM movements m JOIN users u ON m.user_id = u.id ORDER BY m.date DESC`, movementColumns)

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements: %w", err)
	}
	defer rows.Close()

	movements := []model.Movement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		movements = append(movements, *m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movement rows: %w", err)
	}
	return movements, nil
}

// FindByID retrieves one movement joined with its creator.
func (r *movementRepository) FindByID(ctx context.Context, id string) (*model.Movement, error) {
	sql := fmt.Sprintf(`SELECT %s FROM movements m JOIN users u ON m.user_id = u.id WHERE m.id = $1`, movementColumns)

	m, err := scanMovement(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // not found, service layer decides what that means
		}
		return nil, fmt.Errorf("failed to find movement by ID: %w", err)
	}
	return m, nil
}

// Create inserts a new movement.
func (r *movementRepository) Create(ctx context.Context, m *model.Movement) error {
	sql := `INSERT INTO movements (id, concept, amount, type, date, user_id)
            VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, sql, m.ID, m.Concept, m.Amount, m.Type, m.Date, m.UserID)
	if err != nil {
		return fmt.Errorf("failed to create movement: %w", err)
	}
	return nil
}

// Update overwrites the four mutable fields of an existing movement.
func (r *movementRepository) Update(ctx context.Context, m *model.Movement) error {
	sql := `UPDATE movements SET concept = $1, amount = $2, type = $3, date = $4 WHERE id = $5`
	cmdTag, err := r.db.Exec(ctx, sql, m.Concept, m.Amount, m.Type, m.Date, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update movement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("movement not found for update")
	}
	return nil
}

// Delete removes a movement permanently.
func (r *movementRepository) Delete(ctx context.Context, id string) error {
	sql := `DELETE FROM movements WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete movement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("movement not found for deletion")
	}
	return nil
}
