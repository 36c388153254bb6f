package repository

import (
	"context"
	"errors"
	"fmt"

	"ingresos_gastos/internal/model"

	"github.com/jackc/pgx/v5"
)

// SessionRepository defines operations for persisted login sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	FindByToken(ctx context.Context, token string) (*model.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type sessionRepository struct {
	db Querier
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db Querier) SessionRepository {
	return &sessionRepository{db: db}
}

// Create persists a new session.
func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	sql := `INSERT INTO sessions (token, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.Exec(ctx, sql, session.Token, session.UserID, session.ExpiresAt, session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindByToken retrieves a session by its token.
func (r *sessionRepository) FindByToken(ctx context.Context, token string) (*model.Session, error) {
	session := &model.Session{}
	sql := `SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = $1`
	err := r.db.QueryRow(ctx, sql, token).Scan(&session.Token, &session.UserID, &session.ExpiresAt, &session.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // not found
		}
		return nil, fmt.Errorf("failed to find session by token: %w", err)
	}
	return session, nil
}

// Delete removes a session. Deleting an already-removed session is not an
// error; logout is idempotent.
func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	sql := `DELETE FROM sessions WHERE token = $1`
	if _, err := r.db.Exec(ctx, sql, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes every session past its expiry and reports how many
// rows were swept.
func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	sql := `DELETE FROM sessions WHERE expires_at <= NOW()`
	cmdTag, err := r.db.Exec(ctx, sql)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
