package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ingresos_gastos/internal/model"
	"ingresos_gastos/internal/repository"
	"ingresos_gastos/internal/utils"

	"github.com/google/uuid"
)

var (
	ErrMovementNotFound    = errors.New("movimiento no encontrado")
	ErrMissingFields       = errors.New("todos los campos son requeridos")
	ErrInvalidMovementType = errors.New("tipo de movimiento inválido")
	ErrInvalidDate         = errors.New("fecha inválida")
)

// MovementService defines operations for movements. Role checks happen at
// the transport boundary; the service trusts its caller.
type MovementService interface {
	List(ctx context.Context) ([]model.Movement, error)
	Create(ctx context.Context, creatorID string, req model.MovementRequest) (*model.Movement, error)
	Update(ctx context.Context, id string, req model.MovementRequest) (*model.Movement, error)
	Delete(ctx context.Context, id string) error
	ExportCSV(ctx context.Context) (string, error)
}

type movementService struct {
	repo repository.MovementRepository
}

// NewMovementService creates a new MovementService.
func NewMovementService(repo repository.MovementRepository) MovementService {
	return &movementService{repo: repo}
}

// validateRequest checks the four mandatory fields and the type enum, and
// parses the date. A zero amount counts as missing.
func validateRequest(req model.MovementRequest) (time.Time, error) {
	if req.Concept == "" || req.Amount == 0 || req.Type == "" || req.Date == "" {
		return time.Time{}, ErrMissingFields
	}
	if !model.ValidMovementType(req.Type) {
		return time.Time{}, ErrInvalidMovementType
	}
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

// List returns all movements joined with their creators, newest first.
func (s *movementService) List(ctx context.Context) ([]model.Movement, error) {
	movements, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return movements, nil
}

// Create validates and persists a new movement owned by creatorID, then
// returns the joined record.
func (s *movementService) Create(ctx context.Context, creatorID string, req model.MovementRequest) (*model.Movement, error) {
	date, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	movement := &model.Movement{
		ID:      uuid.NewString(),
		Concept: req.Concept,
		Amount:  req.Amount,
		Type:    req.Type,
		Date:    date,
		UserID:  creatorID,
	}
	if err := s.repo.Create(ctx, movement); err != nil {
		return nil, fmt.Errorf("failed to create movement in repo: %w", err)
	}

	created, err := s.repo.FindByID(ctx, movement.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload created movement: %w", err)
	}
	if created == nil {
		return movement, nil
	}
	return created, nil
}

// Update overwrites the four mutable fields of an existing movement.
func (s *movementService) Update(ctx context.Context, id string, req model.MovementRequest) (*model.Movement, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find movement for update: %w", err)
	}
	if existing == nil {
		return nil, ErrMovementNotFound
	}

	date, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	existing.Concept = req.Concept
	existing.Amount = req.Amount
	existing.Type = req.Type
	existing.Date = date

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update movement in repo: %w", err)
	}
	return existing, nil
}

// Delete removes a movement permanently.
func (s *movementService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find movement for deletion: %w", err)
	}
	if existing == nil {
		return ErrMovementNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete movement in repo: %w", err)
	}
	return nil
}

// ExportCSV renders the full movement list as CSV.
func (s *movementService) ExportCSV(ctx context.Context) (string, error) {
	movements, err := s.repo.FindAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch movements for CSV export: %w", err)
	}

	headers := []string{"Concepto", "Monto", "Tipo", "Fecha", "Usuario"}
	rows := make([]map[string]string, 0, len(movements))
	for _, m := range movements {
		userName := ""
		if m.User != nil {
			userName = m.User.Name
		}
		rows = append(rows, map[string]string{
			"Concepto": m.Concept,
			"Monto":    formatAmount(m.Amount),
			"Tipo":     m.Type,
			"Fecha":    utils.FormatDate(m.Date),
			"Usuario":  userName,
		})
	}
	return utils.GenerateCSV(rows, headers), nil
}
