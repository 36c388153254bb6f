package service

import (
	"context"
	"errors"
	"fmt"

	"ingresos_gastos/internal/model"
	"ingresos_gastos/internal/repository"
)

var (
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrMissingUserFields = errors.New("nombre y rol son requeridos")
	ErrInvalidRole       = errors.New("rol inválido")
)

// UserService defines admin-facing user management operations.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// List returns all users, newest first.
func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update changes a user's name and role.
func (s *userService) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	if req.Name == "" || req.Role == "" {
		return nil, ErrMissingUserFields
	}
	if !model.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.Name = req.Name
	user.Role = req.Role
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user in repo: %w", err)
	}
	return user, nil
}
