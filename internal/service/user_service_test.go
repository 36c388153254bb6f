package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ingresos_gastos/internal/model"

	"github.com/stretchr/testify/assert"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	users []model.User
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	return f.users, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	for i := range f.users {
		if f.users[i].ID == user.ID {
			f.users[i] = *user
			return nil
		}
	}
	return errors.New("user not found for update")
}

func existingUser() model.User {
	return model.User{
		ID:        "u1",
		Name:      "Ana",
		Email:     "ana@example.com",
		Role:      model.RoleUser,
		CreatedAt: time.Now(),
	}
}

func TestUserService_Update(t *testing.T) {
	repo := &fakeUserRepo{users: []model.User{existingUser()}}
	svc := NewUserService(repo)

	user, err := svc.Update(context.Background(), "u1", model.UpdateUserRequest{
		Name: "Ana María",
		Role: model.RoleAdmin,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Ana María", user.Name)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.Equal(t, "ana@example.com", user.Email) // email untouched
}

func TestUserService_Update_MissingFields(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{users: []model.User{existingUser()}})

	_, err := svc.Update(context.Background(), "u1", model.UpdateUserRequest{Name: "Ana"})
	assert.ErrorIs(t, err, ErrMissingUserFields)

	_, err = svc.Update(context.Background(), "u1", model.UpdateUserRequest{Role: model.RoleAdmin})
	assert.ErrorIs(t, err, ErrMissingUserFields)
}

func TestUserService_Update_InvalidRole(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{users: []model.User{existingUser()}})

	_, err := svc.Update(context.Background(), "u1", model.UpdateUserRequest{
		Name: "Ana",
		Role: "SUPERADMIN",
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{})

	_, err := svc.Update(context.Background(), "missing", model.UpdateUserRequest{
		Name: "Ana",
		Role: model.RoleUser,
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_List(t *testing.T) {
	repo := &fakeUserRepo{users: []model.User{existingUser()}}
	svc := NewUserService(repo)

	users, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, users, 1)
}
