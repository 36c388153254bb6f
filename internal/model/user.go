package model

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents an account in the system. Accounts are created on first
// OAuth sign-in and are never deleted; only name and role are mutable, and
// only through admin-initiated updates.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// UpdateUserRequest is the payload for an admin-initiated name/role update.
type UpdateUserRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// ValidRole reports whether role is one of the two closed role values.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
