package model

import "time"

const (
	MovementTypeIncome  = "INCOME"
	MovementTypeExpense = "EXPENSE"
)

// MovementUser is the denormalized creator included with each movement.
type MovementUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Movement is a single income or expense record. Amount is always stored as
// a positive magnitude; the sign is implied by Type.
type Movement struct {
	ID      string        `json:"id"`
	Concept string        `json:"concept"`
	Amount  float64       `json:"amount"`
	Type    string        `json:"type"`
	Date    time.Time     `json:"date"`
	UserID  string        `json:"userId"`
	User    *MovementUser `json:"user,omitempty"`
}

// MovementRequest carries the four mutable fields, used both for creation
// and for the full-overwrite update.
type MovementRequest struct {
	Concept string  `json:"concept"`
	Amount  float64 `json:"amount"`
	Type    string  `json:"type"`
	Date    string  `json:"date"`
}

// ValidMovementType reports whether t is one of the two enumerated types.
func ValidMovementType(t string) bool {
	return t == MovementTypeIncome || t == MovementTypeExpense
}
