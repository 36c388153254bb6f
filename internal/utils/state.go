package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// StateClaims are the claims carried by the OAuth state parameter.
type StateClaims struct {
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}

// StateUtil signs and verifies the OAuth state parameter, so the callback
// can reject requests that did not originate from our own login redirect.
// Session tokens themselves are opaque and are not handled here.
type StateUtil struct {
	secretKey string
	ttl       time.Duration
}

// NewStateUtil creates a new StateUtil.
func NewStateUtil(secretKey string, ttl time.Duration) *StateUtil {
	return &StateUtil{secretKey: secretKey, ttl: ttl}
}

// Generate produces a signed, short-lived state value with a random nonce.
func (su *StateUtil) Generate() (string, error) {
	claims := &StateClaims{
		Nonce: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(su.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(su.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign state: %w", err)
	}
	return signed, nil
}

// Validate checks the signature and expiry of a state value.
func (su *StateUtil) Validate(state string) error {
	token, err := jwt.ParseWithClaims(state, &StateClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(su.secretKey), nil
	})
	if err != nil {
		return fmt.Errorf("failed to parse state: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("invalid state")
	}
	return nil
}
