// Package auth issues and validates the bearer tokens operators present to
// the mutating camp routes and the operations routes.
package auth

import (
	"context"
	"time"
)

// TokenService issues and validates operator tokens.
type TokenService interface {
	// GenerateToken creates a signed token for subject.
	// Returns ErrAuthDisabled when no secret is configured.
	GenerateToken(ctx context.Context, subject string) (string, error)

	// ValidateToken checks the signature and lifetime of tokenString and
	// returns its claims.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the validated contents of an operator token.
type Claims struct {
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
