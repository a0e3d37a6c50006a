package model

import "github.com/google/uuid"

// TokenManager mints and validates identity tokens. There is no refresh or
// revocation path: expiry is the only lifecycle end.
type TokenManager interface {
	GenerateToken(userID uuid.UUID) (string, error)
	ParseToken(token string) (uuid.UUID, error)
}
