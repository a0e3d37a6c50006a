package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/notescan/notescan-server/internal/logger"
	"github.com/notescan/notescan-server/internal/model"
)

// TokenService issues identity tokens and resolves user IDs from presented
// ones. Tokens are never revoked server-side; expiry is the only lifecycle
// end, so there is no token persistence.
type TokenService struct {
	manager model.TokenManager
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, logger: logger}
}

// Issue mints a token whose subject is the given user ID.
func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := s.manager.GenerateToken(userID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// GetUserID validates a token and returns its subject user ID.
func (s *TokenService) GetUserID(ctx context.Context, token string) (uuid.UUID, error) {
	return s.manager.ParseToken(token)
}
