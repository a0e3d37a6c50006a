// Package context carries the authenticated user ID on request contexts.
package context

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// userIDKey is the context key under which the authenticated user ID is
// stored.
const userIDKey contextKey = "user_id"

// Manager sets and retrieves the authenticated user ID on standard request
// contexts. Using a package-private typed key prevents collisions with other
// context values.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserIDToContext returns a child context carrying the user ID.
func (m *Manager) SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext retrieves the user ID from the context. The boolean
// result is false when no ID was set or the stored value is the nil UUID.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}
