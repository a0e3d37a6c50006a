package context

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Roundtrip(t *testing.T) {
	m := NewManager()
	u := uuid.New()

	ctx := m.SetUserIDToContext(context.Background(), u)
	got, ok := m.GetUserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, u, got)
}

func TestManager_MissingUserID(t *testing.T) {
	m := NewManager()

	got, ok := m.GetUserIDFromContext(context.Background())
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, got)
}

func TestManager_NilUserID(t *testing.T) {
	m := NewManager()

	ctx := m.SetUserIDToContext(context.Background(), uuid.Nil)
	_, ok := m.GetUserIDFromContext(ctx)
	assert.False(t, ok)
}
