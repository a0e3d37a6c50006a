package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/notescan/notescan-server/internal/model"
)

type NoteStore struct {
	mock.Mock
}

func (m *NoteStore) Create(ctx context.Context, note model.Note) (model.Note, error) {
	args := m.Called(ctx, note)
	return args.Get(0).(model.Note), args.Error(1)
}

func (m *NoteStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (model.Note, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Get(0).(model.Note), args.Error(1)
}

func (m *NoteStore) List(ctx context.Context, ownerID uuid.UUID, params model.ListNotesParams) ([]model.Note, int, error) {
	args := m.Called(ctx, ownerID, params)
	var notes []model.Note
	if args.Get(0) != nil {
		notes = args.Get(0).([]model.Note)
	}
	return notes, args.Int(1), args.Error(2)
}

func (m *NoteStore) Update(ctx context.Context, note model.Note) (model.Note, error) {
	args := m.Called(ctx, note)
	return args.Get(0).(model.Note), args.Error(1)
}

func (m *NoteStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *NoteStore) SetAttachmentKey(ctx context.Context, ownerID, id uuid.UUID, key string) error {
	args := m.Called(ctx, ownerID, id, key)
	return args.Error(0)
}
