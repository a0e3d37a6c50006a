package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/notescan/notescan-server/internal/apierrors"
	"github.com/notescan/notescan-server/internal/mocks"
	"github.com/notescan/notescan-server/internal/model"
	"github.com/notescan/notescan-server/internal/testutil"
)

func TestNote_ListNotes_ClampsPagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{name: "defaults", page: 0, pageSize: 0, wantPage: 1, wantPageSize: 10},
		{name: "negative values", page: -3, pageSize: -1, wantPage: 1, wantPageSize: 10},
		{name: "oversized page size", page: 0, pageSize: 1000, wantPage: 1, wantPageSize: 50},
		{name: "in range untouched", page: 2, pageSize: 25, wantPage: 2, wantPageSize: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner := uuid.New()
			noteStore := &mocks.NoteStore{}
			noteStore.On("List", mock.Anything, owner, model.ListNotesParams{
				Page:     tt.wantPage,
				PageSize: tt.wantPageSize,
			}).Return([]model.Note{}, 0, nil)

			s := NewNote(noteStore, &mocks.Storage{}, testutil.MakeNoopLogger())

			_, _, err := s.ListNotes(context.Background(), owner, model.ListNotesParams{Page: tt.page, PageSize: tt.pageSize})
			require.NoError(t, err)
			noteStore.AssertExpectations(t)
		})
	}
}

func TestNote_ListNotes_TrimsSearch(t *testing.T) {
	owner := uuid.New()
	noteStore := &mocks.NoteStore{}
	noteStore.On("List", mock.Anything, owner, model.ListNotesParams{
		Page:     1,
		PageSize: 10,
		Search:   "coffee",
	}).Return([]model.Note{{Title: "Shopping"}}, 1, nil)

	s := NewNote(noteStore, &mocks.Storage{}, testutil.MakeNoopLogger())

	notes, total, err := s.ListNotes(context.Background(), owner, model.ListNotesParams{Search: "  coffee  "})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, notes, 1)
}

func TestNote_CreateNote_TrimsFields(t *testing.T) {
	owner := uuid.New()
	noteStore := &mocks.NoteStore{}
	noteStore.On("Create", mock.Anything, mock.MatchedBy(func(n model.Note) bool {
		return n.Title == "Hi" && n.Content == "Body" && n.OwnerID == owner &&
			!n.CreatedAt.IsZero() && n.CreatedAt.Equal(n.UpdatedAt)
	})).Return(model.Note{Title: "Hi", Content: "Body"}, nil)

	s := NewNote(noteStore, &mocks.Storage{}, testutil.MakeNoopLogger())

	note, err := s.CreateNote(context.Background(), owner, " Hi ", " Body ")
	require.NoError(t, err)
	assert.Equal(t, "Hi", note.Title)
	assert.Equal(t, "Body", note.Content)
	noteStore.AssertExpectations(t)
}

func TestNote_CreateNote_TitleValidation(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{name: "empty", title: ""},
		{name: "whitespace only", title: "   "},
		{name: "too long", title: strings.Repeat("x", 201)},
		{name: "too long multibyte", title: strings.Repeat("é", 201)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewNote(&mocks.NoteStore{}, &mocks.Storage{}, testutil.MakeNoopLogger())

			_, err := s.CreateNote(context.Background(), uuid.New(), tt.title, "content")
			require.Error(t, err)

			apiErr, ok := err.(*apierrors.APIError)
			require.True(t, ok)
			assert.Equal(t, 400, apiErr.HTTPCode)
		})
	}
}

func TestNote_CreateNote_TitleLengthCountsRunes(t *testing.T) {
	// 200 multibyte characters occupy 400 bytes but stay within the bound.
	title := strings.Repeat("é", 200)

	owner := uuid.New()
	noteStore := &mocks.NoteStore{}
	noteStore.On("Create", mock.Anything, mock.MatchedBy(func(n model.Note) bool {
		return n.Title == title
	})).Return(model.Note{Title: title}, nil)

	s := NewNote(noteStore, &mocks.Storage{}, testutil.MakeNoopLogger())

	note, err := s.CreateNote(context.Background(), owner, title, "content")
	require.NoError(t, err)
	assert.Equal(t, title, note.Title)
	noteStore.AssertExpectations(t)
}

func TestNote_CreateNote_TitleValidationIdempotent(t *testing.T) {
	// Trimming then validating twice must agree with doing it once.
	title := "  padded title  "

	first, _, err := validateNoteFields(title, "c")
	require.NoError(t, err)
	second, _, err := validateNoteFields(first, "c")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	boundary := strings.Repeat("x", 200) + " "
	trimmed, _, err := validateNoteFields(boundary, "c")
	require.NoError(t, err)
	again, _, err := validateNoteFields(trimmed, "c")
	require.NoError(t, err)
	assert.Equal(t, trimmed, again)
}

func TestNote_UpdateNote_Validates(t *testing.T) {
	s := NewNote(&mocks.NoteStore{}, &mocks.Storage{}, testutil.MakeNoopLogger())

	_, err := s.UpdateNote(context.Background(), uuid.New(), uuid.New(), "  ", "content")
	require.Error(t, err)
}

func TestNote_UpdateNote_NotFoundPassthrough(t *testing.T) {
	noteStore := &mocks.NoteStore{}
	noteStore.On("Update", mock.Anything, mock.Anything).Return(model.Note{}, model.ErrNotFound)

	s := NewNote(noteStore, &mocks.Storage{}, testutil.MakeNoopLogger())

	_, err := s.UpdateNote(context.Background(), uuid.New(), uuid.New(), "Title", "content")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestNote_DeleteNote_NotFoundPassthrough(t *testing.T) {
	noteStore := &mocks.NoteStore{}
	noteStore.On("GetByID", mock.Anything, mock.Anything, mock.Anything).Return(model.Note{}, model.ErrNotFound)

	storage := &mocks.Storage{}
	s := NewNote(noteStore, storage, testutil.MakeNoopLogger())

	err := s.DeleteNote(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)
	noteStore.AssertNotCalled(t, "Delete")
	storage.AssertNotCalled(t, "Delete")
}

func TestNote_DeleteNote_RemovesAttachment(t *testing.T) {
	owner := uuid.New()
	noteID := uuid.New()
	key := "scans/" + noteID.String() + "/receipt.png"

	noteStore := &mocks.NoteStore{}
	noteStore.On("GetByID", mock.Anything, owner, noteID).
		Return(model.Note{ID: noteID, OwnerID: owner, AttachmentKey: key}, nil)
	noteStore.On("Delete", mock.Anything, owner, noteID).Return(nil)

	storage := &mocks.Storage{}
	storage.On("Delete", mock.Anything, key).Return(nil)

	s := NewNote(noteStore, storage, testutil.MakeNoopLogger())

	require.NoError(t, s.DeleteNote(context.Background(), owner, noteID))
	noteStore.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestNote_DeleteNote_NoAttachmentSkipsStorage(t *testing.T) {
	owner := uuid.New()
	noteID := uuid.New()

	noteStore := &mocks.NoteStore{}
	noteStore.On("GetByID", mock.Anything, owner, noteID).
		Return(model.Note{ID: noteID, OwnerID: owner}, nil)
	noteStore.On("Delete", mock.Anything, owner, noteID).Return(nil)

	storage := &mocks.Storage{}
	s := NewNote(noteStore, storage, testutil.MakeNoopLogger())

	require.NoError(t, s.DeleteNote(context.Background(), owner, noteID))
	storage.AssertNotCalled(t, "Delete")
}

func TestNote_DeleteNote_AttachmentFailureNotFatal(t *testing.T) {
	owner := uuid.New()
	noteID := uuid.New()
	key := "scans/" + noteID.String() + "/receipt.png"

	noteStore := &mocks.NoteStore{}
	noteStore.On("GetByID", mock.Anything, owner, noteID).
		Return(model.Note{ID: noteID, OwnerID: owner, AttachmentKey: key}, nil)
	noteStore.On("Delete", mock.Anything, owner, noteID).Return(nil)

	storage := &mocks.Storage{}
	storage.On("Delete", mock.Anything, key).Return(errors.New("bucket unreachable"))

	s := NewNote(noteStore, storage, testutil.MakeNoopLogger())

	require.NoError(t, s.DeleteNote(context.Background(), owner, noteID))
	storage.AssertExpectations(t)
}

func TestNote_GetNote_NotFoundPassthrough(t *testing.T) {
	noteStore := &mocks.NoteStore{}
	noteStore.On("GetByID", mock.Anything, mock.Anything, mock.Anything).Return(model.Note{}, model.ErrNotFound)

	s := NewNote(noteStore, &mocks.Storage{}, testutil.MakeNoopLogger())

	_, err := s.GetNote(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)
}
