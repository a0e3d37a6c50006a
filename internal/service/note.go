package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/notescan/notescan-server/internal/apierrors"
	"github.com/notescan/notescan-server/internal/logger"
	"github.com/notescan/notescan-server/internal/model"
)

type Note struct {
	noteStore model.NoteStore
	storage   model.Storage
	logger    *logger.Logger
}

func NewNote(noteStore model.NoteStore, storage model.Storage, logger *logger.Logger) *Note {
	return &Note{
		noteStore: noteStore,
		storage:   storage,
		logger:    logger,
	}
}

// ListNotes returns one page of the owner's notes plus the total count over
// the (optionally search-filtered) owner-scoped set. Page and page size are
// clamped: page defaults to 1, page size to 10, capped at 50.
func (s *Note) ListNotes(ctx context.Context, ownerID uuid.UUID, params model.ListNotesParams) ([]model.Note, int, error) {
	params = params.Clamped()
	params.Search = strings.TrimSpace(params.Search)

	notes, total, err := s.noteStore.List(ctx, ownerID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, total, nil
}

// GetNote returns the note when it exists and belongs to the owner.
func (s *Note) GetNote(ctx context.Context, ownerID, noteID uuid.UUID) (model.Note, error) {
	note, err := s.noteStore.GetByID(ctx, ownerID, noteID)
	if err != nil {
		return model.Note{}, fmt.Errorf("failed to get note by id: %w", err)
	}

	return note, nil
}

// CreateNote validates the title and content and persists a new note owned
// by the caller.
func (s *Note) CreateNote(ctx context.Context, ownerID uuid.UUID, title, content string) (model.Note, error) {
	title, content, err := validateNoteFields(title, content)
	if err != nil {
		return model.Note{}, err
	}

	now := time.Now()
	note := model.Note{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	savedNote, err := s.noteStore.Create(ctx, note)
	if err != nil {
		s.logger.Error("Note service: failed to create note",
			"owner_id", ownerID,
			"error", err.Error())
		return model.Note{}, fmt.Errorf("failed to create note: %w", err)
	}

	return savedNote, nil
}

// UpdateNote re-validates the fields and updates title, content and the
// updated timestamp. The created timestamp is left untouched.
func (s *Note) UpdateNote(ctx context.Context, ownerID, noteID uuid.UUID, title, content string) (model.Note, error) {
	title, content, err := validateNoteFields(title, content)
	if err != nil {
		return model.Note{}, err
	}

	note := model.Note{
		ID:        noteID,
		OwnerID:   ownerID,
		Title:     title,
		Content:   content,
		UpdatedAt: time.Now(),
	}

	savedNote, err := s.noteStore.Update(ctx, note)
	if err != nil {
		return model.Note{}, fmt.Errorf("failed to update note: %w", err)
	}

	return savedNote, nil
}

// DeleteNote removes the note permanently. Scanned notes also carry an
// archived image; it is removed after the row so the attachment never
// outlives its note. A failed attachment removal is logged, not surfaced:
// the note is already gone.
func (s *Note) DeleteNote(ctx context.Context, ownerID, noteID uuid.UUID) error {
	note, err := s.noteStore.GetByID(ctx, ownerID, noteID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if err := s.noteStore.Delete(ctx, ownerID, noteID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if note.AttachmentKey != "" {
		if err := s.storage.Delete(ctx, note.AttachmentKey); err != nil {
			s.logger.Error("Note service: failed to delete attachment",
				"note_id", noteID,
				"error", err.Error())
		}
	}

	return nil
}

func validateNoteFields(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" {
		return "", "", apierrors.NewErrValidation("title is required")
	}
	if utf8.RuneCountInString(title) > model.MaxTitleLength {
		return "", "", apierrors.NewErrValidation(fmt.Sprintf("title must be under %d characters", model.MaxTitleLength))
	}

	return title, content, nil
}
