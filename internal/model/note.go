package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Pagination bounds for note listings.
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// MaxTitleLength is the upper bound on a trimmed note title.
const MaxTitleLength = 200

// NoteStore defines persistence operations for notes. Every operation is
// scoped to an owner: a note owned by someone else behaves exactly like a
// note that does not exist.
type NoteStore interface {
	Create(ctx context.Context, note Note) (Note, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (Note, error)
	List(ctx context.Context, ownerID uuid.UUID, params ListNotesParams) ([]Note, int, error)
	Update(ctx context.Context, note Note) (Note, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	SetAttachmentKey(ctx context.Context, ownerID, id uuid.UUID, key string) error
}

// Note represents a stored note entity. AttachmentKey points at the
// archived original image for scanned notes and is empty otherwise.
type Note struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"-"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	AttachmentKey string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ListNotesParams carries normalized listing parameters. Page and PageSize
// are expected to be clamped by the service before reaching the store.
type ListNotesParams struct {
	Page     int
	PageSize int
	Search   string
}

// Offset returns the row offset for the current page.
func (p ListNotesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Clamped returns a copy with page and page size forced into their valid
// ranges: page defaults to 1, page size to DefaultPageSize, capped at
// MaxPageSize.
func (p ListNotesParams) Clamped() ListNotesParams {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}
