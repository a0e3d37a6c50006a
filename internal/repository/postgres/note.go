package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/notescan/notescan-server/internal/model"
)

var _ model.NoteStore = (*NoteRepository)(nil)

type NoteRepository struct {
	db *Connection
}

func NewNoteRepository(db *Connection) *NoteRepository {
	return &NoteRepository{
		db: db,
	}
}

func (r *NoteRepository) Create(ctx context.Context, note model.Note) (model.Note, error) {
	query := `INSERT INTO notes (id, owner_id, title, content, attachment_key, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, owner_id, title, content, attachment_key, created_at, updated_at`

	var savedNote model.Note
	err := r.db.QueryRow(ctx, query,
		note.ID, note.OwnerID, note.Title, note.Content, note.AttachmentKey,
		note.CreatedAt, note.UpdatedAt,
	).Scan(
		&savedNote.ID, &savedNote.OwnerID, &savedNote.Title, &savedNote.Content,
		&savedNote.AttachmentKey, &savedNote.CreatedAt, &savedNote.UpdatedAt,
	)
	if err != nil {
		return model.Note{}, fmt.Errorf("failed to create note: %w", err)
	}

	return savedNote, nil
}

func (r *NoteRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (model.Note, error) {
	query := `SELECT id, owner_id, title, content, attachment_key, created_at, updated_at
			  FROM notes WHERE id = $1 AND owner_id = $2`

	var note model.Note
	err := r.db.QueryRow(ctx, query, id, ownerID).Scan(
		&note.ID, &note.OwnerID, &note.Title, &note.Content,
		&note.AttachmentKey, &note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Note{}, model.ErrNotFound
		}
		return model.Note{}, fmt.Errorf("failed to get note by id: %w", err)
	}

	return note, nil
}

// List returns one page of the owner's notes ordered by last update, newest
// first, with the note ID as a deterministic tie-breaker, plus the total
// count over the filtered set. A non-empty search term matches title or
// content case-insensitively.
func (r *NoteRepository) List(ctx context.Context, ownerID uuid.UUID, params model.ListNotesParams) ([]model.Note, int, error) {
	where := `WHERE owner_id = $1`
	args := []any{ownerID}
	if params.Search != "" {
		where += ` AND (title ILIKE $2 OR content ILIKE $2)`
		args = append(args, "%"+params.Search+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM notes ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notes: %w", err)
	}

	pageQuery := fmt.Sprintf(`SELECT id, owner_id, title, content, attachment_key, created_at, updated_at
		FROM notes %s
		ORDER BY updated_at DESC, id ASC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.db.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var note model.Note
		err := rows.Scan(
			&note.ID, &note.OwnerID, &note.Title, &note.Content,
			&note.AttachmentKey, &note.CreatedAt, &note.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read notes: %w", err)
	}

	return notes, total, nil
}

func (r *NoteRepository) Update(ctx context.Context, note model.Note) (model.Note, error) {
	query := `UPDATE notes SET title = $1, content = $2, updated_at = $3
			  WHERE id = $4 AND owner_id = $5
			  RETURNING id, owner_id, title, content, attachment_key, created_at, updated_at`

	var savedNote model.Note
	err := r.db.QueryRow(ctx, query,
		note.Title, note.Content, note.UpdatedAt, note.ID, note.OwnerID,
	).Scan(
		&savedNote.ID, &savedNote.OwnerID, &savedNote.Title, &savedNote.Content,
		&savedNote.AttachmentKey, &savedNote.CreatedAt, &savedNote.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Note{}, model.ErrNotFound
		}
		return model.Note{}, fmt.Errorf("failed to update note: %w", err)
	}

	return savedNote, nil
}

func (r *NoteRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	const query = `DELETE FROM notes WHERE id = $1 AND owner_id = $2`
	cmd, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *NoteRepository) SetAttachmentKey(ctx context.Context, ownerID, id uuid.UUID, key string) error {
	const query = `UPDATE notes SET attachment_key = $1 WHERE id = $2 AND owner_id = $3`
	cmd, err := r.db.Exec(ctx, query, key, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to set attachment key: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
