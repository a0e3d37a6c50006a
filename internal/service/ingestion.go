package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/notescan/notescan-server/internal/apierrors"
	"github.com/notescan/notescan-server/internal/logger"
	"github.com/notescan/notescan-server/internal/model"
)

// MaxUploadSize bounds the accepted image payload. Uploads are buffered
// fully in memory so the OCR call can replay the same bytes across retries;
// this cap bounds that buffer.
const MaxUploadSize = 10 << 20 // 10 MiB

// allowedImageTypes is the content type whitelist for uploads, compared
// case-insensitively with any media type parameters stripped.
var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
	"image/bmp":  {},
}

// scannedTitleDateFormat renders the derived title of a persisted scan,
// e.g. "Scanned Note - August 29, 2026".
const scannedTitleDateFormat = "January 2, 2006"

// UploadParams describes an inbound image upload. File is the single-read
// upload stream; Size and ContentType come from the multipart header.
type UploadParams struct {
	OwnerID     uuid.UUID
	Filename    string
	ContentType string
	Size        int64
	File        io.Reader
}

// Ingestion validates uploaded images, extracts their text through the
// external OCR collaborator and, in persist mode, turns the result into a
// note with the original image archived as an attachment.
type Ingestion struct {
	notes     *Note
	noteStore model.NoteStore
	extractor model.TextExtractor
	storage   model.Storage
	logger    *logger.Logger
}

func NewIngestion(
	notes *Note,
	noteStore model.NoteStore,
	extractor model.TextExtractor,
	storage model.Storage,
	logger *logger.Logger,
) *Ingestion {
	return &Ingestion{
		notes:     notes,
		noteStore: noteStore,
		extractor: extractor,
		storage:   storage,
		logger:    logger,
	}
}

// ScanToNote runs the pipeline in persist mode: extract text and create a
// note owned by the caller, then archive the original image. Archival
// failures are logged and do not fail the request; the note is the source
// of truth.
func (s *Ingestion) ScanToNote(ctx context.Context, params UploadParams) (model.Note, error) {
	data, err := s.bufferUpload(params)
	if err != nil {
		return model.Note{}, err
	}

	text, err := s.extractor.ExtractText(ctx, params.Filename, data)
	if err != nil {
		return model.Note{}, err
	}

	title := "Scanned Note - " + time.Now().Format(scannedTitleDateFormat)
	note, err := s.notes.CreateNote(ctx, params.OwnerID, title, text)
	if err != nil {
		return model.Note{}, fmt.Errorf("failed to create note from scan: %w", err)
	}

	key := attachmentKey(note.ID, params.Filename)
	if err := s.storage.Upload(ctx, key, params.ContentType, data); err != nil {
		s.logger.Error("Ingestion service: failed to archive scan image",
			"note_id", note.ID,
			"error", err.Error())
		return note, nil
	}
	if err := s.noteStore.SetAttachmentKey(ctx, params.OwnerID, note.ID, key); err != nil {
		s.logger.Error("Ingestion service: failed to record attachment key",
			"note_id", note.ID,
			"error", err.Error())
		return note, nil
	}
	note.AttachmentKey = key

	return note, nil
}

// ScanToText runs the pipeline in preview mode: extract and return the text
// without persisting anything.
func (s *Ingestion) ScanToText(ctx context.Context, params UploadParams) (string, error) {
	data, err := s.bufferUpload(params)
	if err != nil {
		return "", err
	}

	return s.extractor.ExtractText(ctx, params.Filename, data)
}

// GetAttachment streams the archived original image of the owner's note.
// Notes without an attachment are indistinguishable from missing ones.
func (s *Ingestion) GetAttachment(ctx context.Context, ownerID, noteID uuid.UUID) (io.ReadCloser, string, error) {
	note, err := s.noteStore.GetByID(ctx, ownerID, noteID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get note by id: %w", err)
	}
	if note.AttachmentKey == "" {
		return nil, "", model.ErrNotFound
	}

	reader, err := s.storage.Download(ctx, note.AttachmentKey)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download attachment: %w", err)
	}

	return reader, filepath.Base(note.AttachmentKey), nil
}

// bufferUpload validates the upload and reads it fully into memory. The
// upload stream can only be consumed once; retries inside the extractor
// operate over the returned buffer.
func (s *Ingestion) bufferUpload(params UploadParams) ([]byte, error) {
	if params.File == nil || params.Size == 0 {
		return nil, apierrors.NewErrValidation("image file is required")
	}
	if params.Size > MaxUploadSize {
		return nil, apierrors.NewErrValidation("image must not exceed 10 MiB")
	}
	if !isAllowedImageType(params.ContentType) {
		return nil, apierrors.NewErrValidation("file must be a JPEG, PNG, GIF, WebP or BMP image")
	}

	data, err := io.ReadAll(io.LimitReader(params.File, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, apierrors.NewErrValidation("image file is empty")
	}
	if len(data) > MaxUploadSize {
		return nil, apierrors.NewErrValidation("image must not exceed 10 MiB")
	}

	return data, nil
}

func isAllowedImageType(contentType string) bool {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if mediaType, _, found := strings.Cut(contentType, ";"); found {
		contentType = strings.TrimSpace(mediaType)
	}
	_, ok := allowedImageTypes[contentType]
	return ok
}

func attachmentKey(noteID uuid.UUID, filename string) string {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "scan"
	}
	return fmt.Sprintf("scans/%s/%s", noteID, name)
}
