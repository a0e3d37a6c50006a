package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/notescan/notescan-server/internal/apierrors"
	"github.com/notescan/notescan-server/internal/logger"
	"github.com/notescan/notescan-server/internal/model"
	"github.com/notescan/notescan-server/internal/service"
)

// IngestionService defines operations of the image-to-text pipeline.
type IngestionService interface {
	ScanToNote(ctx context.Context, params service.UploadParams) (model.Note, error)
	ScanToText(ctx context.Context, params service.UploadParams) (string, error)
	GetAttachment(ctx context.Context, ownerID, noteID uuid.UUID) (io.ReadCloser, string, error)
}

// Ingestion handles image upload endpoints.
type Ingestion struct {
	ingestionService IngestionService
	contextManager   model.ContextManager
	logger           *logger.Logger
}

// NewIngestion creates a new Ingestion handler.
func NewIngestion(ingestionService IngestionService, contextManager model.ContextManager, logger *logger.Logger) *Ingestion {
	return &Ingestion{
		ingestionService: ingestionService,
		contextManager:   contextManager,
		logger:           logger,
	}
}

type scanResponse struct {
	Text string `json:"text"`
}

// Upload extracts text from the uploaded image and persists it as a new note.
func (h *Ingestion) Upload(c *gin.Context) {
	params, closeFile, err := h.uploadParams(c)
	if err != nil {
		handleError(c, err)
		return
	}
	defer closeFile()

	note, err := h.ingestionService.ScanToNote(c.Request.Context(), params)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, note)
}

// Scan extracts text from the uploaded image without persisting anything.
func (h *Ingestion) Scan(c *gin.Context) {
	params, closeFile, err := h.uploadParams(c)
	if err != nil {
		handleError(c, err)
		return
	}
	defer closeFile()

	text, err := h.ingestionService.ScanToText(c.Request.Context(), params)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, scanResponse{Text: text})
}

// Attachment streams the archived original image of a scanned note.
func (h *Ingestion) Attachment(c *gin.Context) {
	userID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		handleError(c, apierrors.NewErrInvalidAuthorizationToken())
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, apierrors.NewErrValidation("note id is malformed"))
		return
	}

	reader, filename, err := h.ingestionService.GetAttachment(c.Request.Context(), userID, noteID)
	if err != nil {
		handleError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		h.logger.Error("Ingestion handler: failed to stream attachment",
			"note_id", noteID,
			"error", err.Error())
	}
}

func (h *Ingestion) uploadParams(c *gin.Context) (service.UploadParams, func() error, error) {
	userID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		return service.UploadParams{}, nil, apierrors.NewErrInvalidAuthorizationToken()
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return service.UploadParams{}, nil, apierrors.NewErrValidation("image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return service.UploadParams{}, nil, fmt.Errorf("failed to open upload: %w", err)
	}

	params := service.UploadParams{
		OwnerID:     userID,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		File:        file,
	}
	return params, file.Close, nil
}
