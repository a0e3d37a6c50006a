package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/notescan/notescan-server/internal/apierrors"
	"github.com/notescan/notescan-server/internal/logger"
	"github.com/notescan/notescan-server/internal/model"
)

// NoteService defines business operations for note management.
type NoteService interface {
	ListNotes(ctx context.Context, ownerID uuid.UUID, params model.ListNotesParams) ([]model.Note, int, error)
	GetNote(ctx context.Context, ownerID, noteID uuid.UUID) (model.Note, error)
	CreateNote(ctx context.Context, ownerID uuid.UUID, title, content string) (model.Note, error)
	UpdateNote(ctx context.Context, ownerID, noteID uuid.UUID, title, content string) (model.Note, error)
	DeleteNote(ctx context.Context, ownerID, noteID uuid.UUID) error
}

// Note handles note CRUD endpoints.
type Note struct {
	noteService    NoteService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewNote creates a new Note handler.
func NewNote(noteService NoteService, contextManager model.ContextManager, logger *logger.Logger) *Note {
	return &Note{
		noteService:    noteService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type listNotesResponse struct {
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalCount int          `json:"totalCount"`
	Data       []model.Note `json:"data"`
}

// List returns one page of the caller's notes.
func (h *Note) List(c *gin.Context) {
	userID, err := h.extractUserID(c)
	if err != nil {
		handleError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	params := model.ListNotesParams{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	}

	notes, total, err := h.noteService.ListNotes(c.Request.Context(), userID, params)
	if err != nil {
		handleError(c, err)
		return
	}

	// Echo back the effective values the service listed with.
	params = params.Clamped()

	if notes == nil {
		notes = []model.Note{}
	}
	c.JSON(http.StatusOK, listNotesResponse{
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: total,
		Data:       notes,
	})
}

// Get returns one of the caller's notes.
func (h *Note) Get(c *gin.Context) {
	userID, err := h.extractUserID(c)
	if err != nil {
		handleError(c, err)
		return
	}

	noteID, err := parseNoteID(c)
	if err != nil {
		handleError(c, err)
		return
	}

	note, err := h.noteService.GetNote(c.Request.Context(), userID, noteID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

// Create persists a new note owned by the caller.
func (h *Note) Create(c *gin.Context) {
	userID, err := h.extractUserID(c)
	if err != nil {
		handleError(c, err)
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, apierrors.NewErrValidation("request body is malformed"))
		return
	}

	note, err := h.noteService.CreateNote(c.Request.Context(), userID, req.Title, req.Content)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, note)
}

// Update rewrites a note's title and content.
func (h *Note) Update(c *gin.Context) {
	userID, err := h.extractUserID(c)
	if err != nil {
		handleError(c, err)
		return
	}

	noteID, err := parseNoteID(c)
	if err != nil {
		handleError(c, err)
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, apierrors.NewErrValidation("request body is malformed"))
		return
	}

	note, err := h.noteService.UpdateNote(c.Request.Context(), userID, noteID, req.Title, req.Content)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

// Delete removes a note permanently.
func (h *Note) Delete(c *gin.Context) {
	userID, err := h.extractUserID(c)
	if err != nil {
		handleError(c, err)
		return
	}

	noteID, err := parseNoteID(c)
	if err != nil {
		handleError(c, err)
		return
	}

	if err := h.noteService.DeleteNote(c.Request.Context(), userID, noteID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Note) extractUserID(c *gin.Context) (uuid.UUID, error) {
	userID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		return uuid.Nil, apierrors.NewErrInvalidAuthorizationToken()
	}
	return userID, nil
}

func parseNoteID(c *gin.Context) (uuid.UUID, error) {
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apierrors.NewErrValidation("note id is malformed")
	}
	return noteID, nil
}
