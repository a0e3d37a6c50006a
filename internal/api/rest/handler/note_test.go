package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	restcontext "github.com/notescan/notescan-server/internal/api/rest/context"
	"github.com/notescan/notescan-server/internal/model"
	"github.com/notescan/notescan-server/internal/testutil"
)

type mockNoteService struct {
	mock.Mock
}

func (m *mockNoteService) ListNotes(ctx context.Context, ownerID uuid.UUID, params model.ListNotesParams) ([]model.Note, int, error) {
	args := m.Called(ctx, ownerID, params)
	var notes []model.Note
	if args.Get(0) != nil {
		notes = args.Get(0).([]model.Note)
	}
	return notes, args.Int(1), args.Error(2)
}

func (m *mockNoteService) GetNote(ctx context.Context, ownerID, noteID uuid.UUID) (model.Note, error) {
	args := m.Called(ctx, ownerID, noteID)
	return args.Get(0).(model.Note), args.Error(1)
}

func (m *mockNoteService) CreateNote(ctx context.Context, ownerID uuid.UUID, title, content string) (model.Note, error) {
	args := m.Called(ctx, ownerID, title, content)
	return args.Get(0).(model.Note), args.Error(1)
}

func (m *mockNoteService) UpdateNote(ctx context.Context, ownerID, noteID uuid.UUID, title, content string) (model.Note, error) {
	args := m.Called(ctx, ownerID, noteID, title, content)
	return args.Get(0).(model.Note), args.Error(1)
}

func (m *mockNoteService) DeleteNote(ctx context.Context, ownerID, noteID uuid.UUID) error {
	args := m.Called(ctx, ownerID, noteID)
	return args.Error(0)
}

// newNoteRouter wires the handler behind a middleware that injects userID
// into the request context, mirroring what the authenticate middleware does.
func newNoteRouter(svc NoteService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	contextManager := restcontext.NewManager()
	h := NewNote(svc, contextManager, testutil.MakeNoopLogger())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			ctx := contextManager.SetUserIDToContext(c.Request.Context(), userID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	})
	r.GET("/notes", h.List)
	r.GET("/notes/:id", h.Get)
	r.POST("/notes", h.Create)
	r.PUT("/notes/:id", h.Update)
	r.DELETE("/notes/:id", h.Delete)
	return r
}

func TestNote_List(t *testing.T) {
	ownerID := uuid.New()

	t.Run("returns envelope with effective paging values", func(t *testing.T) {
		notes := []model.Note{{ID: uuid.New(), OwnerID: ownerID, Title: "First"}}
		svc := new(mockNoteService)
		svc.On("ListNotes", mock.Anything, ownerID, model.ListNotesParams{
			Page:     2,
			PageSize: 5,
			Search:   "milk",
		}).Return(notes, 11, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/notes?page=2&pageSize=5&search=milk", nil)
		newNoteRouter(svc, ownerID).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got listNotesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 2, got.Page)
		assert.Equal(t, 5, got.PageSize)
		assert.Equal(t, 11, got.TotalCount)
		assert.Len(t, got.Data, 1)
	})

	t.Run("defaults applied when query is absent", func(t *testing.T) {
		svc := new(mockNoteService)
		svc.On("ListNotes", mock.Anything, ownerID, model.ListNotesParams{}).
			Return([]model.Note{}, 0, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/notes", nil)
		newNoteRouter(svc, ownerID).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got listNotesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 1, got.Page)
		assert.Equal(t, model.DefaultPageSize, got.PageSize)
		assert.NotNil(t, got.Data)
	})

	t.Run("missing user id is unauthorized", func(t *testing.T) {
		svc := new(mockNoteService)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/notes", nil)
		newNoteRouter(svc, uuid.Nil).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "ListNotes")
	})
}

func TestNote_Get(t *testing.T) {
	ownerID := uuid.New()

	t.Run("success", func(t *testing.T) {
		note := model.Note{ID: uuid.New(), OwnerID: ownerID, Title: "Shopping"}
		svc := new(mockNoteService)
		svc.On("GetNote", mock.Anything, ownerID, note.ID).Return(note, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/notes/"+note.ID.String(), nil)
		newNoteRouter(svc, ownerID).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got model.Note
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, note.ID, got.ID)
		assert.Equal(t, "Shopping", got.Title)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := new(mockNoteService)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/notes/not-a-uuid", nil)
		newNoteRouter(svc, ownerID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "GetNote")
	})

	t.Run("unknown note", func(t *testing.T) {
		noteID := uuid.New()
		svc := new(mockNoteService)
		svc.On("GetNote", mock.Anything, ownerID, noteID).
			Return(model.Note{}, model.ErrNotFound)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/notes/"+noteID.String(), nil)
		newNoteRouter(svc, ownerID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestNote_Create(t *testing.T) {
	ownerID := uuid.New()

	t.Run("success", func(t *testing.T) {
		note := model.Note{ID: uuid.New(), OwnerID: ownerID, Title: "Plan", Content: "Body"}
		svc := new(mockNoteService)
		svc.On("CreateNote", mock.Anything, ownerID, "Plan", "Body").Return(note, nil)

		body, _ := json.Marshal(noteRequest{Title: "Plan", Content: "Body"})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/notes", bytes.NewReader(body))
		newNoteRouter(svc, ownerID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := new(mockNoteService)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/notes", bytes.NewReader([]byte("{")))
		newNoteRouter(svc, ownerID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "CreateNote")
	})
}

func TestNote_Update(t *testing.T) {
	ownerID := uuid.New()
	noteID := uuid.New()

	t.Run("success", func(t *testing.T) {
		note := model.Note{ID: noteID, OwnerID: ownerID, Title: "New", Content: "Text"}
		svc := new(mockNoteService)
		svc.On("UpdateNote", mock.Anything, ownerID, noteID, "New", "Text").Return(note, nil)

		body, _ := json.Marshal(noteRequest{Title: "New", Content: "Text"})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/notes/"+noteID.String(), bytes.NewReader(body))
		newNoteRouter(svc, ownerID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown note", func(t *testing.T) {
		svc := new(mockNoteService)
		svc.On("UpdateNote", mock.Anything, ownerID, noteID, "New", "Text").
			Return(model.Note{}, model.ErrNotFound)

		body, _ := json.Marshal(noteRequest{Title: "New", Content: "Text"})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/notes/"+noteID.String(), bytes.NewReader(body))
		newNoteRouter(svc, ownerID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestNote_Delete(t *testing.T) {
	ownerID := uuid.New()
	noteID := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc := new(mockNoteService)
		svc.On("DeleteNote", mock.Anything, ownerID, noteID).Return(nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/notes/"+noteID.String(), nil)
		newNoteRouter(svc, ownerID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.Bytes())
	})

	t.Run("unknown note", func(t *testing.T) {
		svc := new(mockNoteService)
		svc.On("DeleteNote", mock.Anything, ownerID, noteID).Return(model.ErrNotFound)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/notes/"+noteID.String(), nil)
		newNoteRouter(svc, ownerID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
