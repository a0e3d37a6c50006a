package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/notescan/notescan-server/internal/apierrors"
	"github.com/notescan/notescan-server/internal/model"
)

// handleError writes the external representation of an error. Typed API
// errors keep their status and message; a repository ErrNotFound maps to
// 404; everything else becomes an opaque 500.
func handleError(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.HTTPCode, gin.H{"error": apiErr.Message})
		return
	}

	if errors.Is(err, model.ErrNotFound) {
		notFound := apierrors.NewErrNoteNotFound()
		c.JSON(notFound.HTTPCode, gin.H{"error": notFound.Message})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
