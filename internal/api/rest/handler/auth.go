package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/notescan/notescan-server/internal/apierrors"
	"github.com/notescan/notescan-server/internal/logger"
	"github.com/notescan/notescan-server/internal/model"
	"github.com/notescan/notescan-server/internal/service"
)

// AuthService defines business operations for accounts.
type AuthService interface {
	Register(ctx context.Context, params service.RegisterParams) (model.PublicUser, error)
	Login(ctx context.Context, email, password string) (string, model.PublicUser, error)
}

// Auth handles account endpoints.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{authService: authService, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string           `json:"token"`
	User  model.PublicUser `json:"user"`
}

// Register creates a new account.
func (h *Auth) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, apierrors.NewErrValidation("request body is malformed"))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login verifies credentials and returns a token plus public user info.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, apierrors.NewErrValidation("request body is malformed"))
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}
