package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/notescan/notescan-server/internal/apierrors"
	"github.com/notescan/notescan-server/internal/logger"
	"github.com/notescan/notescan-server/internal/model"
)

// minPasswordLength is the minimum accepted password size at registration.
const minPasswordLength = 8

type Auth struct {
	userStore    model.UserStore
	tokenService *TokenService
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	tokenService *TokenService,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenService: tokenService,
		logger:       logger,
	}
}

// RegisterParams contains parameters to create an account.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// Register validates the registration input, enforces email uniqueness and
// stores a new user with a freshly computed password hash.
func (a *Auth) Register(ctx context.Context, params RegisterParams) (model.PublicUser, error) {
	name := strings.TrimSpace(params.Name)
	email := normalizeEmail(params.Email)

	if name == "" || email == "" || params.Password == "" {
		return model.PublicUser{}, apierrors.NewErrValidation("name, email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.PublicUser{}, apierrors.NewErrValidation("email is malformed")
	}
	if len(params.Password) < minPasswordLength {
		return model.PublicUser{}, apierrors.NewErrValidation(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	existingUser, err := a.userStore.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.PublicUser{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if existingUser.ID != uuid.Nil {
		a.logger.Info("Auth service: email already registered",
			"email", email)
		return model.PublicUser{}, apierrors.NewErrEmailIsTaken(email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	savedUser, err := a.userStore.Create(ctx, user)
	if err != nil {
		// The pre-check above races with concurrent registrations; the
		// unique constraint is the authoritative arbiter.
		if errors.Is(err, model.ErrConflict) {
			a.logger.Info("Auth service: email already registered",
				"email", email)
			return model.PublicUser{}, apierrors.NewErrEmailIsTaken(email)
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.PublicUser{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"user_id", savedUser.ID)

	return savedUser.Public(), nil
}

// Login verifies the credentials and mints a token for the user. Unknown
// emails and wrong passwords yield the identical error so the response does
// not reveal which check failed.
func (a *Auth) Login(ctx context.Context, email, password string) (string, model.PublicUser, error) {
	email = normalizeEmail(email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return "", model.PublicUser{}, apierrors.NewErrInvalidCredentials()
	}
	if err != nil {
		return "", model.PublicUser{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", model.PublicUser{}, apierrors.NewErrInvalidCredentials()
	}

	token, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		return "", model.PublicUser{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID)

	return token, user.Public(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
