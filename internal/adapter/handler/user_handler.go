package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetscribe/meetscribe/errors"
	"github.com/meetscribe/meetscribe/internal/domain/repositories"
)

// User handles user profile HTTP requests
type User struct {
	userRepo repositories.UserRepository
	logger   *zap.Logger
}

// NewUser creates a new user handler
func NewUser(userRepo repositories.UserRepository, logger *zap.Logger) *User {
	return &User{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Me returns the authenticated user's synced profile
// GET /api/me
func (h *User) Me(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, user)
}

// List returns all users, newest first
// GET /api/users
func (h *User) List(c echo.Context) error {
	if _, err := requireUser(c); err != nil {
		return HandleError(h.logger, c, err)
	}

	users, err := h.userRepo.List(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("list users", err))
	}

	return HandleSuccess(h.logger, c, users)
}
