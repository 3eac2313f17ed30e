package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetscribe/meetscribe/errors"
	authdto "github.com/meetscribe/meetscribe/internal/adapter/dto/auth"
	"github.com/meetscribe/meetscribe/internal/usecase/auth"
)

// Auth handles authentication HTTP requests
type Auth struct {
	oauthService *auth.OAuthService
	logger       *zap.Logger
}

// NewAuth creates a new auth handler
func NewAuth(oauthService *auth.OAuthService, logger *zap.Logger) *Auth {
	return &Auth{
		oauthService: oauthService,
		logger:       logger,
	}
}

// GoogleLogin starts the Google OAuth flow
// GET /auth/google/login
func (h *Auth) GoogleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	authURL, err := h.oauthService.GetGoogleAuthURL(ctx)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrOAuthFailed("google", err))
	}

	// Redirect to Google OAuth
	return c.Redirect(http.StatusTemporaryRedirect, authURL.URL)
}

// GoogleCallback handles the OAuth callback from Google
// GET /auth/google/callback
func (h *Auth) GoogleCallback(c echo.Context) error {
	ctx := c.Request().Context()

	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("missing code or state parameter"))
	}

	response, err := h.oauthService.HandleGoogleCallback(ctx, &auth.GoogleCallbackRequest{
		Code:  code,
		State: state,
	})
	if err != nil {
		return HandleError(h.logger, c, errors.ErrOAuthFailed("google", err))
	}

	return HandleSuccess(h.logger, c, response)
}

// RefreshToken refreshes the access token
// POST /auth/refresh
func (h *Auth) RefreshToken(c echo.Context) error {
	ctx := c.Request().Context()

	var req authdto.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if req.RefreshToken == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("missing refresh token"))
	}

	response, err := h.oauthService.RefreshAccessToken(ctx, req.RefreshToken)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidRefreshToken())
	}

	return HandleSuccess(h.logger, c, response)
}

// Logout revokes the session behind a refresh token
// POST /auth/logout
func (h *Auth) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	var req authdto.LogoutRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("missing refresh token"))
	}

	if err := h.oauthService.Logout(ctx, req.RefreshToken); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidRefreshToken())
	}

	return HandleSuccess(h.logger, c, map[string]string{"message": "Logged out successfully"})
}
