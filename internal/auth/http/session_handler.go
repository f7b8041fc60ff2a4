// Package http provides HTTP handlers and middleware for employee sessions.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/employees/internal/auth/domain"
	"github.com/allisson/employees/internal/auth/http/dto"
	"github.com/allisson/employees/internal/httputil"

	authUseCase "github.com/allisson/employees/internal/auth/usecase"
	employeeDto "github.com/allisson/employees/internal/employee/http/dto"
	customValidation "github.com/allisson/employees/internal/validation"
)

// CookieConfig holds the settings for the refresh token cookie.
type CookieConfig struct {
	Name   string
	Domain string
	Secure bool
}

// SessionHandler handles HTTP requests for the session lifecycle.
// The refresh token travels exclusively in an HTTP-only cookie; response
// bodies only ever carry access tokens and sanitized records.
type SessionHandler struct {
	sessionUseCase        authUseCase.SessionUseCase
	cookie                CookieConfig
	accessTokenExpiration time.Duration
	logger                *slog.Logger
}

// NewSessionHandler creates a new session handler with required dependencies.
func NewSessionHandler(
	sessionUseCase authUseCase.SessionUseCase,
	cookie CookieConfig,
	accessTokenExpiration time.Duration,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		sessionUseCase:        sessionUseCase,
		cookie:                cookie,
		accessTokenExpiration: accessTokenExpiration,
		logger:                logger,
	}
}

// RegisterHandler registers a new employee and opens a session.
// POST /api/v1/register - No authentication required (IP rate limited).
// Returns 201 Created with the sanitized record and sets the refresh cookie.
func (h *SessionHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &authDomain.RegisterInput{
		Name:          req.Name,
		Age:           req.Age,
		StillEmployee: req.StillEmployee,
		Email:         req.Email,
		Password:      req.Password,
	}

	employee, pair, err := h.sessionUseCase.Register(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken, int(pair.RefreshTokenExpiresIn.Seconds()))
	c.JSON(http.StatusCreated, employeeDto.MapEmployeeToResponse(employee))
}

// LoginHandler authenticates an employee and opens a new session.
// POST /api/v1/login - No authentication required (IP rate limited).
// Returns 200 OK with the access token and sets the refresh cookie.
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &authDomain.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}

	pair, err := h.sessionUseCase.Login(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken, int(pair.RefreshTokenExpiresIn.Seconds()))
	c.JSON(http.StatusOK, dto.AccessTokenResponse{
		AccessToken: pair.AccessToken,
		ExpiresIn:   int64(pair.AccessTokenExpiresIn.Seconds()),
	})
}

// RefreshHandler exchanges the refresh cookie for a new access token.
// POST /api/v1/refresh - Requires the refresh cookie (presence enforced by the
// refresh token middleware).
// Returns 200 OK with the new access token.
func (h *SessionHandler) RefreshHandler(c *gin.Context) {
	plainToken, ok := GetRefreshToken(c.Request.Context())
	if !ok {
		// Should never happen if the refresh middleware is in place
		httputil.HandleErrorGin(c, authDomain.ErrRefreshTokenMissing, h.logger)
		return
	}

	accessToken, err := h.sessionUseCase.Refresh(c.Request.Context(), plainToken)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.AccessTokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(h.accessTokenExpiration.Seconds()),
	})
}

// LogoutHandler closes the session held by the refresh cookie.
// POST /api/v1/logout - Requires the refresh cookie (presence enforced by the
// refresh token middleware).
// Returns 204 No Content and clears the cookie. Logout is idempotent: tokens
// that are unknown or already removed still produce 204.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	plainToken, ok := GetRefreshToken(c.Request.Context())
	if !ok {
		// Should never happen if the refresh middleware is in place
		httputil.HandleErrorGin(c, authDomain.ErrRefreshTokenMissing, h.logger)
		return
	}

	if err := h.sessionUseCase.Logout(c.Request.Context(), plainToken); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.setRefreshCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

// setRefreshCookie writes the refresh token cookie. A negative max age clears it.
func (h *SessionHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}
