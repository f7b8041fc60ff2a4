// Package http provides HTTP handlers and middleware for employee sessions.
package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/employees/internal/auth/domain"
	authService "github.com/allisson/employees/internal/auth/service"

	"github.com/allisson/employees/internal/httputil"
)

// AccessTokenMiddleware gates protected routes on a valid bearer access token.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive)
// 2. Verifies it as an access-kind token
// 3. Stores the decoded identity in the request context
// 4. Allows downstream handlers to access it via GetIdentity()
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Token fails signature, expiry or kind verification → 403 Forbidden
//
// A credential that is absent is distinct from one that is present but wrong;
// the status codes reflect that.
func AccessTokenMiddleware(tokenService authService.TokenService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("access gate: missing authorization header")
			httputil.HandleErrorGin(c, authDomain.ErrAccessTokenMissing, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("access gate: malformed authorization header")
			httputil.HandleErrorGin(c, authDomain.ErrAccessTokenMissing, logger)
			c.Abort()
			return
		}

		plainToken := authHeader[len(bearerPrefix):]
		if plainToken == "" {
			logger.Debug("access gate: empty bearer token")
			httputil.HandleErrorGin(c, authDomain.ErrAccessTokenMissing, logger)
			c.Abort()
			return
		}

		identity, err := tokenService.VerifyAccessToken(plainToken)
		if err != nil {
			logger.Debug("access gate: token verification failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithIdentity(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RefreshTokenMiddleware gates refresh-scoped routes on the presence of the
// refresh token cookie. Only presence is checked here; membership in the
// server-side token set and signature verification belong to the session use
// case, because logout must accept tokens that no longer verify.
//
// Error handling:
//   - Missing cookie → 401 Unauthorized
func RefreshTokenMiddleware(cookieName string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		plainToken, err := c.Cookie(cookieName)
		if err != nil || plainToken == "" {
			logger.Debug("refresh gate: missing refresh token cookie")
			httputil.HandleErrorGin(c, authDomain.ErrRefreshTokenMissing, logger)
			c.Abort()
			return
		}

		ctx := WithRefreshToken(c.Request.Context(), plainToken)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
