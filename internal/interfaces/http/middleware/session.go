package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/receipts/backend/internal/infrastructure/auth"
	"github.com/receipts/backend/internal/infrastructure/logger"
	"github.com/receipts/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Session context keys
const (
	SessionUsernameKey = "session_username"
	SessionIDKey       = "session_id"
)

// Authenticator validates a session token
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// SessionAuth rejects requests without a live session cookie
func SessionAuth(authenticator Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			abortUnauthorized(c, "Missing session cookie")
			return
		}

		claims, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			log := logger.GetGinLogger(c)
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				abortUnauthorized(c, "Session expired")
			case errors.Is(err, auth.ErrSessionRevoked):
				abortUnauthorized(c, "Session revoked")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidClaims),
				errors.Is(err, auth.ErrTokenNotYetValid), errors.Is(err, auth.ErrMissingSessionID):
				log.Debug("Session token rejected", zap.Error(err))
				abortUnauthorized(c, "Invalid session")
			default:
				log.Error("Session lookup failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.NewErrorResponseWithRequestID(
					dto.ErrCodeUnavailable,
					"Session store unavailable",
					GetRequestID(c),
				))
			}
			return
		}

		c.Set(SessionUsernameKey, claims.Username)
		c.Set(SessionIDKey, claims.SessionID())
		c.Next()
	}
}

// GetSessionUsername returns the username of the authenticated session
func GetSessionUsername(c *gin.Context) string {
	return c.GetString(SessionUsernameKey)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeUnauthorized,
		message,
		GetRequestID(c),
	))
}
