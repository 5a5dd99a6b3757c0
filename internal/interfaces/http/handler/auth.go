package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/receipts/backend/internal/infrastructure/auth"
	"github.com/receipts/backend/internal/infrastructure/logger"
	"github.com/receipts/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// SessionManager opens and closes login sessions
type SessionManager interface {
	Login(ctx context.Context, username, password string) (*auth.Session, error)
	Logout(ctx context.Context, token string) error
}

// CookieConfig holds the attributes of the session cookie
type CookieConfig struct {
	Name     string
	Domain   string
	Path     string
	Secure   bool
	SameSite http.SameSite
	MaxAge   time.Duration
}

// AuthHandler handles login and logout
type AuthHandler struct {
	BaseHandler
	sessions SessionManager
	cookie   CookieConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(sessions SessionManager, cookie CookieConfig) *AuthHandler {
	if cookie.Path == "" {
		cookie.Path = "/"
	}
	return &AuthHandler{
		sessions: sessions,
		cookie:   cookie,
	}
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Checks the credentials and sets the session cookie
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequest	true	"Credentials"
//	@Success		200		{object}	dto.Response{data=dto.LoginResponse}
//	@Failure		401		{object}	dto.Response
//	@Failure		429		{object}	dto.Response
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	session, err := h.sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			h.Unauthorized(c, "Invalid username or password")
			return
		}
		logger.GetGinLogger(c).Error("Login failed", zap.Error(err))
		h.InternalError(c, "Login failed")
		return
	}

	h.setCookie(c, session.Token, int(h.cookie.MaxAge.Seconds()))
	h.Success(c, dto.LoginResponse{Username: session.Username, ExpiresAt: session.ExpiresAt})
}

// Logout godoc
//
//	@Summary		Log out
//	@Description	Revokes the session and expires the cookie
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	dto.Response
//	@Router			/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookie.Name); err == nil && token != "" {
		if err := h.sessions.Logout(c.Request.Context(), token); err != nil {
			logger.GetGinLogger(c).Error("Logout failed", zap.Error(err))
			h.InternalError(c, "Logout failed")
			return
		}
	}
	h.setCookie(c, "", -1)
	h.Success(c, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(h.cookie.Name, value, maxAge, h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
}

// ParseSameSite converts a configured same_site value
func ParseSameSite(value string) http.SameSite {
	switch value {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}
