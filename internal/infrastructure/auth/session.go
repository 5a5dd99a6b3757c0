package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const sessionKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Credentials is the single configured login
type Credentials struct {
	Username     string
	PasswordHash string // bcrypt
}

// Session is an issued login session
type Session struct {
	Key       string
	Token     string
	Username  string
	ExpiresAt time.Time
}

// SessionService logs users in and out and authenticates session tokens
type SessionService struct {
	credentials Credentials
	tokens      *TokenService
	store       SessionStore
	keyLength   int
	logger      *zap.Logger
	now         func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(credentials Credentials, tokens *TokenService, store SessionStore, keyLength int, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		credentials: credentials,
		tokens:      tokens,
		store:       store,
		keyLength:   keyLength,
		logger:      logger,
		now:         time.Now,
	}
}

// Login verifies the credentials and opens a new session
func (s *SessionService) Login(ctx context.Context, username, password string) (*Session, error) {
	if !s.checkCredentials(username, password) {
		s.logger.Warn("Login rejected", zap.String("username", username))
		return nil, ErrBadCredentials
	}

	key, err := GenerateSessionKey(s.keyLength)
	if err != nil {
		return nil, err
	}
	token, expiresAt, err := s.tokens.Generate(key, username, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	if err := s.store.Save(ctx, key, username, s.tokens.Expiration()); err != nil {
		return nil, err
	}

	s.logger.Info("Session opened", zap.String("username", username), zap.Time("expires_at", expiresAt))
	return &Session{Key: key, Token: token, Username: username, ExpiresAt: expiresAt}, nil
}

// Authenticate returns the claims of a token whose session is still live
func (s *SessionService) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	username, err := s.store.Lookup(ctx, claims.SessionID())
	if err != nil {
		return nil, err
	}
	if username != claims.Username {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// Logout revokes the session behind token. Invalid or expired tokens are ignored.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil
	}
	if err := s.store.Revoke(ctx, claims.SessionID()); err != nil {
		return err
	}
	s.logger.Info("Session closed", zap.String("username", claims.Username))
	return nil
}

func (s *SessionService) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.credentials.Username)) == 1
	err := bcrypt.CompareHashAndPassword([]byte(s.credentials.PasswordHash), []byte(password))
	if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		s.logger.Error("Configured password hash is unusable", zap.Error(err))
	}
	return userOK && err == nil
}

// GenerateSessionKey returns n random alphanumeric characters
func GenerateSessionKey(n int) (string, error) {
	max := big.NewInt(int64(len(sessionKeyAlphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate session key: %w", err)
		}
		out[i] = sessionKeyAlphabet[idx.Int64()]
	}
	return string(out), nil
}

// HashPassword returns the bcrypt hash of password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
