package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars"

func newTestTokenService() *TokenService {
	return NewTokenService(testSecret, time.Hour, "receipts-test")
}

func TestTokenService_GenerateAndValidate(t *testing.T) {
	svc := newTestTokenService()
	now := time.Now()

	token, expiresAt, err := svc.Generate("session-key", "admin", now)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, now.Add(time.Hour), expiresAt, time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "session-key", claims.SessionID())
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Subject)
	assert.Greater(t, claims.GetRemainingTTL(), 59*time.Minute)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := newTestTokenService()

	token, _, err := svc.Generate("session-key", "admin", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenService_InvalidToken(t *testing.T) {
	svc := newTestTokenService()

	_, err := svc.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_DifferentSecret(t *testing.T) {
	other := NewTokenService("another-secret-key-at-least-32-ch", time.Hour, "receipts-test")
	token, _, err := other.Generate("session-key", "admin", time.Now())
	require.NoError(t, err)

	_, err = newTestTokenService().Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_DifferentIssuer(t *testing.T) {
	other := NewTokenService(testSecret, time.Hour, "someone-else")
	token, _, err := other.Generate("session-key", "admin", time.Now())
	require.NoError(t, err)

	_, err = newTestTokenService().Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{ID: "session-key"}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestTokenService().Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_MissingSessionID(t *testing.T) {
	svc := newTestTokenService()

	token, _, err := svc.Generate("", "admin", time.Now())
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrMissingSessionID)
}

func TestClaims_ExpiryHelpers(t *testing.T) {
	var c Claims
	assert.True(t, c.GetExpiresAtTime().IsZero())
	assert.Equal(t, time.Duration(0), c.GetRemainingTTL())

	c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	assert.Equal(t, time.Duration(0), c.GetRemainingTTL())
}
