package auth

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestSessionService(t *testing.T) (*SessionService, *InMemorySessionStore) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	store := NewInMemorySessionStore()
	svc := NewSessionService(
		Credentials{Username: "admin", PasswordHash: string(hash)},
		newTestTokenService(),
		store,
		64,
		nil,
	)
	return svc, store
}

func TestSessionService_Login(t *testing.T) {
	svc, store := newTestSessionService(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9]{64}$`), session.Key)
	assert.Equal(t, "admin", session.Username)

	username, err := store.Lookup(ctx, session.Key)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)

	claims, err := svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Key, claims.SessionID())
}

func TestSessionService_LoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.Login(ctx, "root", "s3cret")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestSessionService_LoginWithUnusableHash(t *testing.T) {
	svc := NewSessionService(Credentials{Username: "admin", PasswordHash: "plain"}, newTestTokenService(), NewInMemorySessionStore(), 64, nil)

	_, err := svc.Login(context.Background(), "admin", "plain")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestSessionService_Logout(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.Token))

	_, err = svc.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, ErrSessionRevoked)

	assert.NoError(t, svc.Logout(ctx, "garbage"))
}

func TestSessionService_AuthenticateRejectsForeignToken(t *testing.T) {
	svc, _ := newTestSessionService(t)

	_, err := svc.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateSessionKey(t *testing.T) {
	a, err := GenerateSessionKey(64)
	require.NoError(t, err)
	b, err := GenerateSessionKey(64)
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("pw")))
}
