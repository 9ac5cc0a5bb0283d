package main

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T) (*AuthService, *MemStorage) {
	t.Helper()
	store := NewMemStorage()
	store.CreateUser("admin", "admin123")
	return NewAuthService(store, []byte("test-secret")), store
}

func TestLoginVerifyRoundTrip(t *testing.T) {
	auth, store := newTestAuth(t)

	token, user, err := auth.Login("admin", "admin123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "admin", user.Username)

	claims, err := auth.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)

	stored, ok := store.GetUserByUsername("admin")
	require.True(t, ok)
	assert.Equal(t, stored.ID, claims.ID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	auth, _ := newTestAuth(t)

	_, _, err := auth.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login("nobody", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// comparison is case-sensitive
	_, _, err = auth.Login("admin", "Admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginBcryptStoredSecret(t *testing.T) {
	store := NewMemStorage()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	store.CreateUser("ops", string(hash))
	auth := NewAuthService(store, []byte("test-secret"))

	_, _, err = auth.Login("ops", "s3cret")
	assert.NoError(t, err)

	_, _, err = auth.Login("ops", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyExpiredToken(t *testing.T) {
	auth, store := newTestAuth(t)
	user, _ := store.GetUserByUsername("admin")

	claims := Claims{
		ID:       user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = auth.Verify(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	auth, _ := newTestAuth(t)

	_, err := auth.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = auth.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	auth, _ := newTestAuth(t)

	other := NewAuthService(NewMemStorage(), []byte("other-secret"))
	other.store.CreateUser("admin", "admin123")
	token, _, err := other.Login("admin", "admin123")
	require.NoError(t, err)

	_, err = auth.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
