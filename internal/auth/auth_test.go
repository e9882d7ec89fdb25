package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeelMungra28/BookValley/internal/domain"
)

const testKeyHex = "0000000000000000000000000000000000000000000000000000000000000001"

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	ok, err := VerifyPassword("not-a-hash", "password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	user := &domain.User{
		ID:      "user_abc",
		Email:   "jane@example.com",
		IsAdmin: true,
	}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user_abc", claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "user_abc", claims.Subject)
}

func TestTokenService_ExpiredTokenRejected(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, -time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(&domain.User{ID: "user_abc", Email: "jane@example.com"})
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestTokenService_TamperedTokenRejected(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(&domain.User{ID: "user_abc", Email: "jane@example.com"})
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "AAAA"
	_, err = svc.VerifyAccessToken(tampered)
	assert.Error(t, err)
}

func TestTokenService_BadKey(t *testing.T) {
	_, err := NewTokenService("deadbeef", 15*time.Minute, time.Hour)
	assert.Error(t, err)
}

func TestRefreshToken_HashIsStable(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, 15*time.Minute, time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, HashRefreshToken(token), HashRefreshToken(token))

	other, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, HashRefreshToken(token), HashRefreshToken(other))
}
