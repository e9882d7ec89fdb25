package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeelMungra28/BookValley/internal/service"
)

func registerTestUser(t *testing.T, server *Server, email string) map[string]any {
	t.Helper()

	w := doJSON(server, http.MethodPost, "/api/v1/auth/register", "", service.RegisterRequest{
		Email:    email,
		Password: "correct-horse-battery",
		Name:     "Reader",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	result := decodeEnvelope(t, w)
	data, ok := result.Data.(map[string]any)
	require.True(t, ok)
	return data
}

func TestRegister_FirstUserIsAdmin(t *testing.T) {
	server := setupTestServer(t)

	first := registerTestUser(t, server, "first@example.com")
	user, ok := first["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, user["is_admin"])
	assert.NotEmpty(t, first["access_token"])
	assert.NotEmpty(t, first["refresh_token"])

	second := registerTestUser(t, server, "second@example.com")
	user, ok = second["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, user["is_admin"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	server := setupTestServer(t)

	registerTestUser(t, server, "reader@example.com")

	w := doJSON(server, http.MethodPost, "/api/v1/auth/register", "", service.RegisterRequest{
		Email:    "Reader@Example.com",
		Password: "another-password",
		Name:     "Other",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_InvalidBody(t *testing.T) {
	server := setupTestServer(t)

	w := doJSON(server, http.MethodPost, "/api/v1/auth/register", "", service.RegisterRequest{
		Email:    "not-an-email",
		Password: "short",
		Name:     "",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	result := decodeEnvelope(t, w)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestLogin_Success(t *testing.T) {
	server := setupTestServer(t)
	registerTestUser(t, server, "reader@example.com")

	w := doJSON(server, http.MethodPost, "/api/v1/auth/login", "", service.LoginRequest{
		Email:    "reader@example.com",
		Password: "correct-horse-battery",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	result := decodeEnvelope(t, w)
	data, ok := result.Data.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["access_token"])
	assert.Equal(t, "Bearer", data["token_type"])
}

func TestLogin_WrongPassword(t *testing.T) {
	server := setupTestServer(t)
	registerTestUser(t, server, "reader@example.com")

	w := doJSON(server, http.MethodPost, "/api/v1/auth/login", "", service.LoginRequest{
		Email:    "reader@example.com",
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefresh_RotatesToken(t *testing.T) {
	server := setupTestServer(t)
	data := registerTestUser(t, server, "reader@example.com")

	refreshToken, ok := data["refresh_token"].(string)
	require.True(t, ok)

	w := doJSON(server, http.MethodPost, "/api/v1/auth/refresh", "", service.RefreshRequest{
		RefreshToken: refreshToken,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	result := decodeEnvelope(t, w)
	fresh, ok := result.Data.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, fresh["refresh_token"])
	assert.NotEqual(t, refreshToken, fresh["refresh_token"])

	// The rotated-out token is no longer accepted.
	w = doJSON(server, http.MethodPost, "/api/v1/auth/refresh", "", service.RefreshRequest{
		RefreshToken: refreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_InvalidatesRefreshToken(t *testing.T) {
	server := setupTestServer(t)
	data := registerTestUser(t, server, "reader@example.com")

	refreshToken, ok := data["refresh_token"].(string)
	require.True(t, ok)

	w := doJSON(server, http.MethodPost, "/api/v1/auth/logout", "", map[string]string{
		"refresh_token": refreshToken,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(server, http.MethodPost, "/api/v1/auth/refresh", "", service.RefreshRequest{
		RefreshToken: refreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetCurrentUser(t *testing.T) {
	server := setupTestServer(t)
	data := registerTestUser(t, server, "reader@example.com")

	accessToken, ok := data["access_token"].(string)
	require.True(t, ok)

	w := doJSON(server, http.MethodGet, "/api/v1/users/me", accessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	result := decodeEnvelope(t, w)
	user, ok := result.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "reader@example.com", user["email"])
	assert.NotContains(t, user, "password_hash")
}
