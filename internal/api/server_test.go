package api

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeelMungra28/BookValley/internal/auth"
	"github.com/JeelMungra28/BookValley/internal/config"
	"github.com/JeelMungra28/BookValley/internal/domain"
	"github.com/JeelMungra28/BookValley/internal/http/response"
	"github.com/JeelMungra28/BookValley/internal/id"
	"github.com/JeelMungra28/BookValley/internal/service"
	"github.com/JeelMungra28/BookValley/internal/store"
)

// Use a fixed test key (32 bytes as hex = 64 hex chars).
const testServerKeyHex = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// setupTestServer creates a test server with all dependencies.
func setupTestServer(t *testing.T) *Server {
	t.Helper()
	return setupTestServerWithConfig(t, &config.Config{
		Auth: config.AuthConfig{
			TokenKeyHex:          testServerKeyHex,
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 7 * 24 * time.Hour,
			LoginRatePerSecond:   1000,
			LoginBurst:           1000,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	})
}

func setupTestServerWithConfig(t *testing.T, cfg *config.Config) *Server {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "bookvalley-api-test-*")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := store.New(filepath.Join(tmpDir, "test.db"), logger)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	})

	tokenService, err := auth.NewTokenService(cfg.Auth.TokenKeyHex, cfg.Auth.AccessTokenDuration, cfg.Auth.RefreshTokenDuration)
	require.NoError(t, err)

	sessionService := service.NewSessionService(s, tokenService, logger)
	authService := service.NewAuthService(s, sessionService, logger)
	cartService := service.NewCartService(s, logger)
	wishlistService := service.NewWishlistService(s, logger)
	searchService := service.NewSearchService(s, logger)
	catalogService := service.NewCatalogService(s, logger)

	return NewServer(cfg, s, tokenService, authService, cartService, wishlistService, searchService, catalogService, logger)
}

// createTestUser creates a user directly in the store and returns an access token.
func createTestUser(t *testing.T, server *Server, email string, isAdmin bool) (*domain.User, string) {
	t.Helper()

	userID, err := id.Generate("user")
	require.NoError(t, err)

	user := &domain.User{
		ID:        userID,
		Email:     email,
		Name:      "Test User",
		IsAdmin:   isAdmin,
		CreatedAt: time.Now(),
	}
	require.NoError(t, server.store.CreateUser(context.Background(), user))

	token, err := server.tokenService.GenerateAccessToken(user)
	require.NoError(t, err)

	return user, token
}

// createTestBook seeds a book directly in the store.
func createTestBook(t *testing.T, server *Server, title string, price float64) *domain.Book {
	t.Helper()

	bookID, err := id.Generate("book")
	require.NoError(t, err)

	book := &domain.Book{
		ID:        bookID,
		Title:     title,
		Author:    "Test Author",
		Price:     price,
		Available: true,
		Stock:     5,
		CreatedAt: time.Now(),
	}
	require.NoError(t, server.store.CreateBook(context.Background(), book))

	return book
}

// doJSON issues a request with an optional JSON body and bearer token.
func doJSON(server *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()

	var result response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func TestHealthCheck(t *testing.T) {
	server := setupTestServer(t)

	w := doJSON(server, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	result := decodeEnvelope(t, w)
	assert.True(t, result.Success)

	data, ok := result.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "healthy", data["status"])
}

func TestProtectedRoutes_RequireAuth(t *testing.T) {
	server := setupTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/users/me"},
		{http.MethodGet, "/api/v1/cart"},
		{http.MethodGet, "/api/v1/wishlist"},
	}

	for _, p := range paths {
		w := doJSON(server, p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
	}
}

func TestRequireAuth_RejectsGarbageToken(t *testing.T) {
	server := setupTestServer(t)

	w := doJSON(server, http.MethodGet, "/api/v1/users/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutes_ForbiddenForRegularUser(t *testing.T) {
	server := setupTestServer(t)
	_, token := createTestUser(t, server, "user@example.com", false)

	w := doJSON(server, http.MethodPost, "/api/v1/books", token, service.CreateBookRequest{
		Title:  "Nope",
		Author: "Nobody",
		Price:  9.99,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(server, http.MethodPost, "/api/v1/categories", token, service.CreateCategoryRequest{Name: "Nope"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogin_RateLimited(t *testing.T) {
	server := setupTestServerWithConfig(t, &config.Config{
		Auth: config.AuthConfig{
			TokenKeyHex:          testServerKeyHex,
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 7 * 24 * time.Hour,
			LoginRatePerSecond:   0.1,
			LoginBurst:           2,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	})

	body := service.LoginRequest{Email: "nobody@example.com", Password: "wrong-password"}

	for range 2 {
		w := doJSON(server, http.MethodPost, "/api/v1/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := doJSON(server, http.MethodPost, "/api/v1/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
