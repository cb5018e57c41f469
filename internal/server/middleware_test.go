package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparkmatch/sparkmatch/internal/auth"
	"github.com/sparkmatch/sparkmatch/internal/config"
	"github.com/sparkmatch/sparkmatch/internal/server"
)

func testRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", server.JWTAuth(cfg), func(c *gin.Context) {
		id, _ := server.ActorID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	return router
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	cfg := config.New()
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.JWTExpiry = time.Hour

	token, err := auth.GenerateToken("user-9", "niner", cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	testRouter(cfg).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-9")
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	cfg := config.New()
	cfg.Auth.JWTSecret = "test-secret"

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	testRouter(cfg).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthenticated")
}

func TestJWTAuthRejectsMalformedHeader(t *testing.T) {
	cfg := config.New()
	cfg.Auth.JWTSecret = "test-secret"

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	testRouter(cfg).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsBadSignature(t *testing.T) {
	cfg := config.New()
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.JWTExpiry = time.Hour

	otherCfg := config.New()
	otherCfg.Auth.JWTSecret = "other-secret"
	otherCfg.Auth.JWTExpiry = time.Hour
	token, err := auth.GenerateToken("user-9", "niner", otherCfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	testRouter(cfg).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
