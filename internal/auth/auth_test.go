package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparkmatch/sparkmatch/internal/auth"
	"github.com/sparkmatch/sparkmatch/internal/config"
)

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.JWTExpiry = time.Hour
	return cfg
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testConfig()

	token, err := auth.GenerateToken("user-1", "alice", cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token, cfg.Auth.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenWrongSecret(t *testing.T) {
	cfg := testConfig()

	token, err := auth.GenerateToken("user-1", "alice", cfg)
	require.NoError(t, err)

	_, err = auth.ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTExpiry = -time.Minute

	token, err := auth.GenerateToken("user-1", "alice", cfg)
	require.NoError(t, err)

	_, err = auth.ValidateToken(token, cfg.Auth.JWTSecret)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := auth.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, auth.CheckPasswordHash("hunter22", hash))
	assert.False(t, auth.CheckPasswordHash("hunter23", hash))
}
