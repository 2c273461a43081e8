package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY_DAYS", "not-a-number")
	t.Setenv("FRONTEND_URL", "https://vote.example.com/, http://localhost:5173 ,,")
	t.Setenv("S3_BUCKET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, []string{"https://vote.example.com", "http://localhost:5173"}, cfg.FrontendURLs)
	assert.False(t, cfg.UseS3())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY_DAYS", "7")
	t.Setenv("S3_BUCKET", "portraits")
	t.Setenv("S3_ENDPOINT", "https://s3.wasabisys.com/")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiry)
	assert.True(t, cfg.UseS3())
	assert.Equal(t, "https://s3.wasabisys.com", cfg.S3Endpoint)
	assert.True(t, cfg.IsProduction())
}
