package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/shop")
	t.Setenv("JWT_SECRET", "s3cret")
	// Empty values fall back to defaults.
	for _, key := range []string{"PORT", "APP_ENV", "JWT_ISSUER", "JWT_TTL_MINUTES"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "storefront", cfg.JWTIssuer)
	// Sessions default to 24 hours.
	assert.Equal(t, 24*60, cfg.JWTTTLMinutes)
	assert.False(t, cfg.Development())
}

func TestValidate(t *testing.T) {
	cfg := Config{DatabaseURL: "postgres://localhost/shop", JWTSecret: "s3cret"}
	require.NoError(t, cfg.Validate())

	// The server must refuse to start without a signing secret.
	noSecret := cfg
	noSecret.JWTSecret = ""
	assert.Error(t, noSecret.Validate())

	noDB := cfg
	noDB.DatabaseURL = ""
	assert.Error(t, noDB.Validate())
}

func TestDevelopmentFlag(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/shop")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "development")

	assert.True(t, Load().Development())
}
