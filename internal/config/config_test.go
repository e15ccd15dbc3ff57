package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValidate(t *testing.T) {
	base := Config{Port: "8460", JWTSecret: "dev-secret", Env: "development"}

	t.Run("development accepts short secret with warning", func(t *testing.T) {
		cfg := base
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing port rejected", func(t *testing.T) {
		cfg := base
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing secret rejected", func(t *testing.T) {
		cfg := base
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects default secret", func(t *testing.T) {
		cfg := base
		cfg.Env = "production"
		cfg.JWTSecret = "your-secret-key-change-in-production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects short secret", func(t *testing.T) {
		cfg := base
		cfg.Env = "production"
		cfg.JWTSecret = "short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects weak db password", func(t *testing.T) {
		cfg := base
		cfg.Env = "production"
		cfg.JWTSecret = "0123456789abcdef0123456789abcdef"
		cfg.DBPassword = "password"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production accepts strong settings", func(t *testing.T) {
		cfg := base
		cfg.Env = "production"
		cfg.JWTSecret = "0123456789abcdef0123456789abcdef"
		cfg.DBPassword = "i1IhMyc0NbQt"
		cfg.DBSSLMode = "require"
		assert.NoError(t, cfg.Validate())
	})
}

func TestIsDevelopment(t *testing.T) {
	assert.True(t, (&Config{}).IsDevelopment())
	assert.True(t, (&Config{Env: "development"}).IsDevelopment())
	assert.True(t, (&Config{Env: "test"}).IsDevelopment())
	assert.False(t, (&Config{Env: "production"}).IsDevelopment())
}

// The checked-in base config must stay parseable and must not carry
// production credentials.
func TestBaseConfigFileParses(t *testing.T) {
	data, err := os.ReadFile("../../config.yml")
	if os.IsNotExist(err) {
		t.Skip("no base config.yml checked in")
	}
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))

	if env, ok := raw["APP_ENV"]; ok {
		assert.NotEqual(t, "production", env, "base config must not pin production")
	}
	if secret, ok := raw["JWT_SECRET"]; ok {
		assert.NotEmpty(t, secret)
	}
}
