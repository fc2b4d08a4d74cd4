package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "inventario-console", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("BACKEND_BASE_URL", "https://inventario.example.com/api")
	t.Setenv("BACKEND_CSRF_TOKEN", "csrf-123")
	t.Setenv("BACKEND_TIMEOUT", "5")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_DB", "2")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "https://inventario.example.com/api", cfg.Backend.BaseURL)
	assert.Equal(t, "csrf-123", cfg.Backend.CSRFToken)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "redis", cfg.Session.Store)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoad_Invalida(t *testing.T) {
	t.Setenv("SESSION_STORE", "postgres")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate_ProduccionExigeSecreto(t *testing.T) {
	cfg := &config.Config{
		App:     config.AppConfig{Env: "production"},
		Backend: config.BackendConfig{BaseURL: "http://x", RequestsPerSecond: 1},
		Session: config.SessionConfig{Store: "memory"},
	}
	assert.Error(t, cfg.Validate())
	cfg.JWT.Secret = "s"
	assert.NoError(t, cfg.Validate())
}
