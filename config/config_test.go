package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DB_DSN", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"CORS_ALLOWED_ORIGINS", "MEMBER_CACHE_TTL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.Redis.MemberCacheTTL)
	assert.Equal(t, "postgres://postgres:@localhost:5432/rd_tracker?sslmode=disable", cfg.Database.ConnString())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DSN", "postgres://u:p@db:5432/rd")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("MEMBER_CACHE_TTL", "30s")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres://u:p@db:5432/rd", cfg.Database.ConnString())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 2.5, cfg.Server.RateLimitRPS)
	assert.Equal(t, 30*time.Second, cfg.Redis.MemberCacheTTL)
	assert.True(t, cfg.App.IsProduction())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("MEMBER_CACHE_TTL", "soon")
	t.Setenv("RATE_LIMIT_RPS", "")
	t.Setenv("RATE_LIMIT_BURST", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 5*time.Minute, cfg.Redis.MemberCacheTTL)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: "8080", RateLimitRPS: 1, RateLimitBurst: 1},
		Database: DatabaseConfig{Host: "localhost"},
	}
	require.NoError(t, cfg.Validate())

	cfg.Server.Port = ""
	assert.EqualError(t, cfg.Validate(), "PORT is required")

	cfg.Server.Port = "8080"
	cfg.Database.Host = ""
	assert.Error(t, cfg.Validate())

	cfg.Database.DSN = "postgres://x"
	cfg.Server.RateLimitBurst = 0
	assert.Error(t, cfg.Validate())
}
