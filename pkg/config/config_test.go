package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, StoreMemory, cfg.Store.Backend)
	assert.Equal(t, "Submissions", cfg.Store.SubmissionsWorksheet)
	assert.Equal(t, 11, cfg.Poster.LineCapacity)
	assert.Equal(t, 30, cfg.Poster.WrapWidth)
	assert.Equal(t, 40, cfg.Poster.TitleWidth)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Contains(t, cfg.Reflection.Instruction, "/10")
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_BACKEND", "Sheets")
	t.Setenv("COMMUNITY_PASSPHRASE", "moonlight")
	t.Setenv("COMMUNITY_REQUIRE_AUTHOR", "true")
	t.Setenv("POSTER_LINE_CAPACITY", "0")
	t.Setenv("JWT_EXPIRATION", "not-a-duration")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreSheets, cfg.Store.Backend)
	assert.Equal(t, "moonlight", cfg.Community.Passphrase)
	assert.True(t, cfg.Community.RequireAuthor)
	assert.Equal(t, 11, cfg.Poster.LineCapacity)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoadProductionRequiresAllowedOrigins(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", EnvProduction)
	t.Setenv("ALLOWED_ORIGINS", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ALLOWED_ORIGINS")

	t.Setenv("ALLOWED_ORIGINS", "https://room.example")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://room.example"}, cfg.CORS.AllowedOrigins)
}
