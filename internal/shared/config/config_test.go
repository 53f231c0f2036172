package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("LOCK_BACKEND", "")
	t.Setenv("TRACING_EXPORTER", "")
	t.Setenv("SEED_ON_START", "")

	cfg := Load()

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.LockBackend)
	assert.Equal(t, "none", cfg.TracingExporter)
	assert.True(t, cfg.SeedOnStart)
	assert.True(t, cfg.IsDevLike())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("LOCK_BACKEND", "Redis")
	t.Setenv("TRACING_EXPORTER", "otlp")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("RATE_LIMIT_CHAT_BURST", "9")
	t.Setenv("RATE_LIMIT_CHAT_RPS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "redis", cfg.LockBackend)
	assert.Equal(t, "otlp", cfg.TracingExporter)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigin)
	assert.Equal(t, 9, cfg.ChatRateBurst)
	assert.Equal(t, 1.0, cfg.ChatRateRPS)
	assert.False(t, cfg.SeedOnStart)
	assert.False(t, cfg.IsDevLike())
}

func TestLoadEnvFilesDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("DOTENV_PRESET=file\nDOTENV_FRESH=\"file\"\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("DOTENV_PRESET", "env")
	t.Setenv("DOTENV_FRESH", "")
	os.Unsetenv("DOTENV_FRESH")

	loadEnvFiles(filepath.Join(dir, "missing.env"), path)

	assert.Equal(t, "env", os.Getenv("DOTENV_PRESET"))
	assert.Equal(t, "file", os.Getenv("DOTENV_FRESH"))
}
