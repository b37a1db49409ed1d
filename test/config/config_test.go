package config_test

import (
	"testing"
	"time"

	"nowpad/src/config"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := config.LoadConfig()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "nowpad", cfg.Server.SecretPrefix)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.UploadEnabled)
	assert.Equal(t, 24*time.Hour, cfg.Log.UploadMaxAge)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("URL_SECRET_PREFIX", "s3cr3t-path")
	t.Setenv("DB_PORT", "15432")
	t.Setenv("LOG_UPLOAD_ENABLED", "true")
	t.Setenv("LOG_UPLOAD_INTERVAL", "30m")

	cfg := config.LoadConfig()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "s3cr3t-path", cfg.Server.SecretPrefix)
	assert.Equal(t, 15432, cfg.Database.Port)
	assert.True(t, cfg.Log.UploadEnabled)
	assert.Equal(t, 30*time.Minute, cfg.Log.UploadInterval)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	// 解釈できない値はデフォルトに戻る
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("LOG_UPLOAD_ENABLED", "maybe")
	t.Setenv("LOG_UPLOAD_MAX_AGE", "soon")

	cfg := config.LoadConfig()

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.False(t, cfg.Log.UploadEnabled)
	assert.Equal(t, 24*time.Hour, cfg.Log.UploadMaxAge)
}
