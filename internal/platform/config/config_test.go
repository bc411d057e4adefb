package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"OPENAI_API_KEY", "OPENAI_BASE_URL", "GPT3_MODEL", "GPT3_TIMEOUT",
	"SERVER_ADDR", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv はテスト終了時に元に戻る形で設定キーを空にする
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Empty(t, cfg.OpenAI.APIKey)
	assert.Empty(t, cfg.OpenAI.BaseURL)
	assert.Equal(t, "gpt-3.5-turbo-instruct", cfg.OpenAI.Model)
	assert.Equal(t, time.Duration(0), cfg.OpenAI.Timeout)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.NoError(t, err)
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "OPENAI_API_KEY=sk-file\nGPT3_MODEL=davinci-002\nGPT3_TIMEOUT=30s\nLOG_LEVEL=debug\nLOG_FORMAT=text\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := Load(envFile)

	require.NoError(t, err)
	assert.Equal(t, "sk-file", cfg.OpenAI.APIKey)
	assert.Equal(t, "davinci-002", cfg.OpenAI.Model)
	assert.Equal(t, 30*time.Second, cfg.OpenAI.Timeout)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SERVER_ADDR=:9000\n"), 0o600))
	t.Setenv("SERVER_ADDR", ":7000")

	cfg, err := Load(envFile)

	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "不正なタイムアウト", key: "GPT3_TIMEOUT", value: "soon"},
		{name: "負のタイムアウト", key: "GPT3_TIMEOUT", value: "-1s"},
		{name: "不正なログレベル", key: "LOG_LEVEL", value: "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
