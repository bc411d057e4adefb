package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultServerAddr はHTTPサーバのデフォルト待ち受けアドレス
// 認証がないため、ループバックのみで待ち受ける
const DefaultServerAddr = "127.0.0.1:8080"

// Config はアプリケーション全体の設定を保持します
type Config struct {
	// OpenAI設定
	OpenAI OpenAIConfig

	// HTTPサーバ設定
	Server ServerConfig

	// ログ設定
	Log LogConfig
}

// OpenAIConfig は補完API設定
type OpenAIConfig struct {
	APIKey  string        // 起動時に設定するAPIキー（省略可）
	BaseURL string        // APIのベースURL（空の場合はSDKのデフォルト）
	Model   string        // Completions API のモデル名
	Timeout time.Duration // 0 の場合はタイムアウトなし
}

// ServerConfig はHTTPサーバ設定
type ServerConfig struct {
	Addr string
}

// LogConfig はログ出力設定
type LogConfig struct {
	Level  slog.Level
	Format string // "json" or "text"
}

// Load は環境変数または.envファイルから設定を読み込みます
func Load(envFilePath string) (*Config, error) {
	// .envファイルが存在する場合は読み込む
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			// ファイルが存在しない場合はエラーとしない（環境変数のみで動作可能）
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	}

	timeout, err := getEnvAsDuration("GPT3_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
			Model:   getEnv("GPT3_MODEL", "gpt-3.5-turbo-instruct"),
			Timeout: timeout,
		},
		Server: ServerConfig{
			Addr: getEnv("SERVER_ADDR", DefaultServerAddr),
		},
		Log: LogConfig{
			Level:  level,
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsDuration は環境変数を time.Duration として取得します
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return value, nil
}

// parseLevel はログレベル名を slog.Level に変換します
func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return level, nil
}
