package container

import (
	"fmt"
	"log/slog"

	"github.com/jinford/gpt3-relay/internal/core/blocks"
	"github.com/jinford/gpt3-relay/internal/core/relay"
	"github.com/jinford/gpt3-relay/internal/infra/credential"
	"github.com/jinford/gpt3-relay/internal/infra/openai"
	"github.com/jinford/gpt3-relay/internal/platform/config"
)

// ServiceContainer はアプリケーションの依存関係を保持する。
type ServiceContainer struct {
	Config    *config.Config
	Relay     *relay.Relay
	Extension *blocks.Extension

	logger *slog.Logger
}

type containerOptions struct {
	logger           *slog.Logger
	completionClient relay.CompletionClient
	tokenCounter     relay.TokenCounter
	credentialSource relay.CredentialSource
}

// ContainerOption は ServiceContainer 構築時のオプション
type ContainerOption func(*containerOptions)

// WithContainerLogger はロガーを差し替える
func WithContainerLogger(logger *slog.Logger) ContainerOption {
	return func(opts *containerOptions) {
		opts.logger = logger
	}
}

// WithContainerCompletionClient はカスタム補完クライアントを注入する
func WithContainerCompletionClient(client relay.CompletionClient) ContainerOption {
	return func(opts *containerOptions) {
		opts.completionClient = client
	}
}

// WithContainerTokenCounter は TokenCounter を差し替える
func WithContainerTokenCounter(counter relay.TokenCounter) ContainerOption {
	return func(opts *containerOptions) {
		opts.tokenCounter = counter
	}
}

// WithContainerCredentialSource は setApiKey ブロックで使うAPIキーの入力元を差し替える
func WithContainerCredentialSource(source relay.CredentialSource) ContainerOption {
	return func(opts *containerOptions) {
		opts.credentialSource = source
	}
}

// NewContainer は設定からコンテナを生成する。
func NewContainer(cfg *config.Config, opts ...ContainerOption) (*ServiceContainer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	options := containerOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	// CompletionClient (OpenAI)
	client := options.completionClient
	if client == nil {
		client = openai.NewCompletionClient(
			openai.WithModel(cfg.OpenAI.Model),
			openai.WithBaseURL(cfg.OpenAI.BaseURL),
			openai.WithTimeout(cfg.OpenAI.Timeout),
		)
	}

	// TokenCounter
	tokenCounter := options.tokenCounter
	if tokenCounter == nil {
		counter, err := openai.NewTokenCounter()
		if err != nil {
			options.logger.Warn("TokenCounter 初期化に失敗したため推定値を使用します", "error", err)
			tokenCounter = openai.EstimatingCounter{}
		} else {
			tokenCounter = counter
		}
	}

	r := relay.NewRelay(client,
		relay.WithLogger(options.logger),
		relay.WithModel(cfg.OpenAI.Model),
		relay.WithTokenCounter(tokenCounter),
	)

	// 設定ファイルにAPIキーがあれば初期値として使う
	if cfg.OpenAI.APIKey != "" {
		r.SetCredential(cfg.OpenAI.APIKey)
	}

	source := options.credentialSource
	if source == nil {
		source = credential.NewTerminal()
	}

	ext := blocks.NewExtension(r, source, blocks.WithExtensionLogger(options.logger))

	return &ServiceContainer{
		Config:    cfg,
		Relay:     r,
		Extension: ext,
		logger:    options.logger,
	}, nil
}

// Logger はコンテナのロガーを返す
func (c *ServiceContainer) Logger() *slog.Logger {
	if c == nil || c.logger == nil {
		return slog.Default()
	}
	return c.logger
}

// Close は内部リソースを解放する。
func (c *ServiceContainer) Close() {
	if c != nil {
		c.Logger().Debug("container closed")
	}
}
