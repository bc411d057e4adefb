package relay

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/mo"
)

// CredentialSource はAPIキーの入力元を抽象化する
type CredentialSource interface {
	Credential(ctx context.Context) (string, error)
}

// CredentialSourceFunc は関数を CredentialSource として扱うアダプタ
type CredentialSourceFunc func(ctx context.Context) (string, error)

// Credential は f(ctx) を呼び出す
func (f CredentialSourceFunc) Credential(ctx context.Context) (string, error) {
	return f(ctx)
}

// Relay は質問を補完サービスへ中継し、表示用の文字列を返す
type Relay struct {
	client       CompletionClient
	model        string
	tokenCounter TokenCounter
	logger       *slog.Logger

	mu         sync.RWMutex
	credential string
}

type Option func(*Relay)

// WithLogger は Relay にロガーを設定する
func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

// WithModel はリクエストに使用するモデル名を設定する
func WithModel(model string) Option {
	return func(r *Relay) {
		r.model = model
	}
}

// WithTokenCounter はプロンプトのトークン数計測に使うカウンタを設定する
func WithTokenCounter(counter TokenCounter) Option {
	return func(r *Relay) {
		r.tokenCounter = counter
	}
}

// NewRelay は新しい Relay を作成する。APIキーは空の状態で始まる
func NewRelay(client CompletionClient, opts ...Option) *Relay {
	r := &Relay{
		client: client,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// SetCredential はAPIキーを検証せずにそのまま保存する
func (r *Relay) SetCredential(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.credential = key
}

// Credential は現在のAPIキーを返す
func (r *Relay) Credential() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.credential
}

// HasCredential はAPIキーが設定済みかどうかを返す
func (r *Relay) HasCredential() bool {
	return isUsable(r.Credential())
}

func isUsable(key string) bool {
	return key != "" && key != PlaceholderCredential
}

// CollectCredential は入力元からAPIキーを取得して保存する
// 取得に失敗した場合は既存のAPIキーを変更しない
func (r *Relay) CollectCredential(ctx context.Context, source CredentialSource) error {
	key, err := source.Credential(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect credential: %w", err)
	}

	r.SetCredential(key)
	r.logger.Info("credential updated", "usable", isUsable(key))
	return nil
}

// AskResult は質問を補完サービスに送り、成功時は改行を除いた回答を返す
func (r *Relay) AskResult(ctx context.Context, question string) mo.Result[string] {
	// 呼び出し時点のAPIキーで判定と認証を行う
	key := r.Credential()
	if !isUsable(key) {
		return mo.Err[string](ErrMissingCredential)
	}

	requestID := uuid.New()
	req := NewCompletionRequest(key, r.model, question)

	attrs := []any{
		"requestID", requestID.String(),
		"questionLength", len([]rune(question)),
	}
	if r.tokenCounter != nil {
		attrs = append(attrs, "promptTokens", r.tokenCounter.CountTokens(req.Prompt))
	}
	r.logger.Debug("sending completion request", attrs...)

	resp, err := r.client.Complete(ctx, req)
	if err != nil {
		r.logger.Error("completion request failed",
			"requestID", requestID.String(),
			"kind", string(Classify(err)),
			"error", err,
		)
		return mo.Err[string](err)
	}

	r.logger.Debug("completion request succeeded",
		"requestID", requestID.String(),
		"model", resp.Model,
		"tokensUsed", resp.TokensUsed,
	)

	return mo.Ok(CleanAnswer(resp.Text))
}

// Ask は質問に対する表示用の文字列を返す。失敗時もエラーは返さず、理由を含む文を返す
func (r *Relay) Ask(ctx context.Context, question string) string {
	answer, err := r.AskResult(ctx, question).Get()
	if err != nil {
		return FailureMessage(err)
	}
	return answer
}

// FailureMessage はエラーを表示用の文字列に変換する
func FailureMessage(err error) string {
	if Classify(err) == ErrorKindMissingCredential {
		return GuidanceMessage
	}
	return fmt.Sprintf(failureTemplate, err)
}
