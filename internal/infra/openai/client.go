package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/jinford/gpt3-relay/internal/core/relay"
)

const (
	// DefaultModel は /completions エンドポイントで使用するデフォルトモデル
	DefaultModel = "gpt-3.5-turbo-instruct"
)

// CompletionClient は OpenAI の Completions API を使用した補完クライアント実装
type CompletionClient struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

type clientOptions struct {
	model      string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// ClientOption は CompletionClient のオプション設定
type ClientOption func(*clientOptions)

// WithModel はデフォルトモデルを上書きする
func WithModel(model string) ClientOption {
	return func(o *clientOptions) {
		o.model = model
	}
}

// WithBaseURL はAPIのベースURLを上書きする
func WithBaseURL(baseURL string) ClientOption {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithTimeout はAPIコールのタイムアウトを設定する（0 はタイムアウトなし）
func WithTimeout(timeout time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithHTTPClient は内部で使用する HTTP クライアントを差し替える
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// NewCompletionClient は新しい CompletionClient を作成する
// APIキーはリクエストごとに指定するため、ここでは受け取らない
func NewCompletionClient(opts ...ClientOption) *CompletionClient {
	options := clientOptions{
		model: DefaultModel,
	}
	for _, opt := range opts {
		opt(&options)
	}

	// リトライは行わない
	requestOptions := []option.RequestOption{
		option.WithMaxRetries(0),
	}
	if options.baseURL != "" {
		requestOptions = append(requestOptions, option.WithBaseURL(options.baseURL))
	}
	if options.httpClient != nil {
		requestOptions = append(requestOptions, option.WithHTTPClient(options.httpClient))
	}

	return &CompletionClient{
		client:  openai.NewClient(requestOptions...),
		model:   options.model,
		timeout: options.timeout,
	}
}

// ModelName はモデル名を返す
func (c *CompletionClient) ModelName() string {
	return c.model
}

// Complete は Completions API を1回だけ呼び出し、最初の候補のテキストを返す
func (c *CompletionClient) Complete(ctx context.Context, req relay.CompletionRequest) (relay.CompletionResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	model := c.model
	if req.Model != "" {
		model = req.Model
	}

	params := openai.CompletionNewParams{
		Model: openai.CompletionNewParamsModel(model),
		Prompt: openai.CompletionNewParamsPromptUnion{
			OfString: openai.String(req.Prompt),
		},
		Temperature:      openai.Float(req.Temperature),
		TopP:             openai.Float(req.TopP),
		FrequencyPenalty: openai.Float(req.FrequencyPenalty),
		PresencePenalty:  openai.Float(req.PresencePenalty),
	}

	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	completion, err := c.client.Completions.New(ctx, params, option.WithAPIKey(req.APIKey))
	if err != nil {
		return relay.CompletionResponse{}, classifyError(err)
	}

	if len(completion.Choices) == 0 {
		return relay.CompletionResponse{}, relay.ErrEmptyResponse
	}
	// text が欠けた候補は空文字列の回答として扱わない
	if !completion.Choices[0].JSON.Text.Valid() {
		return relay.CompletionResponse{}, fmt.Errorf("%w: choices[0].text is missing", relay.ErrEmptyResponse)
	}

	return relay.CompletionResponse{
		Text:       completion.Choices[0].Text,
		TokensUsed: int(completion.Usage.TotalTokens),
		Model:      completion.Model,
	}, nil
}

// classifyError はSDKのエラーを relay のエラー分類で包む
func classifyError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %w", relay.ErrUnauthorized, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", relay.ErrRateLimited, err)
		}
	}

	return fmt.Errorf("%w: %w", relay.ErrUpstream, err)
}

// インターフェース実装の確認
var _ relay.CompletionClient = (*CompletionClient)(nil)
