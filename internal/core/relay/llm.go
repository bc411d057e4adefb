package relay

import "context"

// CompletionClient はテキスト補完サービスとのやり取りを抽象化するインターフェース
type CompletionClient interface {
	// Complete はプロンプトに基づいて補完サービスから応答を生成する
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
}

// CompletionRequest は補完サービスへのリクエストパラメータ
type CompletionRequest struct {
	// APIKey はBearer認証に使用するAPIキー
	APIKey string

	// Prompt は補完サービスに送信するプロンプト
	Prompt string

	// Model はモデル名 (省略時はクライアントのデフォルトモデルを使用)
	Model string

	// Temperature は生成の多様性を制御する (0 で決定的な出力)
	Temperature float64

	// MaxTokens は生成する最大トークン数
	MaxTokens int

	// TopP は nucleus sampling の閾値
	TopP float64

	// FrequencyPenalty は頻出トークンへのペナルティ
	FrequencyPenalty float64

	// PresencePenalty は既出トークンへのペナルティ
	PresencePenalty float64
}

// CompletionResponse は補完サービスからのレスポンス
type CompletionResponse struct {
	// Text は最初の候補の生成テキスト
	Text string

	// TokensUsed は使用されたトークン数
	TokensUsed int

	// Model は実際に使用されたモデル名
	Model string
}

// TokenCounter はプロンプトのトークン数を数える
type TokenCounter interface {
	CountTokens(text string) int
}
