package relay

import "strings"

const (
	// PlaceholderCredential は未設定と同じ扱いになるAPIキーの既定表示
	PlaceholderCredential = "APIキー"

	// GuidanceMessage はAPIキー未設定時に返す案内文
	GuidanceMessage = "openai.com のサイトからAPIキーを取得してセットください"

	// failureTemplate は補完サービス呼び出し失敗時の応答テンプレート
	failureTemplate = "失敗しちゃったみたい。理由はこれだよ「%s」"

	// personaInstruction は質問の後ろに付与する口調の指示
	personaInstruction = " \n\n\n と聞いている子供に対して、頼り甲斐のあるお兄さんが教えてあげる口調で答えてください。"
)

const (
	// DefaultTemperature は決定的な出力を要求する
	DefaultTemperature = 0.0

	// DefaultMaxTokens は応答の最大トークン数
	DefaultMaxTokens = 1000

	// DefaultTopP は nucleus sampling を無効化する
	DefaultTopP = 1.0
)

// BuildPrompt は質問文に口調の指示を付与したプロンプトを構築する
func BuildPrompt(question string) string {
	return question + personaInstruction
}

// NewCompletionRequest は固定パラメータで補完リクエストを構築する
func NewCompletionRequest(apiKey, model, question string) CompletionRequest {
	return CompletionRequest{
		APIKey:           apiKey,
		Prompt:           BuildPrompt(question),
		Model:            model,
		Temperature:      DefaultTemperature,
		MaxTokens:        DefaultMaxTokens,
		TopP:             DefaultTopP,
		FrequencyPenalty: 0,
		PresencePenalty:  0,
	}
}

// CleanAnswer は応答テキストから改行をすべて取り除く
func CleanAnswer(text string) string {
	return strings.ReplaceAll(text, "\n", "")
}
