package credential

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"

	"github.com/jinford/gpt3-relay/internal/core/relay"
)

// PromptLabel は対話入力で表示するラベル
const PromptLabel = "OpenAI のAPIキーを入力してください"

// Static は固定のAPIキーを返す入力元
type Static string

// Credential は保持しているAPIキーを返す
func (s Static) Credential(ctx context.Context) (string, error) {
	return string(s), nil
}

// Env は呼び出し時点の環境変数からAPIキーを読む入力元
type Env string

// Credential は環境変数の値を返す。未設定の場合は空文字列を返す
func (e Env) Credential(ctx context.Context) (string, error) {
	return os.Getenv(string(e)), nil
}

// Terminal は端末で対話的にAPIキーを入力させる入力元
type Terminal struct {
	Label  string
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

// NewTerminal は標準入出力を使う Terminal を作成する
func NewTerminal() *Terminal {
	return &Terminal{Label: PromptLabel}
}

// Credential は入力を伏せ字で受け付け、入力された文字列をそのまま返す
func (t *Terminal) Credential(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	label := t.Label
	if label == "" {
		label = PromptLabel
	}

	prompt := promptui.Prompt{
		Label:  label,
		Mask:   '*',
		Stdin:  t.Stdin,
		Stdout: t.Stdout,
	}

	key, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("APIキーの入力に失敗: %w", err)
	}

	return key, nil
}

// インターフェース実装の確認
var (
	_ relay.CredentialSource = Static("")
	_ relay.CredentialSource = Env("")
	_ relay.CredentialSource = (*Terminal)(nil)
)
