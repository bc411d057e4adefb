package blocks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jinford/gpt3-relay/internal/core/relay"
)

// ErrUnknownOpcode は未定義の opcode が指定された場合のエラー
var ErrUnknownOpcode = errors.New("unknown opcode")

// Extension はブロックの呼び出しを Relay に振り分ける
type Extension struct {
	relay  *relay.Relay
	source relay.CredentialSource
	logger *slog.Logger

	// promptMu は setApiKey の入力を1件ずつに制限する
	promptMu sync.Mutex
}

type ExtensionOption func(*Extension)

// WithExtensionLogger は Extension にロガーを設定する
func WithExtensionLogger(logger *slog.Logger) ExtensionOption {
	return func(e *Extension) {
		e.logger = logger
	}
}

// NewExtension は新しい Extension を作成する
// source は setApiKey ブロックの実行時にAPIキーを取得する入力元
func NewExtension(r *relay.Relay, source relay.CredentialSource, opts ...ExtensionOption) *Extension {
	e := &Extension{
		relay:  r,
		source: source,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// Info は拡張機能のメタデータを返す
func (e *Extension) Info() ExtensionInfo {
	return Info()
}

// Execute は opcode に対応するブロックを実行する
// command ブロックは空文字列を返す
func (e *Extension) Execute(ctx context.Context, opcode string, args map[string]any) (string, error) {
	switch opcode {
	case OpcodeAsk:
		return e.relay.Ask(ctx, ToText(args[ArgText])), nil

	case OpcodeSetAPIKey:
		if e.source == nil {
			return "", fmt.Errorf("no credential source configured")
		}
		return "", e.collectCredential(ctx)

	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownOpcode, opcode)
	}
}

// collectCredential は入力元からAPIキーを取得する
// 同時に実行されるのは1件だけ
func (e *Extension) collectCredential(ctx context.Context) error {
	e.promptMu.Lock()
	defer e.promptMu.Unlock()

	if err := e.relay.CollectCredential(ctx, e.source); err != nil {
		e.logger.Warn("APIキーの入力に失敗しました", "error", err)
		return err
	}
	return nil
}
