package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/jinford/gpt3-relay/internal/infra/credential"
)

// AskAction は質問応答コマンドのアクション
func (c *Commands) AskAction(ctx context.Context, cmd *cli.Command) error {
	// フラグの取得
	envFile := cmd.String("env")
	apiKey := cmd.String("api-key")
	promptKey := cmd.Bool("prompt-key")

	// 質問文の取得
	question := strings.Join(cmd.Args().Slice(), " ")
	if question == "" {
		return fmt.Errorf("質問文を指定してください")
	}

	// 共通コンテキストの初期化
	appCtx, err := NewAppContext(ctx, envFile, c.containerOptions...)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	r := appCtx.Container.Relay
	logger := appCtx.Logger()

	// APIキーの決定: --api-key > 対話入力 > 設定ファイル
	switch {
	case apiKey != "":
		if err := r.CollectCredential(ctx, credential.Static(apiKey)); err != nil {
			return err
		}
	case promptKey:
		if err := r.CollectCredential(ctx, c.terminalSource()); err != nil {
			return err
		}
	}

	logger.Info("質問応答を開始", "questionLength", len([]rune(question)), "hasCredential", r.HasCredential())

	// 失敗時も理由を含む文が返るため、終了コードは常に0
	answer := r.Ask(ctx, question)
	fmt.Fprintln(writer(cmd), answer)

	logger.Info("質問応答が完了しました")
	return nil
}
