package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/jinford/gpt3-relay/internal/interface/httpapi"
)

// ServeAction はHTTPサーバを起動するコマンドのアクション
func (c *Commands) ServeAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")

	// 共通コンテキストの初期化
	appCtx, err := NewAppContext(ctx, envFile, c.containerOptions...)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	addr := cmd.String("addr")
	if addr == "" {
		addr = appCtx.Container.Config.Server.Addr
	}

	server := httpapi.NewServer(appCtx.Container.Extension, appCtx.Container.Relay, appCtx.Logger())
	return server.ListenAndServe(ctx, addr)
}
