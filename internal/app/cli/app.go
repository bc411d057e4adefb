package cli

import (
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/jinford/gpt3-relay/internal/core/relay"
	"github.com/jinford/gpt3-relay/internal/infra/credential"
	"github.com/jinford/gpt3-relay/internal/platform/container"
)

// Commands はサブコマンドのアクションを保持する
type Commands struct {
	containerOptions []container.ContainerOption
	terminal         relay.CredentialSource
}

// CommandsOption は Commands のオプション設定
type CommandsOption func(*Commands)

// WithContainerOptions はコンテナ生成時のオプションを追加する
func WithContainerOptions(opts ...container.ContainerOption) CommandsOption {
	return func(c *Commands) {
		c.containerOptions = append(c.containerOptions, opts...)
	}
}

// WithTerminalSource は --prompt-key で使うAPIキーの入力元を差し替える
func WithTerminalSource(source relay.CredentialSource) CommandsOption {
	return func(c *Commands) {
		c.terminal = source
	}
}

// NewCommands は新しい Commands を作成する
func NewCommands(opts ...CommandsOption) *Commands {
	c := &Commands{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Commands) terminalSource() relay.CredentialSource {
	if c.terminal != nil {
		return c.terminal
	}
	return credential.NewTerminal()
}

// serveDescription は serve コマンドの公開範囲に関する注意書き
const serveDescription = "HTTPサーバには認証がない。到達できる相手は誰でもAPIキーの差し替えと、設定済みAPIキーでの質問ができる。\n" +
	"デフォルトは 127.0.0.1 のみで待ち受ける。0.0.0.0 などで公開する場合は信頼できるネットワークに限ること"

// NewApp はルートコマンドを構築する
func NewApp(opts ...CommandsOption) *cli.Command {
	c := NewCommands(opts...)

	envFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:  "env",
			Usage: "環境変数ファイルパス",
			Value: ".env",
		}
	}

	return &cli.Command{
		Name:  "gpt3-relay",
		Usage: "ビジュアルプログラミング環境から GPT3 に質問するためのリレー",
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "GPT3に答えを聞く",
				ArgsUsage: "<質問文>",
				Flags: []cli.Flag{
					envFlag(),
					&cli.StringFlag{
						Name:  "api-key",
						Usage: "OpenAI のAPIキー（省略時は OPENAI_API_KEY）",
					},
					&cli.BoolFlag{
						Name:  "prompt-key",
						Usage: "APIキーを対話的に入力する",
					},
				},
				Action: c.AskAction,
			},
			{
				Name:   "blocks",
				Usage:  "ブロック定義を表示",
				Action: c.BlocksAction,
			},
			{
				Name:        "serve",
				Usage:       "ブロック実行環境向けのHTTPサーバを起動",
				Description: serveDescription,
				Flags: []cli.Flag{
					envFlag(),
					&cli.StringFlag{
						Name:  "addr",
						Usage: "待ち受けアドレス（省略時は SERVER_ADDR、未設定なら 127.0.0.1:8080）",
					},
				},
				Action: c.ServeAction,
			},
		},
	}
}

// writer はコマンドの出力先を返す
func writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}
