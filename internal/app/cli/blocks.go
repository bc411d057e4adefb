package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/jinford/gpt3-relay/internal/core/blocks"
)

// BlocksAction はブロック定義を一覧表示するコマンドのアクション
func (c *Commands) BlocksAction(ctx context.Context, cmd *cli.Command) error {
	info := blocks.Info()
	out := writer(cmd)

	fmt.Fprintf(out, "拡張機能: %s (%s)\n", info.Name, info.ID)

	table := tablewriter.NewWriter(out)
	table.Header("Opcode", "種類", "表示テキスト", "引数")
	for _, b := range info.Blocks {
		table.Append(b.Opcode, string(b.BlockType), b.Text, formatArguments(b.Arguments))
	}
	table.Render()
	return nil
}

// formatArguments は引数定義を "NAME:type=default" 形式で整形する
func formatArguments(args map[string]blocks.ArgumentInfo) string {
	if len(args) == 0 {
		return "-"
	}

	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		arg := args[name]
		parts = append(parts, fmt.Sprintf("%s:%s=%s", name, arg.Type, arg.DefaultValue))
	}
	return strings.Join(parts, ", ")
}
