package blocks

// BlockType はブロックの種類
type BlockType string

const (
	// BlockTypeReporter は値を返すブロック
	BlockTypeReporter BlockType = "reporter"
	// BlockTypeCommand は処理のみを行うブロック
	BlockTypeCommand BlockType = "command"
)

// ArgumentType は引数の型
type ArgumentType string

const ArgumentTypeString ArgumentType = "string"

const (
	// OpcodeAsk は質問ブロックの opcode
	OpcodeAsk = "ask"
	// OpcodeSetAPIKey はAPIキー設定ブロックの opcode
	OpcodeSetAPIKey = "setApiKey"

	// ArgText は質問ブロックの引数名
	ArgText = "TEXT"
)

// ExtensionInfo はホストに渡す拡張機能のメタデータ
type ExtensionInfo struct {
	ID     string              `json:"id"`
	Name   string              `json:"name"`
	Blocks []BlockInfo         `json:"blocks"`
	Menus  map[string][]string `json:"menus"`
}

// BlockInfo は1つのブロックの定義
type BlockInfo struct {
	Opcode    string                  `json:"opcode"`
	BlockType BlockType               `json:"blockType"`
	Text      string                  `json:"text"`
	Arguments map[string]ArgumentInfo `json:"arguments,omitempty"`
}

// ArgumentInfo はブロック引数の定義
type ArgumentInfo struct {
	Type         ArgumentType `json:"type"`
	DefaultValue string       `json:"defaultValue,omitempty"`
}

// Info は拡張機能のメタデータを返す
func Info() ExtensionInfo {
	return ExtensionInfo{
		ID:   "gpt3",
		Name: "GPT3",
		Blocks: []BlockInfo{
			{
				Opcode:    OpcodeAsk,
				BlockType: BlockTypeReporter,
				Text:      "GPT3に答えを聞く [TEXT]",
				Arguments: map[string]ArgumentInfo{
					ArgText: {
						Type:         ArgumentTypeString,
						DefaultValue: "君の名前は？",
					},
				},
			},
			{
				Opcode:    OpcodeSetAPIKey,
				BlockType: BlockTypeCommand,
				Text:      "APIキーをセット",
			},
		},
		Menus: map[string][]string{},
	}
}

// Lookup は opcode に対応するブロック定義を返す
func (i ExtensionInfo) Lookup(opcode string) (BlockInfo, bool) {
	for _, b := range i.Blocks {
		if b.Opcode == opcode {
			return b, true
		}
	}
	return BlockInfo{}, false
}
