package openai

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/jinford/gpt3-relay/internal/core/relay"
)

// TokenCounter はトークン数をカウントする機能を提供する
type TokenCounter struct {
	encoding *tiktoken.Tiktoken
}

// NewTokenCounter は新しいTokenCounterを作成する
// cl100k_baseエンコーディングを使用する
func NewTokenCounter() (*TokenCounter, error) {
	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to get tiktoken encoding: %w", err)
	}

	return &TokenCounter{
		encoding: encoding,
	}, nil
}

// CountTokens はテキストのトークン数をカウントする
func (tc *TokenCounter) CountTokens(text string) int {
	if tc == nil || tc.encoding == nil {
		// エンコーディングが初期化されていない場合は推定値を返す
		return EstimateTokens(text)
	}
	tokens := tc.encoding.Encode(text, nil, nil)
	return len(tokens)
}

// EstimateTokens はテキストの推定トークン数を返す
// 日本語は約1文字で1トークン、英語は約4文字で1トークンのため平均の3文字で1トークンとする
func EstimateTokens(text string) int {
	return len([]rune(text)) / 3
}

// EstimatingCounter はエンコーディングを使わずに推定値を返すカウンタ
type EstimatingCounter struct{}

// CountTokens は推定トークン数を返す
func (EstimatingCounter) CountTokens(text string) int {
	return EstimateTokens(text)
}

var (
	_ relay.TokenCounter = (*TokenCounter)(nil)
	_ relay.TokenCounter = EstimatingCounter{}
)
