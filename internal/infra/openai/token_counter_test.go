package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "空文字列", text: "", want: 0},
		{name: "英語", text: "hello world!", want: 4},
		{name: "日本語は文字数で数える", text: "君の名前は？", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateTokens(tt.text))
			assert.Equal(t, tt.want, EstimatingCounter{}.CountTokens(tt.text))
		})
	}
}

func TestTokenCounter_NilFallsBackToEstimate(t *testing.T) {
	var tc *TokenCounter

	assert.Equal(t, EstimateTokens("hello world!"), tc.CountTokens("hello world!"))
}
