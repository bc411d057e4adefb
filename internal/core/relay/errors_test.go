package relay

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "APIキー未設定", err: ErrMissingCredential, want: ErrorKindMissingCredential},
		{name: "認証エラー", err: fmt.Errorf("%w: 401", ErrUnauthorized), want: ErrorKindUnauthorized},
		{name: "レート制限", err: fmt.Errorf("%w: 429", ErrRateLimited), want: ErrorKindRateLimited},
		{name: "空の応答", err: ErrEmptyResponse, want: ErrorKindEmptyResponse},
		{name: "キャンセル", err: fmt.Errorf("%w: %w", ErrUpstream, context.Canceled), want: ErrorKindCanceled},
		{name: "タイムアウト", err: context.DeadlineExceeded, want: ErrorKindCanceled},
		{name: "通信エラー", err: fmt.Errorf("%w: connection refused", ErrUpstream), want: ErrorKindUpstream},
		{name: "不明なエラー", err: errors.New("boom"), want: ErrorKindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestFailureMessage(t *testing.T) {
	assert.Equal(t, GuidanceMessage, FailureMessage(ErrMissingCredential))
	assert.Equal(t, "失敗しちゃったみたい。理由はこれだよ「boom」", FailureMessage(errors.New("boom")))
}

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt("君の名前は？")

	assert.Equal(t, "君の名前は？ \n\n\n と聞いている子供に対して、頼り甲斐のあるお兄さんが教えてあげる口調で答えてください。", got)
}
