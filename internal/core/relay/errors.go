package relay

import (
	"context"
	"errors"
)

var (
	// ErrMissingCredential はAPIキーが未設定またはプレースホルダーの場合のエラー
	ErrMissingCredential = errors.New("credential not set")

	// ErrUnauthorized は認証に失敗した場合のエラー
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited はレート制限を超えた場合のエラー
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrEmptyResponse は応答に候補が含まれていない場合のエラー
	ErrEmptyResponse = errors.New("no completion choices returned")

	// ErrUpstream は補完サービスまたは通信経路のエラー
	ErrUpstream = errors.New("completion service error")
)

// ErrorKind はログ出力用のエラー分類
type ErrorKind string

const (
	ErrorKindMissingCredential ErrorKind = "missing_credential"
	ErrorKindUnauthorized      ErrorKind = "unauthorized"
	ErrorKindRateLimited       ErrorKind = "rate_limited"
	ErrorKindEmptyResponse     ErrorKind = "empty_response"
	ErrorKindCanceled          ErrorKind = "canceled"
	ErrorKindUpstream          ErrorKind = "upstream"
	ErrorKindUnknown           ErrorKind = "unknown"
)

// Classify はエラーを分類する
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential):
		return ErrorKindMissingCredential
	case errors.Is(err, ErrUnauthorized):
		return ErrorKindUnauthorized
	case errors.Is(err, ErrRateLimited):
		return ErrorKindRateLimited
	case errors.Is(err, ErrEmptyResponse):
		return ErrorKindEmptyResponse
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrorKindCanceled
	case errors.Is(err, ErrUpstream):
		return ErrorKindUpstream
	default:
		return ErrorKindUnknown
	}
}
