package credential

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	key, err := Static("sk-static").Credential(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "sk-static", key)
}

func TestEnv(t *testing.T) {
	t.Setenv("GPT3_RELAY_TEST_KEY", "sk-env")
	source := Env("GPT3_RELAY_TEST_KEY")

	key, err := source.Credential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sk-env", key)

	// 呼び出し時点の値を読む
	t.Setenv("GPT3_RELAY_TEST_KEY", "sk-rotated")
	key, err = source.Credential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sk-rotated", key)
}

func TestEnv_Unset(t *testing.T) {
	key, err := Env("GPT3_RELAY_TEST_UNSET_KEY").Credential(context.Background())

	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestTerminal_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTerminal().Credential(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
