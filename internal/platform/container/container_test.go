package container

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/gpt3-relay/internal/core/blocks"
	"github.com/jinford/gpt3-relay/internal/core/relay"
	"github.com/jinford/gpt3-relay/internal/infra/credential"
	"github.com/jinford/gpt3-relay/internal/infra/openai"
	"github.com/jinford/gpt3-relay/internal/platform/config"
)

type stubClient struct {
	lastRequest relay.CompletionRequest
}

func (c *stubClient) Complete(ctx context.Context, req relay.CompletionRequest) (relay.CompletionResponse, error) {
	c.lastRequest = req
	return relay.CompletionResponse{Text: "ok"}, nil
}

func newTestConfig() *config.Config {
	return &config.Config{
		OpenAI: config.OpenAIConfig{Model: "gpt-3.5-turbo-instruct"},
		Server: config.ServerConfig{Addr: ":0"},
		Log:    config.LogConfig{Level: slog.LevelInfo, Format: "json"},
	}
}

func testOptions(client relay.CompletionClient, extra ...ContainerOption) []ContainerOption {
	return append([]ContainerOption{
		WithContainerLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithContainerCompletionClient(client),
		WithContainerTokenCounter(openai.EstimatingCounter{}),
	}, extra...)
}

func TestNewContainer_RequiresConfig(t *testing.T) {
	_, err := NewContainer(nil)

	assert.Error(t, err)
}

func TestNewContainer_StartsWithoutCredential(t *testing.T) {
	cont, err := NewContainer(newTestConfig(), testOptions(&stubClient{})...)
	require.NoError(t, err)
	defer cont.Close()

	assert.False(t, cont.Relay.HasCredential())
	assert.Equal(t, relay.GuidanceMessage, cont.Relay.Ask(context.Background(), "hello"))
}

func TestNewContainer_UsesConfiguredCredentialAndModel(t *testing.T) {
	cfg := newTestConfig()
	cfg.OpenAI.APIKey = "sk-config"
	client := &stubClient{}

	cont, err := NewContainer(cfg, testOptions(client)...)
	require.NoError(t, err)

	assert.Equal(t, "ok", cont.Relay.Ask(context.Background(), "hello"))
	assert.Equal(t, "sk-config", client.lastRequest.APIKey)
	assert.Equal(t, "gpt-3.5-turbo-instruct", client.lastRequest.Model)
}

func TestNewContainer_ExtensionUsesCredentialSource(t *testing.T) {
	cont, err := NewContainer(newTestConfig(), testOptions(&stubClient{},
		WithContainerCredentialSource(credential.Static("sk-static")),
	)...)
	require.NoError(t, err)

	_, err = cont.Extension.Execute(context.Background(), blocks.OpcodeSetAPIKey, nil)
	require.NoError(t, err)

	assert.Equal(t, "sk-static", cont.Relay.Credential())
	assert.NotNil(t, cont.Logger())
}
