package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	var buf bytes.Buffer

	logger := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})
	logger.Debug("hidden")
	logger.Info("質問を受け付けました", "requestID", "r-1")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "質問を受け付けました", record["msg"])
	assert.Equal(t, "r-1", record["requestID"])
}

func TestNew_Text(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	var buf bytes.Buffer

	New(Config{Level: slog.LevelDebug, Format: "text", Writer: &buf}).Debug("debug line")

	assert.Contains(t, buf.String(), "msg=\"debug line\"")
}
