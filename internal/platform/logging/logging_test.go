package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewTagsServiceAndEnv(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "wallet-ledger", Env(true))

	logger.Debug("hidden")
	logger.Info("visible", slog.String("k", "v"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "visible", line["msg"])
	assert.Equal(t, "wallet-ledger", line["service"])
	assert.Equal(t, "production", line["env"])
	assert.Equal(t, "v", line["k"])
}
