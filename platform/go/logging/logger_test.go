package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(Config{Component: "sweeper", Level: "debug", Output: &buf})
	require.NoError(t, err)

	logger.Warn("setup failed", zap.String("site_id", "abc"))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "WARNING", entry["severity"])
	require.Equal(t, "sweeper", entry["component"])
	require.Equal(t, "abc", entry["site_id"])
	require.Equal(t, "setup failed", entry["message"])
}

func TestNewLoggerRejectsBadInput(t *testing.T) {
	_, err := NewLogger(Config{Level: "loud"})
	require.Error(t, err)

	_, err = NewLogger(Config{Format: "xml"})
	var formatErr *UnknownFormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(Config{Level: "error", Format: "console", Output: &buf})
	require.NoError(t, err)

	logger.Info("hidden")
	require.Zero(t, buf.Len())
}

func TestFromContextOr(t *testing.T) {
	fallback := zap.NewExample()
	require.Same(t, fallback, FromContextOr(context.Background(), fallback))
	require.NotNil(t, FromContextOr(context.Background(), nil))

	scoped := zap.NewNop()
	ctx := WithLogger(context.Background(), scoped)
	require.Same(t, scoped, FromContextOr(ctx, fallback))
}
