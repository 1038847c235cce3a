package correlation

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()

	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}

func TestIDRoundtrip(t *testing.T) {
	ctx := WithID(context.Background(), "abc12345")

	id, ok := ID(ctx)
	require.True(t, ok)
	assert.Equal(t, "abc12345", id)
}

func TestIDAbsent(t *testing.T) {
	_, ok := ID(context.Background())
	assert.False(t, ok)

	_, ok = ID(WithID(context.Background(), ""))
	assert.False(t, ok)
}

func TestHandlerStampsRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewTextHandler(&buf, nil)))

	ctx := WithID(context.Background(), "deadbeef")
	logger.InfoContext(ctx, "hello")

	assert.Contains(t, buf.String(), "correlation_id=deadbeef")
}

func TestHandlerPassesThroughWithoutID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), "correlation_id")
}
