package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Level: zerolog.DebugLevel, Output: &buf})
	return logg, &buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestInfoCarriesContextFields(t *testing.T) {
	logg, buf := capture(t)

	ctx := logg.WithRequestID(context.Background(), "req-1")
	ctx = logg.WithUserID(ctx, "user-1")
	logg.Info(ctx, "hello")

	entry := lastLine(t, buf)
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "user-1", entry["user_id"])
	assert.Equal(t, "test", entry["service"])
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	logg, buf := capture(t)

	base := context.Background()
	_ = logg.WithFields(base, map[string]any{"order_no": "Y123"})

	logg.Info(base, "plain")
	entry := lastLine(t, buf)
	_, present := entry["order_no"]
	assert.False(t, present)
}

func TestErrorIncludesStackAndCause(t *testing.T) {
	logg, buf := capture(t)

	logg.Error(context.Background(), "boom", errors.New("cause here"))

	entry := lastLine(t, buf)
	assert.Equal(t, "boom", entry["message"])
	assert.Equal(t, "cause here", entry["error"])
	assert.NotEmpty(t, entry["stack"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("bogus"))
}
