package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	return entry
}

func TestNewLogger_Fields(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	var buf bytes.Buffer
	l := NewLogger("server", "")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "server", entry["role"])
	assert.Equal(t, "hello", entry["message"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

func TestNewLogger_Level(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	NewLogger("server", "warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	NewLogger("server", "")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{in: "", want: zerolog.DebugLevel},
		{in: "info", want: zerolog.InfoLevel},
		{in: "error", want: zerolog.ErrorLevel},
		{in: "nonsense", want: zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNop(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("dropped")

	assert.Empty(t, buf.String())
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{zerolog.New(&buf).With().Str("role", "server").Logger()}

	child := parent.Component("store")
	require.NotSame(t, parent, child)

	child.Info().Msg("child")
	entry := decodeEntry(t, &buf)
	assert.Equal(t, "server", entry["role"])
	assert.Equal(t, "store", entry["component"])

	buf.Reset()
	parent.Info().Msg("parent")
	assert.NotContains(t, decodeEntry(t, &buf), "component")
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "abc").Logger()

	t.Run("attached logger", func(t *testing.T) {
		buf.Reset()
		FromContext(zl.WithContext(context.Background())).Info().Msg("ctx")
		assert.Equal(t, "abc", decodeEntry(t, &buf)["trace_id"])
	})

	t.Run("request context", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		FromRequest(req.WithContext(zl.WithContext(req.Context()))).Info().Msg("req")
		assert.Equal(t, "abc", decodeEntry(t, &buf)["trace_id"])
	})

	t.Run("nothing attached", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
		require.NotNil(t, FromRequest(httptest.NewRequest(http.MethodGet, "/", nil)))
	})
}

func TestNewFileLogger(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	path := filepath.Join(t.TempDir(), "client.log")

	l, closer, err := NewFileLogger("client", "", path)
	require.NoError(t, err)
	l.Info().Msg("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	entry := decodeEntry(t, bytes.NewBuffer(data))
	assert.Equal(t, "client", entry["role"])
	assert.Equal(t, "to file", entry["message"])

	_, _, err = NewFileLogger("client", "", filepath.Join(t.TempDir(), "missing", "client.log"))
	require.Error(t, err)
}
