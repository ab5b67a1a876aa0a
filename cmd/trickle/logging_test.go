package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("log file receives json", func(t *testing.T) {
		t.Parallel()
		var file, stderr bytes.Buffer
		logger := newLogger(slog.LevelInfo, &file, &stderr, false, true)
		logger.Info("hello", "n", 1)

		var rec map[string]any
		require.NoError(t, json.Unmarshal(file.Bytes(), &rec))
		assert.Equal(t, "hello", rec["msg"])
		assert.Empty(t, stderr.String())
	})

	t.Run("print mode logs to stderr", func(t *testing.T) {
		t.Parallel()
		var stderr bytes.Buffer
		logger := newLogger(slog.LevelWarn, nil, &stderr, false, false)
		logger.Info("quiet")
		logger.Warn("dropping frame", "type", "tool")

		out := stderr.String()
		assert.NotContains(t, out, "quiet")
		assert.Contains(t, out, "dropping frame")
		assert.Contains(t, out, "type=tool")
		assert.NotContains(t, out, "\x1b[")
	})

	t.Run("tui without log file discards", func(t *testing.T) {
		t.Parallel()
		var stderr bytes.Buffer
		logger := newLogger(slog.LevelDebug, nil, &stderr, false, true)
		logger.Error("boom")
		assert.Empty(t, stderr.String())
	})
}

func TestOpenLogFile(t *testing.T) {
	t.Parallel()

	f, err := openLogFile("")
	require.NoError(t, err)
	assert.Nil(t, f)

	path := filepath.Join(t.TempDir(), "trickle.log")
	f, err = openLogFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("x")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))

	_, err = openLogFile(filepath.Join(t.TempDir(), "missing", "dir", "log"))
	assert.Error(t, err)
}
