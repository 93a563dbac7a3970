package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, log.InfoLevel, lvl)

	lvl, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	require.Equal(t, log.DebugLevel, lvl)

	_, err = ParseLevel("verbose")
	require.Error(t, err)
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "phase", "Work")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
	require.Contains(t, out, "phase=Work")
}

func TestOpenAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pomotui.log")
	logger, closer, err := Open(path, "info")
	require.NoError(t, err)
	logger.Info("phase started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "phase started")
}

func TestOrDiscard(t *testing.T) {
	require.NotNil(t, OrDiscard(nil))
	logger := Discard()
	require.Same(t, logger, OrDiscard(logger))
}
