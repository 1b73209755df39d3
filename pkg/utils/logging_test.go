package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLoggerTeesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "train.log")
	l, err := NewLogger("info", path)
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("stage done", zap.String("stage", "clean"))
	_ = l.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)
	assert.Contains(t, out, `"msg":"stage done"`)
	assert.Contains(t, out, `"stage":"clean"`)
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestNewLoggerLevels(t *testing.T) {
	l, err := NewLogger("", "")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.InfoLevel))
	assert.False(t, l.Core().Enabled(zap.DebugLevel))

	l, err = NewLogger("debug", "")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	_, err = NewLogger("chatty", "")
	assert.Error(t, err)
	assert.NotNil(t, MustLogger("chatty", ""))
}
