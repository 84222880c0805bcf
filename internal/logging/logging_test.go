package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewDisabled(t *testing.T) {
	l, err := New("", "debug", true)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewWritesToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "ccauto.log")
	l, err := New(p, "warn", false)
	require.NoError(t, err)

	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	l.Warn("fallback in use")
	_ = l.Sync()

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "fallback in use")
	assert.Contains(t, string(b), `"service":"ccauto"`)
}

func TestVerboseForcesDebug(t *testing.T) {
	l, err := New(filepath.Join(t.TempDir(), "x.log"), "error", true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}
