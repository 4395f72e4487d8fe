package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olivier-w/folio/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestGetLoggerBeforeInitializeIsNop(t *testing.T) {
	ResetForTest()
	logger := GetLogger()
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestInitializeWritesConsoleAtConfiguredLevel(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	Initialize(config.LoggerConfig{Level: "warn", Format: "json", ServiceName: "folio"}, zapcore.AddSync(&buf))

	GetLogger().Info("hidden")
	GetLogger().Warn("shown", zap.Int("particles", 3))
	Sync()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "folio", entry["logger"])
	assert.EqualValues(t, 3, entry["particles"])
}

func TestInitializeRunsOnce(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var first, second bytes.Buffer
	Initialize(config.LoggerConfig{Level: "info", Format: "json"}, zapcore.AddSync(&first))
	Initialize(config.LoggerConfig{Level: "info", Format: "json"}, zapcore.AddSync(&second))

	GetLogger().Info("hello")
	assert.Contains(t, first.String(), "hello")
	assert.Empty(t, second.String())
}

func TestInitializeQuietWritesOnlyToFile(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	path := filepath.Join(t.TempDir(), "folio.log")
	InitializeQuiet(config.LoggerConfig{Level: "debug", Format: "console", LogFile: path, MaxSize: 1})

	GetLogger().Debug("frame", zap.Uint64("n", 7))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"frame"`)
	assert.Contains(t, string(data), `"n":7`)
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	Initialize(config.LoggerConfig{Level: "loud", Format: "console"}, zapcore.AddSync(&buf))
	assert.True(t, GetLogger().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, GetLogger().Core().Enabled(zapcore.DebugLevel))
}
