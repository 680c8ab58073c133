package observability

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"github.com/softpare/weblint/internal/config"
)

// testWriter provides a captured WriteSyncer and resets the global logger
// singleton after the test, since Initialize runs only once per process.
func testWriter(t *testing.T) *zaptest.Buffer {
	t.Helper()
	t.Cleanup(ResetForTest)
	return &zaptest.Buffer{}
}

func TestInitializeJSONFormat(t *testing.T) {
	buf := testWriter(t)
	Initialize(config.LoggerConfig{
		Level:       "debug",
		Format:      "json",
		ServiceName: "test-weblint",
	}, zapcore.Lock(buf))

	GetLogger().Info("hello", zap.String("key", "value"))

	lines := buf.Lines()
	require.NotEmpty(t, lines)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "test-weblint", entry["logger"])
}

func TestInitializeConsoleFormat(t *testing.T) {
	buf := testWriter(t)
	Initialize(config.LoggerConfig{
		Level:       "info",
		Format:      "console",
		ServiceName: "test-weblint",
	}, zapcore.Lock(buf))

	logger := GetLogger().Named("linter")
	logger.Info("lint run completed")
	logger.Debug("suppressed at info level")

	out := buf.String()
	assert.Contains(t, out, "lint run completed")
	assert.Contains(t, out, "test-weblint.linter.")
	assert.False(t, strings.Contains(out, "suppressed at info level"))
}

func TestInitializeInvalidLevelFallsBack(t *testing.T) {
	buf := testWriter(t)
	Initialize(config.LoggerConfig{
		Level:       "not-a-level",
		Format:      "json",
		ServiceName: "test-weblint",
	}, zapcore.Lock(buf))

	GetLogger().Debug("below info, dropped")
	GetLogger().Info("at info, kept")

	out := buf.String()
	assert.NotContains(t, out, "below info, dropped")
	assert.Contains(t, out, "at info, kept")
}

func TestGetLoggerBeforeInitialize(t *testing.T) {
	t.Cleanup(ResetForTest)
	ResetForTest()

	// Must not panic; returns a usable fallback.
	require.NotNil(t, GetLogger())
}
