package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, initTo(Config{Level: "info", Format: "json", ServiceName: "sentinel", Version: "test"}, &buf))
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	log.Debug().Msg("hidden")
	log.Info().Str("symbol", "AAPL").Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"symbol":"AAPL"`)
	assert.Contains(t, out, `"service":"sentinel"`)
}

func TestInit_InvalidLevel(t *testing.T) {
	err := initTo(Config{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestInit_FileOutputSplitsErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, initTo(Config{Level: "debug", FileEnabled: true, FilePath: dir}, &bytes.Buffer{}))
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	log.Info().Msg("routine")
	log.Error().Msg("broken")

	app, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(app), "routine")
	assert.Contains(t, string(app), "broken")

	errs, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(errs), "routine")
	assert.Contains(t, string(errs), "broken")
}

func TestMinLevelWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &minLevelWriter{w: &buf, min: zerolog.WarnLevel}

	n, err := w.WriteLevel(zerolog.InfoLevel, []byte("info"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	_, _ = w.WriteLevel(zerolog.WarnLevel, []byte("warn"))
	assert.Equal(t, "warn", buf.String())
}
