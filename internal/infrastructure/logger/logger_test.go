package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: "json", ServiceName: "fare-discovery"}, &buf)

	log.Info().Str("origin", "YVR").Msg("search started")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "fare-discovery", entry["service"])
	assert.Equal(t, "YVR", entry["origin"])
	assert.Equal(t, "search started", entry["message"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "warn", Format: "json"}, &buf)

	log.Info().Msg("dropped")
	assert.Empty(t, buf.String())

	log.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "shouting", Format: "json"}, &buf)

	log.Debug().Msg("dropped")
	assert.Empty(t, buf.String())

	log.Info().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNew_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: "console"}, &buf)

	log.Info().Msg("console output")
	assert.Contains(t, buf.String(), "console output")
	assert.NotContains(t, buf.String(), `"message"`, "console format is not JSON")
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: "json"}, &buf)

	log.WithRequestID("req-123").WithStage("pricing").Info().Msg("pair failed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "pricing", entry["stage"])
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Error().Msg("discarded")
	})
}
