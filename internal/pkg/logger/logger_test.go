package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", "json", &buf).With("session", "s-1")

	log.Info("Vehicle parked", map[string]interface{}{
		"slot_id":       4,
		"license_plate": "AAA111",
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Vehicle parked", entry["message"])
	assert.Equal(t, "s-1", entry["session"])
	assert.Equal(t, "AAA111", entry["license_plate"])
	assert.EqualValues(t, 4, entry["slot_id"])
}

func TestNewWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("warn", "json", &buf)

	log.Debug("hidden")
	log.Info("hidden")
	assert.Zero(t, buf.Len())

	log.Warn("shown")
	assert.True(t, strings.Contains(buf.String(), "shown"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("unknown"))
}

func TestNewNoop_Disabled(t *testing.T) {
	log := NewNoop()

	zl, ok := log.(*zerologLogger)
	require.True(t, ok)
	assert.Equal(t, zerolog.Disabled, zl.logger.GetLevel())

	// вызовы не должны паниковать и ничего не пишут
	log.With("k", "v").Info("ignored", map[string]interface{}{"a": 1})
	log.Error("ignored")
}
