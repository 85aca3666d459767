package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/segyhp/fintrack/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(config.LoggingConfig{Level: "debug", Format: "json"}, &buf)

	log.WithField("year", 2021).Info("cache hit")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "cache hit", entry["msg"])
	assert.Equal(t, float64(2021), entry["year"])
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNewWithOutput_FallbackLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(config.LoggingConfig{Level: "chatty", Format: "text"}, &buf)

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	log.Debug("hidden")
	assert.Empty(t, buf.String())
}
