package util

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_ProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production")

	logger.Info("hello", "plant", "fern")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "fern", entry["plant"])
	assert.Equal(t, "plantnet", entry["service"])
}

func TestNewLogger_DevelopmentLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "development")

	logger.Debug("details")

	assert.Contains(t, buf.String(), "details")
}
