package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_ProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "bg-companion-api", "production")
	buf.Reset()

	LogError(logger, "store failed", errors.New("conn reset"), logrus.Fields{"user_id": "u-1"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "store failed", entry["msg"])
	assert.Equal(t, "conn reset", entry["error"])
	assert.Equal(t, "u-1", entry["user_id"])
	assert.Equal(t, "error", entry["level"])
}

func TestNewLogger_DevelopmentIsText(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "bg-companion-api", "development")

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.True(t, strings.Contains(buf.String(), "logger initialized"))
	assert.False(t, strings.HasPrefix(buf.String(), "{"))
}

func TestLogHelpers_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogError(nil, "x", errors.New("y"), nil)
		LogInfo(nil, "x", nil)
	})
}
