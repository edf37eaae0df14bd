package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewLogger_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer

	logger := newLogger(&buf, "library", "production")

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "library", line["app"])
	assert.Equal(t, "logger initialized", line["msg"])
}

func Test_NewLogger_DevelopmentIsVerbose(t *testing.T) {
	var buf bytes.Buffer

	logger := newLogger(&buf, "library", "development")

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), "logger initialized")
}

func Test_LogError_AddsErrorField(t *testing.T) {
	logger, hook := test.NewNullLogger()

	LogError(logger, "count books failed", errors.New("timeout"), logrus.Fields{"op": "dashboard"})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "timeout", entry.Data["error"])
	assert.Equal(t, "dashboard", entry.Data["op"])
}

func Test_NewLogger_StampsEveryEntry(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "library-worker", "production")
	buf.Reset()

	logger.WithField("env", "override").Info("consumer started")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "library-worker", line["app"])
	assert.Equal(t, "override", line["env"])
}
