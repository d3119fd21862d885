//go:build unit
// +build unit

package logger

import (
	"bytes"
	"testing"

	"github.com/arokys4/rsa-project/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newTextLogger(&buf, config.LogLevelWarning)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestTextLogger_JoinsArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := newTextLogger(&buf, config.LogLevelDebug)

	logger.Info("Saved RSA public key ", "rsa_key.pub")

	assert.Contains(t, buf.String(), "Saved RSA public key rsa_key.pub")
}

func TestTextLogger_Panic(t *testing.T) {
	var buf bytes.Buffer
	logger := newTextLogger(&buf, config.LogLevelInfo)

	assert.PanicsWithValue(t, "boom", func() {
		logger.Panic("boom")
	})
	assert.Contains(t, buf.String(), "boom")
}

func TestNewConsoleLogger(t *testing.T) {
	logger := NewConsoleLogger(config.LogLevelInfo)
	require.NotNil(t, logger)

	require.NotPanics(t, func() {
		logger.Info("test")
		logger.Warn("test")
		logger.Error("test")
	})
}
