// Package testutil holds helpers shared by the unit and integration tests.
package testutil

import (
	"testing"

	"github.com/arokys4/rsa-project/internal/pkg/config"
	"github.com/arokys4/rsa-project/internal/pkg/logger"
	"github.com/stretchr/testify/require"
)

// SetupTestLogger initializes the process logger on the console and returns it.
// Tests in one binary share the instance, so only the first settings apply.
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelWarning,
		LogType:  config.LogTypeConsole,
	}

	require.NoError(t, logger.InitLogger(settings))

	log, err := logger.GetLogger()
	require.NoError(t, err)

	return log
}
