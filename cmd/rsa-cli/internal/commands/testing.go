//go:build unit || integration
// +build unit integration

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTestConfig writes a quiet configuration whose keystore lives in a temporary directory
func writeTestConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	content := `
logger:
  log_level: error
  log_type: console
engine:
  key_bits: 128
  miller_rabin_rounds: 20
database:
  type: sqlite
  dsn: ` + filepath.Join(dir, "keystore.db") + `
  name: test_keystore
`
	path := filepath.Join(dir, "cli.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// runCommand executes the command tree with args and returns its stdout
func runCommand(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd := NewRootCommand()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", configPath}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}
