package unit

import (
	"ghfetch/logging"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRedactsRegisteredSecrets(t *testing.T) {
	logDir := t.TempDir()

	logging.AddSecret("tok_secret_xyz")

	// A message buffered before initialization must be redacted too
	logging.PreLog("INFO", "🔐 Using token tok_secret_xyz for authentication")

	require.NoError(t, logging.InitLogger(logDir, "DEBUG", false))

	logging.LogInfo("📡 Fetching with token tok_secret_xyz")
	logging.LogDebug("request header Authorization: token tok_secret_xyz")

	data, err := os.ReadFile(filepath.Join(logDir, "ghfetch.log"))
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "****")
	assert.NotContains(t, content, "tok_secret_xyz")
}

func TestRedact(t *testing.T) {
	logging.AddSecret("tok_json_secret")

	out := logging.Redact(`failed to fetch: token "tok_json_secret" rejected`)
	assert.NotContains(t, out, "tok_json_secret")
	assert.Contains(t, out, "****")

	// Text without a registered secret passes through unchanged
	assert.Equal(t, "plain message", logging.Redact("plain message"))
}
