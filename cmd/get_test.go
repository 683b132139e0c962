package cmd

import (
	"errors"
	"ghfetch/config"
	"ghfetch/release"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleGetMissingCredential(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	cfg = &config.Config{General: config.GeneralConfig{
		CacheDir: t.TempDir(),
		TokenEnv: "GHFETCH_TEST_MISSING_TOKEN",
		APIURL:   server.URL,
	}}
	t.Setenv("GHFETCH_TEST_MISSING_TOKEN", "")

	err := handleGet("https://github.com/acme/tool/releases/download/v1.2.0/tool-linux.tar.gz")
	require.Error(t, err)

	var credErr *release.MissingCredentialError
	require.True(t, errors.As(err, &credErr))

	// The credential check happens before any network call
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestHandleGetInvalidURL(t *testing.T) {
	cfg = &config.Config{General: config.GeneralConfig{
		CacheDir: t.TempDir(),
		TokenEnv: "GHFETCH_TEST_MISSING_TOKEN",
		APIURL:   "https://api.github.com",
	}}

	err := handleGet("https://github.com/acme/tool/releases/tag/v1.2.0")
	require.Error(t, err)

	var patternErr *release.InvalidURLPatternError
	require.True(t, errors.As(err, &patternErr))
}
