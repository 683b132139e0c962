package unit

import (
	"ghfetch/downloader/cache"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDirEmpty(t *testing.T) {
	// Create temporary directory
	tmpDir := t.TempDir()

	// Test 1: Empty directory
	emptyDir := filepath.Join(tmpDir, "empty")
	err := os.Mkdir(emptyDir, 0755)
	require.NoError(t, err)

	f, err := os.Open(emptyDir)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Readdirnames(1)
	assert.Error(t, err)
	// Main test: verify that it's io.EOF
	assert.ErrorIs(t, err, io.EOF)

	// Test 2: Non-empty directory
	nonEmptyDir := filepath.Join(tmpDir, "nonempty")
	err = os.Mkdir(nonEmptyDir, 0755)
	require.NoError(t, err)

	// Create a file inside
	testFile := filepath.Join(nonEmptyDir, "test.txt")
	err = os.WriteFile(testFile, []byte("test"), 0644)
	require.NoError(t, err)

	f2, err := os.Open(nonEmptyDir)
	require.NoError(t, err)
	defer f2.Close()

	_, err = f2.Readdirnames(1)
	assert.NoError(t, err) // No error if not empty
}

func TestPrepareReleaseDirectory(t *testing.T) {
	cacheDir := t.TempDir()
	manager := cache.NewManager()

	cachePath, err := manager.PrepareReleaseDirectory("acme", "tool", "v1.2.0", cacheDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cacheDir, "acme", "tool", "v1.2.0"), cachePath)
	info, err := os.Stat(cachePath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCleanupReleasePrunesEmptyParents(t *testing.T) {
	cacheDir := t.TempDir()
	manager := cache.NewManager()

	cachePath, err := manager.PrepareReleaseDirectory("acme", "tool", "v1.2.0", cacheDir)
	require.NoError(t, err)

	err = manager.CleanupRelease(cachePath, false)
	require.NoError(t, err)

	// The release directory and its now-empty parents are gone
	_, err = os.Stat(cachePath)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(cacheDir, "acme"))
	assert.True(t, os.IsNotExist(err))
}

func TestCleanupReleaseKeepCache(t *testing.T) {
	cacheDir := t.TempDir()
	manager := cache.NewManager()

	cachePath, err := manager.PrepareReleaseDirectory("acme", "tool", "v1.2.0", cacheDir)
	require.NoError(t, err)

	err = manager.CleanupRelease(cachePath, true)
	require.NoError(t, err)

	// keep_cache leaves the directory in place
	_, err = os.Stat(cachePath)
	assert.NoError(t, err)
}

func TestPurge(t *testing.T) {
	cacheDir := t.TempDir()
	manager := cache.NewManager()

	_, err := manager.PrepareReleaseDirectory("acme", "tool", "v1.2.0", cacheDir)
	require.NoError(t, err)
	_, err = manager.PrepareReleaseDirectory("other", "repo", "v2", cacheDir)
	require.NoError(t, err)

	err = manager.Purge(cacheDir)
	require.NoError(t, err)

	// The cache root survives, its contents do not
	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
