package cache

import (
	"errors"
	"fmt"
	"ghfetch/logging"
	"io"
	"os"
	"path/filepath"
)

// Manager handles the on-disk cache of downloaded release assets
type Manager struct{}

// NewManager creates a new Manager instance
func NewManager() *Manager {
	return &Manager{}
}

// PrepareReleaseDirectory prepares the per-release cache directory
// (<cacheDir>/<owner>/<repo>/<tag>)
func (m *Manager) PrepareReleaseDirectory(owner, repo, tag, cacheDir string) (string, error) {
	cachePath := filepath.Join(cacheDir, owner, repo, tag)
	if err := os.MkdirAll(cachePath, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}
	return cachePath, nil
}

// CleanupRelease removes a per-release cache directory unless keepCache is set.
// Used to discard partial state after a failed fetch.
func (m *Manager) CleanupRelease(cachePath string, keepCache bool) error {
	if !keepCache {
		logging.LogDebug("🧹 Cleaning up cache directory: %s", cachePath)
		return m.cleanupCacheDirectory(cachePath)
	}
	return nil
}

func (m *Manager) cleanupCacheDirectory(cachePath string) error {
	if err := os.RemoveAll(cachePath); err != nil {
		return fmt.Errorf("failed to remove cache directory: %w", err)
	}

	// Clean up empty parent directories
	parent := filepath.Dir(cachePath)
	for parent != filepath.Dir(parent) {
		if empty, err := m.isDirEmpty(parent); err != nil || !empty {
			break
		}
		if err := os.Remove(parent); err != nil {
			break
		}
		parent = filepath.Dir(parent)
	}
	return nil
}

func (m *Manager) isDirEmpty(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if err == nil {
		return false, nil // Directory not empty
	}
	if errors.Is(err, io.EOF) {
		return true, nil // Directory empty
	}
	return false, fmt.Errorf("failed to check if directory is empty: %w", err)
}

// Purge removes everything under the cache root, keeping the root itself
func (m *Manager) Purge(cacheDir string) error {
	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, entry := range entries {
		path := filepath.Join(cacheDir, entry.Name())
		logging.LogDebug("🧹 Removing %s", path)
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}
