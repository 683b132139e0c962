package downloader

import (
	"fmt"
	"ghfetch/downloader/cache"
	"ghfetch/downloader/core"
	"ghfetch/downloader/network"
	"ghfetch/logging"
	"ghfetch/release"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
)

// Manager orchestrates a single release asset fetch: asset id resolution,
// authenticated transfer to a temporary path, and atomic move into the
// final cache location. No retries happen at this layer; a failed attempt
// is a single reported failure.
type Manager struct {
	api       *release.Client
	network   *network.Client
	cache     *cache.Manager
	validator *core.Validator
	extractor *Extractor
}

// NewManager creates a new Manager instance.
// The transfer timeout bounds only the binary download; the metadata lookup
// carries the API client's own fixed timeout.
func NewManager(apiBaseURL, token string, timeout time.Duration) *Manager {
	return &Manager{
		api:       release.NewClient(apiBaseURL, token),
		network:   network.NewClient(token, timeout),
		cache:     cache.NewManager(),
		validator: core.NewValidator(),
		extractor: NewExtractor(),
	}
}

// Fetch downloads the asset identified by target and returns the final path.
// The asset lands under <CacheDir>/<owner>/<repo>/<tag>/<filename> unless
// opts.FinalPath overrides the destination.
func (m *Manager) Fetch(target release.Target, opts core.FetchOptions) (string, error) {
	logging.LogDebug("🔍 Starting fetch of %s from %s/%s@%s",
		target.Filename, target.Owner, target.Repo, target.Tag)

	// Resolve the asset id behind the tag/filename pair
	asset, err := m.api.FindAsset(target)
	if err != nil {
		return "", err
	}

	// Determine destination paths
	var finalPath, cachePath string
	if opts.FinalPath != "" {
		finalPath = opts.FinalPath
		if err := m.validator.ValidateDirectories(filepath.Dir(finalPath)); err != nil {
			return "", fmt.Errorf("failed to prepare destination directory: %w", err)
		}
	} else {
		cachePath, err = m.cache.PrepareReleaseDirectory(target.Owner, target.Repo, target.Tag, opts.CacheDir)
		if err != nil {
			return "", fmt.Errorf("failed to prepare cache: %w", err)
		}
		finalPath = filepath.Join(cachePath, target.Filename)
	}

	// A previously cached asset is reused unless the caller forces a re-fetch
	if !opts.Force {
		if _, err := os.Stat(finalPath); err == nil {
			logging.LogInfo("✅ Asset already cached at %s", finalPath)
			return finalPath, nil
		}
	}

	// Validate available space using the size reported by the API
	if err := m.validator.ValidateSpace(asset.Size, filepath.Dir(finalPath)); err != nil {
		return "", fmt.Errorf("destination space check failed: %w", err)
	}

	tempPath := opts.TempPath
	if tempPath == "" {
		tempPath = finalPath + ".incomplete"
	}

	// Transfer the binary to the temporary path
	assetURL := m.api.AssetURL(target.Owner, target.Repo, asset.ID)
	if err := m.network.DownloadAsset(assetURL, tempPath); err != nil {
		os.Remove(tempPath)
		if cachePath != "" {
			if cleanupErr := m.cache.CleanupRelease(cachePath, opts.KeepCache); cleanupErr != nil {
				logging.LogDebug("⚠️ Cache cleanup failed: %v", cleanupErr)
			}
		}
		return "", &release.DownloadError{Filename: target.Filename, Tag: target.Tag, Err: err}
	}

	// Move the completed download into place
	if err := finalizeAsset(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return "", &release.DownloadError{Filename: target.Filename, Tag: target.Tag,
			Err: fmt.Errorf("failed to finalize download: %w", err)}
	}

	// Record what was fetched next to the cached asset
	if cachePath != "" {
		meta := AssetMetadata{
			Owner:     target.Owner,
			Repo:      target.Repo,
			Tag:       target.Tag,
			AssetName: asset.Name,
			AssetID:   asset.ID,
			Size:      asset.Size,
		}
		if err := SaveMetadata(cachePath, meta); err != nil {
			logging.LogDebug("⚠️ Failed to write metadata: %v", err)
		}
	}

	if opts.Extract && m.extractor.IsArchive(finalPath) {
		if err := m.extractor.Extract(finalPath, filepath.Dir(finalPath)); err != nil {
			return "", fmt.Errorf("extraction failed: %w", err)
		}
		logging.LogInfo("📦 Extracted %s", filepath.Base(finalPath))
	}

	logging.LogInfo("✅ Successfully fetched %s (asset id %d)", target.Filename, asset.ID)
	return finalPath, nil
}

// finalizeAsset moves the temporary file into its final location.
// Interrupt signals are deferred for the duration of the rename and
// re-delivered afterwards: a completed download must never leave the cache
// holding a half-renamed or missing file.
func finalizeAsset(tempPath, finalPath string) error {
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	err := os.Rename(tempPath, finalPath)

	// Stop notification before draining: anything still buffered afterwards
	// arrived during the rename and must be re-delivered, and no new signal
	// can slip into the channel once Stop has returned.
	signal.Stop(sigs)
	redeliverPending(sigs)

	return err
}

// redeliverPending forwards any buffered deferred signals to the current
// process. Callers must have already stopped notification on sigs.
func redeliverPending(sigs chan os.Signal) {
	for {
		select {
		case sig := <-sigs:
			if p, err := os.FindProcess(os.Getpid()); err == nil {
				_ = p.Signal(sig)
			}
		default:
			return
		}
	}
}
