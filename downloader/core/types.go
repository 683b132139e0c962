package core

// FetchOptions contains options for a single asset fetch
type FetchOptions struct {
	// CacheDir is the cache root; the asset lands under
	// <CacheDir>/<owner>/<repo>/<tag>/<filename> unless FinalPath is set.
	CacheDir string

	// FinalPath overrides the destination of the downloaded asset
	FinalPath string

	// TempPath overrides the temporary download path. Defaults to
	// <final path>.incomplete. Each invocation must use a unique path.
	TempPath string

	// KeepCache keeps the per-release cache directory after a failed fetch
	KeepCache bool

	// Force re-downloads even if the destination file already exists
	Force bool

	// Extract unpacks recognized archive assets next to the cached file
	Extract bool
}
