package cmd

import (
	"fmt"
	"ghfetch/downloader/cache"
	"ghfetch/logging"
	"os"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all cached release assets",
	Long: `Remove all cached release assets. This command will:
1. List the contents of the cache directory
2. Delete every cached owner/repo/tag entry
3. Keep the cache directory itself in place`,
	Run: clean,
}

func clean(cmd *cobra.Command, args []string) {
	if err := handleClean(); err != nil {
		ExitWithError(err)
	}
}

func handleClean() error {
	if cfg == nil {
		return fmt.Errorf("configuration is not loaded")
	}

	cacheDir := cfg.General.CacheDir

	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			logging.LogInfo("ℹ️  Cache directory does not exist, nothing to clean")
			return nil
		}
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	if len(entries) == 0 {
		logging.LogInfo("ℹ️  Cache is already empty")
		return nil
	}

	manager := cache.NewManager()
	if err := manager.Purge(cacheDir); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}

	logging.LogInfo("✅ Removed %d cached entr%s from %s", len(entries), pluralY(len(entries)), cacheDir)
	return nil
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
