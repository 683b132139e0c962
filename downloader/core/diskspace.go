package core

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// CheckDiskSpace verifies that the filesystem holding directory has at least
// fileSize bytes available. A zero or unknown fileSize skips the check (the
// API does not always report asset sizes).
func CheckDiskSpace(fileSize int64, directory string) error {
	if fileSize <= 0 {
		return nil
	}

	var stat unix.Statfs_t
	if err := unix.Statfs(directory, &stat); err != nil {
		return fmt.Errorf("failed to stat filesystem for %s: %w", directory, err)
	}

	available := int64(stat.Bavail) * int64(stat.Bsize)
	if available < fileSize {
		return fmt.Errorf("not enough disk space in %s: need %d bytes, %d available",
			directory, fileSize, available)
	}

	return nil
}
