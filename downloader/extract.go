package downloader

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"ghfetch/logging"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// Extractor unpacks downloaded archive assets
type Extractor struct{}

// NewExtractor creates a new Extractor instance
func NewExtractor() *Extractor {
	return &Extractor{}
}

// IsArchive reports whether the filename has a recognized archive extension
func (e *Extractor) IsArchive(filename string) bool {
	lower := strings.ToLower(filename)
	for _, suffix := range []string{".tar.gz", ".tgz", ".tar.xz", ".txz", ".zip"} {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// Extract unpacks archivePath into destPath based on its extension
func (e *Extractor) Extract(archivePath, destPath string) error {
	logging.LogDebug("📦 Extracting %s to %s", archivePath, destPath)

	lower := strings.ToLower(archivePath)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return e.extractTarGz(archivePath, destPath)
	case strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".txz"):
		return e.extractTarXz(archivePath, destPath)
	case strings.HasSuffix(lower, ".zip"):
		return e.extractZip(archivePath, destPath)
	default:
		return fmt.Errorf("unsupported archive format: %s", filepath.Base(archivePath))
	}
}

func (e *Extractor) extractTarGz(archivePath, destPath string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzr.Close()

	return e.extractTar(tar.NewReader(gzr), destPath)
}

func (e *Extractor) extractTarXz(archivePath, destPath string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	xzr, err := xz.NewReader(f)
	if err != nil {
		return fmt.Errorf("failed to create xz reader: %w", err)
	}

	return e.extractTar(tar.NewReader(xzr), destPath)
}

func (e *Extractor) extractTar(tr *tar.Reader, destPath string) error {
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read tar entry: %w", err)
		}

		target, err := e.securePath(destPath, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("failed to create directory for %s: %w", target, err)
			}
			if err := e.verifyResolvedParent(destPath, target); err != nil {
				return err
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(header.Mode))
			if err != nil {
				return fmt.Errorf("failed to create file %s: %w", target, err)
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return fmt.Errorf("failed to write file %s: %w", target, err)
			}
			out.Close()
		case tar.TypeSymlink:
			if err := e.secureLinkTarget(destPath, target, header.Linkname); err != nil {
				return err
			}
			if err := os.Symlink(header.Linkname, target); err != nil && !os.IsExist(err) {
				return fmt.Errorf("failed to create symlink %s: %w", target, err)
			}
		default:
			logging.LogDebug("⚠️ Skipping unsupported tar entry type %d: %s", header.Typeflag, header.Name)
		}
	}
	return nil
}

func (e *Extractor) extractZip(archivePath, destPath string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open zip archive: %w", err)
	}
	defer zr.Close()

	for _, entry := range zr.File {
		target, err := e.securePath(destPath, entry.Name)
		if err != nil {
			return err
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", target, err)
		}
		if err := e.verifyResolvedParent(destPath, target); err != nil {
			return err
		}

		rc, err := entry.Open()
		if err != nil {
			return fmt.Errorf("failed to open zip entry %s: %w", entry.Name, err)
		}

		out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, entry.Mode())
		if err != nil {
			rc.Close()
			return fmt.Errorf("failed to create file %s: %w", target, err)
		}

		if _, err := io.Copy(out, rc); err != nil {
			out.Close()
			rc.Close()
			return fmt.Errorf("failed to write file %s: %w", target, err)
		}
		out.Close()
		rc.Close()
	}
	return nil
}

// securePath joins an archive entry name onto destPath, rejecting entries
// that would escape the destination directory
func (e *Extractor) securePath(destPath, name string) (string, error) {
	target := filepath.Join(destPath, name)
	if !strings.HasPrefix(target, filepath.Clean(destPath)+string(os.PathSeparator)) && target != filepath.Clean(destPath) {
		return "", fmt.Errorf("archive entry escapes destination directory: %s", name)
	}
	return target, nil
}

// secureLinkTarget rejects symlink entries whose target points outside the
// destination directory. A relative link target is evaluated against the
// entry's own directory; an in-archive symlink must resolve within destPath
// so later entries cannot write through it to the outside.
func (e *Extractor) secureLinkTarget(destPath, linkPath, linkname string) error {
	resolved := linkname
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(linkPath), resolved)
	}
	resolved = filepath.Clean(resolved)

	root := filepath.Clean(destPath)
	if resolved != root && !strings.HasPrefix(resolved, root+string(os.PathSeparator)) {
		return fmt.Errorf("archive symlink escapes destination directory: %s", linkname)
	}
	return nil
}

// verifyResolvedParent checks that the directory about to receive a file,
// with any symlinks resolved, is still inside the destination directory.
// The lexical check in securePath cannot see symlinks created by earlier
// archive entries.
func (e *Extractor) verifyResolvedParent(destPath, target string) error {
	root, err := filepath.EvalSymlinks(filepath.Clean(destPath))
	if err != nil {
		return fmt.Errorf("failed to resolve destination directory: %w", err)
	}

	parent, err := filepath.EvalSymlinks(filepath.Dir(target))
	if err != nil {
		return fmt.Errorf("failed to resolve parent directory of %s: %w", target, err)
	}

	if parent != root && !strings.HasPrefix(parent, root+string(os.PathSeparator)) {
		return fmt.Errorf("archive entry escapes destination directory: %s", target)
	}
	return nil
}
