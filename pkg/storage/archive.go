package storage

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zadonuts/donutdex/pkg/defaults"
)

// RestoreArchive extracts the packaged catalog database from a zip
// archive to destPath. The archive must hold exactly one .db member; its
// path must stay inside the archive root and its declared size must fit
// the archive cap.
func RestoreArchive(archivePath, destPath string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open archive %s: %w", archivePath, err)
	}
	defer func() { _ = zr.Close() }()

	var member *zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(f.Name), ".db") {
			continue
		}
		if member != nil {
			return fmt.Errorf("archive %s holds more than one database file", archivePath)
		}
		member = f
	}
	if member == nil {
		return fmt.Errorf("archive %s holds no database file", archivePath)
	}
	if !filepath.IsLocal(member.Name) {
		return fmt.Errorf("unsafe archive member path %q", member.Name)
	}
	if member.UncompressedSize64 > uint64(defaults.MaxArchiveBytes) {
		return fmt.Errorf("archive member %q too large: %d bytes", member.Name, member.UncompressedSize64)
	}

	rc, err := member.Open()
	if err != nil {
		return fmt.Errorf("open archive member %q: %w", member.Name, err)
	}
	defer func() { _ = rc.Close() }()

	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create database file %s: %w", destPath, err)
	}

	// The limit also guards against a member lying about its size.
	if _, err := io.Copy(out, io.LimitReader(rc, int64(defaults.MaxArchiveBytes)+1)); err != nil {
		_ = out.Close()
		return fmt.Errorf("extract %q: %w", member.Name, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("flush database file %s: %w", destPath, err)
	}

	info, err := os.Stat(destPath)
	if err != nil {
		return fmt.Errorf("stat database file %s: %w", destPath, err)
	}
	if info.Size() > int64(defaults.MaxArchiveBytes) {
		_ = os.Remove(destPath)
		return fmt.Errorf("archive member %q exceeded the size cap during extraction", member.Name)
	}
	return nil
}
