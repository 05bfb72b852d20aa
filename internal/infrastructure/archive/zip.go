package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/soulstoneaddons/bepinex-installer/internal/core/domain"
)

// ExtractZip unpacks every entry of the zip file at src into dest. Entries
// that would land outside dest are rejected.
func ExtractZip(src, dest string) error {
	reader, err := zip.OpenReader(src)
	if err != nil {
		return domain.NewError(domain.KindArchive, "extract", fmt.Errorf("failed to open %s: %w", src, err))
	}
	defer reader.Close()

	cleanDest := filepath.Clean(dest)
	for _, file := range reader.File {
		targetPath := filepath.Join(cleanDest, file.Name)

		// Security: prevent path traversal
		if targetPath != cleanDest && !strings.HasPrefix(targetPath, cleanDest+string(os.PathSeparator)) {
			return domain.Errorf(domain.KindArchive, "extract", "unsafe zip path: %s", file.Name)
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return domain.NewError(domain.KindIO, "extract", fmt.Errorf("failed to create directory: %w", err))
			}
			continue
		}

		if err := extractFile(file, targetPath); err != nil {
			return err
		}
	}

	return nil
}

func extractFile(file *zip.File, targetPath string) error {
	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return domain.NewError(domain.KindIO, "extract", fmt.Errorf("failed to create directory: %w", err))
	}

	rc, err := file.Open()
	if err != nil {
		return domain.NewError(domain.KindArchive, "extract", fmt.Errorf("failed to open %s: %w", file.Name, err))
	}
	defer rc.Close()

	mode := file.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}
	out, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return domain.NewError(domain.KindIO, "extract", fmt.Errorf("failed to create file: %w", err))
	}

	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return domain.NewError(domain.KindArchive, "extract", fmt.Errorf("failed to write %s: %w", file.Name, err))
	}
	if err := out.Close(); err != nil {
		return domain.NewError(domain.KindIO, "extract", err)
	}
	return nil
}
