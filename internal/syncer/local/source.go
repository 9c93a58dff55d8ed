package local

import (
	"dirmirror/internal/model"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ValidateSource reports an error unless root is an existing directory.
func ValidateSource(fs afero.Fs, root string) error {
	info, err := fs.Stat(root)
	if err != nil {
		return fmt.Errorf("source directory not found: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("source path %s is not a directory", root)
	}

	return nil
}

// ListSource returns the files directly inside root in name order.
// Subdirectories and special files are skipped.
func ListSource(fs afero.Fs, root string) ([]model.FileEntry, error) {
	infos, err := afero.ReadDir(fs, root)
	if err != nil {
		return nil, fmt.Errorf("failed to list source: %w", err)
	}

	entries := make([]model.FileEntry, 0, len(infos))
	for _, info := range infos {
		mode := info.Mode()
		if !mode.IsRegular() && mode&os.ModeSymlink == 0 {
			continue
		}

		entries = append(entries, model.FileEntry{
			Name: info.Name(),
			Path: filepath.Join(root, info.Name()),
		})
	}

	return entries, nil
}
