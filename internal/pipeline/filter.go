package pipeline

import (
	"dirmirror/internal/model"
	"path/filepath"
)

// Filter drops entries whose base name matches any of the ignore patterns.
func Filter(entries []model.FileEntry, ignoreList []string) []model.FileEntry {
	if len(ignoreList) == 0 {
		return entries
	}

	out := make([]model.FileEntry, 0, len(entries))
	for _, entry := range entries {
		if shouldIgnore(entry.Name, ignoreList) {
			continue
		}
		out = append(out, entry)
	}

	return out
}

func shouldIgnore(name string, ignoreList []string) bool {
	for _, pattern := range ignoreList {
		matched, err := filepath.Match(pattern, name)
		if err == nil && matched {
			return true
		}
	}

	return false
}
