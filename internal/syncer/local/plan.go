package local

import (
	"dirmirror/internal/model"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Plan maps every entry, in order, to its path directly under dstRoot.
func Plan(entries []model.FileEntry, dstRoot string) []model.PlannedAction {
	actions := make([]model.PlannedAction, 0, len(entries))
	for _, entry := range entries {
		actions = append(actions, model.PlannedAction{
			Entry:   entry,
			DstPath: filepath.Join(dstRoot, entry.Name),
		})
	}

	return actions
}

// Decide inspects dstPath at call time. Callers run it immediately before
// copying; the result is not cached across the cycle. A directory in the
// way is an error, never something to delete.
func Decide(fs afero.Fs, dstPath string) (model.SyncAction, error) {
	info, err := fs.Stat(dstPath)
	switch {
	case err == nil && info.IsDir():
		return "", fmt.Errorf("dst %s is a directory", dstPath)
	case err == nil:
		return model.ActionOverwrite, nil
	case os.IsNotExist(err):
		return model.ActionCreate, nil
	default:
		return "", fmt.Errorf("failed to stat dst: %w", err)
	}
}
