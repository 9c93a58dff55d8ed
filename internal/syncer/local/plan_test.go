package local

import (
	"dirmirror/internal/model"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanKeepsOrderAndFlattensPaths(t *testing.T) {
	entries := []model.FileEntry{
		{Name: "b.txt", Path: "/src/b.txt"},
		{Name: "a.txt", Path: "/src/a.txt"},
	}

	actions := Plan(entries, "/dst")
	require.Len(t, actions, 2)

	assert.Equal(t, entries[0], actions[0].Entry)
	assert.Equal(t, "/dst/b.txt", actions[0].DstPath)
	assert.Equal(t, entries[1], actions[1].Entry)
	assert.Equal(t, "/dst/a.txt", actions[1].DstPath)
}

func TestPlanEmpty(t *testing.T) {
	assert.Empty(t, Plan(nil, "/dst"))
}

func TestDecide(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/dst/a.txt", []byte("old"), 0644))

	action, err := Decide(fs, "/dst/a.txt")
	require.NoError(t, err)
	assert.Equal(t, model.ActionOverwrite, action)

	action, err = Decide(fs, "/dst/b.txt")
	require.NoError(t, err)
	assert.Equal(t, model.ActionCreate, action)
}

func TestDecideRejectsDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/dst/a.txt", 0755))

	_, err := Decide(fs, "/dst/a.txt")
	assert.Error(t, err)
}

func TestDecideSeesLateArrivals(t *testing.T) {
	fs := afero.NewMemMapFs()
	actions := Plan([]model.FileEntry{{Name: "a.txt", Path: "/src/a.txt"}}, "/dst")

	require.NoError(t, afero.WriteFile(fs, actions[0].DstPath, []byte("external"), 0644))

	action, err := Decide(fs, actions[0].DstPath)
	require.NoError(t, err)
	assert.Equal(t, model.ActionOverwrite, action)
}
