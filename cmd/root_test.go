package cmd

import (
	"bytes"
	"dirmirror/internal/config"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "short interval",
			in:   []string{"-i", "src", "-int", "5"},
			want: []string{"-i", "src", "--interval", "5"},
		},
		{
			name: "short interval with value",
			in:   []string{"-int=5"},
			want: []string{"--interval=5"},
		},
		{
			name: "long flags untouched",
			in:   []string{"--input-directory", "src", "--interval", "5"},
			want: []string{"--input-directory", "src", "--interval", "5"},
		},
		{
			name: "similar values untouched",
			in:   []string{"-o", "-integration"},
			want: []string{"-o", "-integration"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeArgs(tt.in))
		})
	}
}

func validConfig() *config.Config {
	return &config.Config{
		InputDirectory:  "/src",
		OutputDirectory: "/out/mirror",
		Interval:        5,
		LogFile:         "/logs/sync.log",
	}
}

func TestBootstrapPreparesDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/src", 0755))

	s, err := bootstrap(fs, validConfig())
	require.NoError(t, err)
	assert.Equal(t, "/src", s.Src())
	assert.Equal(t, "/out/mirror", s.Dst())

	exists, err := afero.DirExists(fs, "/out/mirror")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = afero.Exists(fs, "/logs/sync.log")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBootstrapMissingSourceIsFatal(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := bootstrap(fs, validConfig())
	require.Error(t, err)

	exists, err := afero.DirExists(fs, "/out/mirror")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBootstrapRejectsSameDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/a.txt", []byte("keep"), 0644))

	cfg := validConfig()
	cfg.InputDirectory = "/data"
	cfg.OutputDirectory = "/data/"

	_, err := bootstrap(fs, cfg)
	require.ErrorIs(t, err, config.ErrSameDirectories)

	data, err := afero.ReadFile(fs, "/data/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestBootstrapRejectsInvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Interval = 0

	_, err := bootstrap(afero.NewMemMapFs(), cfg)
	assert.ErrorIs(t, err, config.ErrInvalidInterval)
}

func TestOnceCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "mirror")
	logFile := filepath.Join(t.TempDir(), "sync.log")
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("hello"), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(NormalizeArgs([]string{"once", "-i", src, "-o", dst, "-int", "5", "-l", logFile, "--status-port", "0"}))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "done: 1 copied, 0 failed\n", out.String())

	data, err := os.ReadFile(filepath.Join(dst, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	logData, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logData), "Copied a.txt to directory: "+dst)
}
