package config

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringP("input-directory", "i", "", "")
	fs.StringP("output-directory", "o", "", "")
	fs.Int("interval", 0, "")
	fs.StringP("log-file", "l", "", "")
	fs.Int("status-port", Default.StatusPort, "")
	fs.Bool("debug", false, "")
	return fs
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadFromFlags(t *testing.T) {
	isolateHome(t)

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"-i", "/src", "-o", "/dst", "--interval", "5", "-l", "/sync.log"}))

	cfg, err := Load(flags)
	require.NoError(t, err)

	assert.Equal(t, "/src", cfg.InputDirectory)
	assert.Equal(t, "/dst", cfg.OutputDirectory)
	assert.Equal(t, 5, cfg.Interval)
	assert.Equal(t, "/sync.log", cfg.LogFile)
	assert.Equal(t, 9001, cfg.StatusPort)
	assert.Empty(t, cfg.IgnoreList)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 5*time.Second, cfg.IntervalDuration())
}

func TestLoadFromEnvironment(t *testing.T) {
	isolateHome(t)
	t.Setenv("DIRMIRROR_INPUT_DIRECTORY", "/env-src")
	t.Setenv("DIRMIRROR_INTERVAL", "30")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"-o", "/dst"}))

	cfg, err := Load(flags)
	require.NoError(t, err)

	assert.Equal(t, "/env-src", cfg.InputDirectory)
	assert.Equal(t, "/dst", cfg.OutputDirectory)
	assert.Equal(t, 30, cfg.Interval)
}

func TestLoadFromConfigFile(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".dirmirror")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(
		"status_port: 0\nignore_list:\n  - \"*.tmp\"\ninterval: 10\n"), 0644))

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--interval", "3"}))

	cfg, err := Load(flags)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Interval)
	assert.Equal(t, []string{"*.tmp"}, cfg.IgnoreList)
	assert.Equal(t, "", cfg.StatusAddr())
}

func TestValidate(t *testing.T) {
	valid := Config{InputDirectory: "/src", OutputDirectory: "/dst", Interval: 1, LogFile: "/log"}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{name: "missing input", mutate: func(c *Config) { c.InputDirectory = " " }, want: ErrMissingInput},
		{name: "missing output", mutate: func(c *Config) { c.OutputDirectory = "" }, want: ErrMissingOutput},
		{name: "zero interval", mutate: func(c *Config) { c.Interval = 0 }, want: ErrInvalidInterval},
		{name: "negative interval", mutate: func(c *Config) { c.Interval = -5 }, want: ErrInvalidInterval},
		{name: "missing log file", mutate: func(c *Config) { c.LogFile = "" }, want: ErrMissingLogFile},
	}

	require.NoError(t, valid.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestValidateRejectsIntervalBeyondDuration(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("int cannot hold an overflowing interval")
	}

	seconds := MaxIntervalSeconds
	cfg := Config{InputDirectory: "/src", OutputDirectory: "/dst", Interval: int(seconds), LogFile: "/log"}
	require.NoError(t, cfg.Validate())
	assert.Positive(t, cfg.IntervalDuration())

	cfg.Interval = int(seconds + 1)
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidInterval)
}

func TestStatusAddr(t *testing.T) {
	cfg := Config{StatusPort: 9001}
	assert.Equal(t, "127.0.0.1:9001", cfg.StatusAddr())
}
