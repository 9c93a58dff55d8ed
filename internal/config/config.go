package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	ErrMissingInput    = errors.New("input directory is required")
	ErrMissingOutput   = errors.New("output directory is required")
	ErrMissingLogFile  = errors.New("log file is required")
	ErrInvalidInterval = errors.New("interval must be a positive number of seconds")
	ErrSameDirectories = errors.New("input and output directories must differ")
)

type Config struct {
	InputDirectory  string   `mapstructure:"input_directory"`
	OutputDirectory string   `mapstructure:"output_directory"`
	Interval        int      `mapstructure:"interval"`
	LogFile         string   `mapstructure:"log_file"`
	StatusPort      int      `mapstructure:"status_port"`
	IgnoreList      []string `mapstructure:"ignore_list"`
	Debug           bool     `mapstructure:"debug"`
}

// MaxIntervalSeconds is the largest interval a time.Duration can hold.
const MaxIntervalSeconds = math.MaxInt64 / int64(time.Second)

var Default = Config{
	StatusPort: 9001,
	IgnoreList: []string{},
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"input-directory":  "input_directory",
	"output-directory": "output_directory",
	"interval":         "interval",
	"log-file":         "log_file",
	"status-port":      "status_port",
	"debug":            "debug",
}

// Load merges, lowest precedence first: defaults, ~/.dirmirror/config.yaml,
// DIRMIRROR_* environment variables and the flags that were set.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".dirmirror"))
	}

	v.SetDefault("input_directory", "")
	v.SetDefault("output_directory", "")
	v.SetDefault("interval", 0)
	v.SetDefault("log_file", "")
	v.SetDefault("status_port", Default.StatusPort)
	v.SetDefault("ignore_list", Default.IgnoreList)
	v.SetDefault("debug", false)

	v.SetEnvPrefix("DIRMIRROR")
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.InputDirectory) == "" {
		errs = append(errs, ErrMissingInput)
	}
	if strings.TrimSpace(c.OutputDirectory) == "" {
		errs = append(errs, ErrMissingOutput)
	}
	if c.Interval <= 0 || int64(c.Interval) > MaxIntervalSeconds {
		errs = append(errs, ErrInvalidInterval)
	}
	if strings.TrimSpace(c.LogFile) == "" {
		errs = append(errs, ErrMissingLogFile)
	}

	return errors.Join(errs...)
}

func (c *Config) IntervalDuration() time.Duration {
	return time.Duration(c.Interval) * time.Second
}

// StatusAddr is empty when the status server is disabled.
func (c *Config) StatusAddr() string {
	if c.StatusPort <= 0 {
		return ""
	}

	return fmt.Sprintf("127.0.0.1:%d", c.StatusPort)
}
