package cmd

import (
	"context"
	"dirmirror/internal/auditlog"
	"dirmirror/internal/config"
	"dirmirror/internal/daemon"
	"dirmirror/internal/db"
	"dirmirror/internal/logger"
	"dirmirror/internal/model"
	"dirmirror/internal/repository"
	"dirmirror/internal/syncer/local"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "dirmirror --input-directory|-i SRC --output-directory|-o DST --interval|-int SECONDS --log-file|-l LOG",
	Short: "Periodically mirror the files of one directory into another",
	Args:  cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(cmd.Flags())
		if err != nil {
			return err
		}

		logger.Init(cfg.Debug)
		return nil
	},
	RunE: runMirror,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NormalizeArgs rewrites the single-dash "-int" spelling of --interval,
// which the flag parser would otherwise read as -i -n -t.
func NormalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		switch {
		case arg == "-int":
			out[i] = "--interval"
		case strings.HasPrefix(arg, "-int="):
			out[i] = "--interval=" + strings.TrimPrefix(arg, "-int=")
		default:
			out[i] = arg
		}
	}

	return out
}

func runMirror(cmd *cobra.Command, args []string) error {
	defer logger.Sync()

	s, err := bootstrap(afero.NewOsFs(), cfg)
	if err != nil {
		return err
	}

	if err := db.Init(); err != nil {
		return err
	}
	histRepo := repository.NewHistoryRepository(db.DB)

	state := daemon.NewState(s.Src(), s.Dst(), cfg.IntervalDuration())
	sched, err := daemon.NewScheduler(s, cfg.IntervalDuration(), state,
		daemon.WithRecorder(func(summary model.CycleSummary) {
			if _, err := histRepo.Save(summary); err != nil {
				logger.Log.Warn("failed to save history",
					zap.Error(err))
			}
		}))
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var srv *daemon.Server
	var stopCh <-chan struct{}
	if addr := cfg.StatusAddr(); addr != "" {
		srv = daemon.NewServer(state, histRepo, addr)
		srv.Start()
		stopCh = srv.StopCh()
	}

	if err := sched.Start(context.Background()); err != nil {
		return err
	}

	logger.Log.Info("monitoring and processing",
		zap.String("src", s.Src()),
		zap.String("dst", s.Dst()),
		zap.Int("interval_seconds", cfg.Interval))

	select {
	case sig := <-sigCh:
		logger.Log.Info("shutting down",
			zap.String("signal", sig.String()))
	case <-stopCh:
		logger.Log.Info("stop requested via API")
	}

	sched.Stop()

	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}

// bootstrap validates the configuration and prepares everything a cycle
// needs. A missing source directory is fatal.
func bootstrap(fs afero.Fs, cfg *config.Config) (*local.Syncer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := local.ValidateSource(fs, cfg.InputDirectory); err != nil {
		return nil, fmt.Errorf("input directory does not exist: %w", err)
	}

	absSrc, err := filepath.Abs(cfg.InputDirectory)
	if err != nil {
		return nil, fmt.Errorf("invalid input directory: %w", err)
	}
	absDst, err := filepath.Abs(cfg.OutputDirectory)
	if err != nil {
		return nil, fmt.Errorf("invalid output directory: %w", err)
	}
	if absSrc == absDst {
		return nil, fmt.Errorf("%w: %s", config.ErrSameDirectories, absSrc)
	}

	exists, err := afero.DirExists(fs, cfg.OutputDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to check output directory: %w", err)
	}
	if !exists {
		if err := fs.MkdirAll(cfg.OutputDirectory, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
		logger.Log.Info("output directory was created as it didn't exist",
			zap.String("path", cfg.OutputDirectory))
	}

	sink, err := auditlog.New(fs, cfg.LogFile)
	if err != nil {
		return nil, err
	}

	return local.NewSyncer(fs, cfg.InputDirectory, cfg.OutputDirectory, sink,
		local.WithIgnoreList(cfg.IgnoreList))
}

func statusURL(path string) (string, error) {
	addr := cfg.StatusAddr()
	if addr == "" {
		return "", fmt.Errorf("status server is disabled (status_port is 0)")
	}

	return "http://" + addr + path, nil
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringP("input-directory", "i", "", "source directory whose files are mirrored")
	f.StringP("output-directory", "o", "", "destination directory, created if missing")
	f.Int("interval", 0, "seconds between synchronization cycles (alias: -int)")
	f.StringP("log-file", "l", "", "append-only synchronization log, created if missing")
	f.Int("status-port", config.Default.StatusPort, "local port of the status API (0 disables it)")
	f.Bool("debug", false, "Enable debug mode")
}
