package cmd

import (
	"context"
	"dirmirror/internal/logger"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Run a single synchronization cycle and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		s, err := bootstrap(afero.NewOsFs(), cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		summary := s.Run(ctx)
		if summary.Err != nil {
			return summary.Err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "done: %d copied, %d failed\n", summary.Copied(), summary.Failed())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(onceCmd)
}
