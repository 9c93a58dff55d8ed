package cmd

import (
	"dirmirror/internal/model"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	historyN      int
	historyFailed bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View per-file results of recent cycles",
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := statusURL("/history")
		if err != nil {
			return err
		}

		url := fmt.Sprintf("%s?n=%d&failed=%t", base, historyN, historyFailed)
		resp, err := http.Get(url)
		if err != nil {
			return fmt.Errorf("mirror not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("history request failed: %s", resp.Status)
		}

		var histories []model.History
		if err := json.NewDecoder(resp.Body).Decode(&histories); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(histories) == 0 {
			fmt.Fprintln(out, "no history yet")
			return nil
		}

		for _, h := range histories {
			status := "✓"
			if h.Status == model.SyncFailed {
				status = "✗"
			}

			fmt.Fprintf(out, "%s [%s] #%-4d %-9s %s\n",
				status,
				h.SyncedAt.Format("2006-01-02 15:04:05"),
				h.CycleID,
				h.Action,
				h.SrcPath,
			)
			if h.ErrMsg != "" {
				fmt.Fprintf(out, "    %s\n", h.ErrMsg)
			}
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyN, "n", 20, "number of history entries to show")
	historyCmd.Flags().BoolVar(&historyFailed, "failed", false, "only show failed files")
	rootCmd.AddCommand(historyCmd)
}
