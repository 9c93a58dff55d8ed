package cmd

import (
	"dirmirror/internal/model"
	"dirmirror/internal/repository"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "View the running mirror's status",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := statusURL("/status")
		if err != nil {
			return err
		}

		resp, err := http.Get(url)
		if err != nil {
			return fmt.Errorf("mirror not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		var result struct {
			Scheduler model.SchedulerSnapshot `json:"scheduler"`
			Stats     repository.Stats        `json:"stats"`
		}

		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("failed to decode status response: %w", err)
		}

		snap := result.Scheduler
		lastCycle := "-"
		if snap.LastCycle != nil {
			lastCycle = snap.LastCycle.Format("2006-01-02 15:04:05")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-10s %-30s %-30s %-8s %-8s %-8s %-8s %s\n",
			"STATUS", "SRC", "DST", "CYCLES", "COPIED", "FAILED", "SKIPPED", "LAST CYCLE")
		fmt.Fprintf(out, "%-10s %-30s %-30s %-8d %-8d %-8d %-8d %s\n",
			snap.Status, snap.Src, snap.Dst, snap.Cycles, snap.Copied, snap.Failed, snap.Skipped, lastCycle)
		fmt.Fprintf(out, "           interval: %s, uptime: %s\n",
			snap.Interval, time.Since(snap.StartedAt).Round(time.Second))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
