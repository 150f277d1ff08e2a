package cmd

import (
	"podpulse/core"
	"podpulse/internal/contract"
	"podpulse/internal/tracker"

	"github.com/spf13/cobra"
)

// kpiCmd computes per-cycle delivery KPIs for every pod.
var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "Show per-cycle delivery KPIs for every pod.",
	Long: `Fetch committed work from the tracker and compute delivery KPIs per (pod, cycle).

For each pod and each cycle of the quarter this reports:
- Committed work items (carrying the cycle label, minus cancellations)
- Completed items inside the cycle window
- Delivery percentage (completed / committed)
- Spillover (committed but unfinished once the window closed)

Cycles at or before the policy cycle freeze once the quarter ends, so their
numbers stay stable in reports even as the tracker keeps moving.

Examples:
  # KPIs for the configured quarter
  podpulse kpi

  # Report a specific quarter and cycle
  podpulse kpi --quarter Q1-26 --cycle C3

  # Export to CSV for tracking
  podpulse kpi --output csv --output-file kpi.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := tracker.NewClient(cfg.TrackerEndpoint, cfg.TrackerToken)
		if err := core.ExecuteKpi(rootCtx, cfg, client, cacheManager); err != nil {
			contract.LogFatal("Cannot run kpi aggregation", err)
		}
	},
}
