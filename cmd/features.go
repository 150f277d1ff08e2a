package cmd

import (
	"podpulse/core"
	"podpulse/internal/contract"
	"podpulse/internal/tracker"

	"github.com/spf13/cobra"
)

// featuresCmd lists tracked projects per pod with normalized states.
var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Show feature movement across all pods.",
	Long: `List every tracked project per pod with its normalized feature state.

Raw tracker states vary per team, so they are normalized into a small set
(not_started, in_flight, blocked, done) while the raw state stays visible.
Pods without an initiative id are reported as such instead of being dropped.

Examples:
  # Feature movement for all pods
  podpulse features

  # Machine-readable output for dashboards
  podpulse features --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := tracker.NewClient(cfg.TrackerEndpoint, cfg.TrackerToken)
		if err := core.ExecuteFeatures(rootCtx, cfg, client, cacheManager); err != nil {
			contract.LogFatal("Cannot run feature movement", err)
		}
	},
}
