package cmd

import (
	"podpulse/core"
	"podpulse/internal/contract"
	"podpulse/internal/tracker"

	"github.com/spf13/cobra"
)

// resolveCmd resolves a free-text name to a tracked project.
var resolveCmd = &cobra.Command{
	Use:   "resolve <query>",
	Short: "Resolve a project name to its tracked entity.",
	Long: `Resolve a free-text name to the best-matching tracked project across all pods.

Matching is case-insensitive and tolerant of quarter prefixes in project
names (e.g., "Q1 26 - Contributor Portal" matches "Contributor Portal").
Exact matches beat suffix matches, which beat partial matches.

Examples:
  # Find where a feature lives
  podpulse resolve "Contributor Portal"

  # Machine-readable match details
  podpulse resolve "Billing Revamp" --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := tracker.NewClient(cfg.TrackerEndpoint, cfg.TrackerToken)
		if err := core.ExecuteResolve(rootCtx, cfg, client, cacheManager); err != nil {
			contract.LogFatal("Cannot resolve entity", err)
		}
	},
}
