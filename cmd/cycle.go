package cmd

import (
	"podpulse/core"
	"podpulse/internal/contract"

	"github.com/spf13/cobra"
)

// cycleCmd shows the resolved current cycle per pod.
var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Show the current cycle and freeze status per pod.",
	Long: `Resolve the current cycle for every pod from its cycle calendar.

For each pod this reports the active (or most recently ended) cycle,
whether its data is frozen under the policy cycle, and whether a cache
refresh would pick up new tracker data.

No tracker calls are made - this is purely calendar arithmetic.

Examples:
  # Where is every pod right now?
  podpulse cycle

  # Check against a stricter freeze policy
  podpulse cycle --policy-cycle C4`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCycle(cfg); err != nil {
			contract.LogFatal("Cannot resolve cycles", err)
		}
	},
}
