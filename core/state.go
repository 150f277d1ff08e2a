package core

import (
	"strings"

	"podpulse/schema"
)

// NormalizeState maps a raw tracker project state onto the four normalized
// feature states. The mapping is total: unknown or empty input lands on
// not_started rather than failing.
func NormalizeState(raw string) schema.FeatureState {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "completed", "done":
		return schema.StateDone
	case "started", "in_progress", "inprogress", "in progress", "paused":
		return schema.StateInFlight
	case "planned", "backlog", "todo":
		return schema.StateNotStarted
	case "canceled", "cancelled":
		return schema.StateCancelled
	default:
		return schema.StateNotStarted
	}
}
