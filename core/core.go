// Package core holds the aggregation logic for pod delivery metrics.
package core

import (
	"context"
	"time"

	"podpulse/internal/contract"
	"podpulse/internal/outwriter"
	"podpulse/schema"
)

// ExecuteKpi runs the full KPI computation and writes the report using the
// configured output format. When a snapshot store is configured, the run and
// its rows are recorded for trend tracking.
func ExecuteKpi(ctx context.Context, cfg *contract.Config, client contract.TrackerClient, mgr contract.CacheManager) error {
	start := time.Now()
	report := ComputeCycleKpi(ctx, cfg, client, mgr)
	duration := time.Since(start)

	if report.Success {
		recordSnapshot(cfg, mgr, report, start, duration)
	}

	ow := outwriter.NewOutWriter()
	return ow.WriteKpi(report, cfg, duration)
}

// ExecuteFeatures runs the feature movement computation and writes the report.
func ExecuteFeatures(ctx context.Context, cfg *contract.Config, client contract.TrackerClient, mgr contract.CacheManager) error {
	start := time.Now()
	report := ComputeFeatureMovement(ctx, cfg, client, mgr)
	duration := time.Since(start)

	ow := outwriter.NewOutWriter()
	return ow.WriteFeatures(report, cfg, duration)
}

// ExecuteResolve resolves the configured query and writes the result.
func ExecuteResolve(ctx context.Context, cfg *contract.Config, client contract.TrackerClient, mgr contract.CacheManager) error {
	start := time.Now()
	report := ResolveEntity(ctx, cfg, client, mgr, cfg.ResolveQuery)
	duration := time.Since(start)

	ow := outwriter.NewOutWriter()
	return ow.WriteResolve(report, cfg, duration)
}

// ExecuteCycle writes the per-pod cycle resolution report. This needs no
// tracker access; it is purely calendar arithmetic.
func ExecuteCycle(cfg *contract.Config) error {
	start := time.Now()
	report := ComputeCycleReport(cfg)
	duration := time.Since(start)

	ow := outwriter.NewOutWriter()
	return ow.WriteCycle(report, cfg, duration)
}

// ComputeCycleReport resolves the current cycle and freeze state for every
// pod that has a calendar.
func ComputeCycleReport(cfg *contract.Config) *schema.CycleReport {
	now := time.Now()
	report := &schema.CycleReport{PolicyCycle: cfg.PolicyCycle, FetchedAt: now}

	if len(cfg.Pods) == 0 {
		report.ErrorCode, report.ErrorMessage = ErrCodeNoPods, "no pods configured"
		return report
	}
	if len(cfg.Calendars) == 0 {
		report.ErrorCode, report.ErrorMessage = ErrCodeNoCalendars, "no cycle calendars configured"
		return report
	}

	for _, pod := range cfg.Pods {
		cal, ok := cfg.Calendars[pod.Name]
		if !ok {
			continue
		}
		current := ResolveCycle(cal, now)
		frozen := ShouldFreezeNow(cal, cfg.PolicyCycle, current, now)
		report.Rows = append(report.Rows, schema.CycleRow{
			Pod:          pod.Name,
			CurrentCycle: current,
			Frozen:       frozen,
			Refreshable:  !frozen,
		})
	}

	report.Success = true
	return report
}

// recordSnapshot persists one KPI run to the snapshot store, best effort.
// Storage problems are logged and swallowed; they never fail the command.
func recordSnapshot(cfg *contract.Config, mgr contract.CacheManager, report *schema.KpiReport, start time.Time, duration time.Duration) {
	if mgr == nil {
		return
	}
	store := mgr.GetSnapshotStore()
	if store == nil {
		return
	}

	params := map[string]any{
		"quarter":       cfg.Quarter,
		"policy_cycle":  string(cfg.PolicyCycle),
		"current_cycle": string(report.CurrentCycle),
		"fallback_used": report.FallbackUsed,
		"pods":          len(cfg.Pods),
	}

	snapshotID, err := store.BeginSnapshot(start, params)
	if err != nil {
		contract.LogWarn("Failed to begin snapshot", err)
		return
	}
	if err := store.RecordCycleRows(snapshotID, report.Rows, report.FetchedAt); err != nil {
		contract.LogWarn("Failed to record snapshot rows", err)
	}
	if err := store.EndSnapshot(snapshotID, start.Add(duration), len(cfg.Pods), report.FallbackCycle); err != nil {
		contract.LogWarn("Failed to end snapshot", err)
	}
}
