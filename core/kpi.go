package core

import (
	"context"
	"math"
	"strconv"
	"time"

	"podpulse/internal/contract"
	"podpulse/schema"
)

// Machine-readable error codes for result envelopes.
const (
	ErrCodeNoPods      = "missing_pods_config"
	ErrCodeNoLabels    = "missing_labels_config"
	ErrCodeNoCalendars = "missing_calendars_config"
	ErrCodeNoQuery     = "missing_query"
)

// DeliveryPct renders completed/committed as a rounded percentage string.
// Zero committed always renders "0%", never a division error.
func DeliveryPct(completed, committed int) string {
	if committed == 0 {
		return "0%"
	}
	pct := math.Round(float64(completed) / float64(committed) * 100)
	return strconv.Itoa(int(pct)) + "%"
}

// ComputeCycleKpi produces one CycleKpiRow per (pod, cycle) pair across all
// configured pods. Per-pod fetch problems surface as row statuses; only a
// missing configuration yields an unsuccessful report.
func ComputeCycleKpi(ctx context.Context, cfg *contract.Config, client contract.TrackerClient, mgr contract.CacheManager) *schema.KpiReport {
	now := time.Now()
	report := &schema.KpiReport{Quarter: cfg.Quarter, FetchedAt: now}

	if code, msg := validateKpiConfig(cfg); code != "" {
		report.ErrorCode, report.ErrorMessage = code, msg
		return report
	}

	fetched := fetchAllDeliverables(ctx, cfg, client, deliverableStore(mgr), now)

	for _, pod := range cfg.Pods {
		cal := cfg.Calendars[pod.Name]
		switch {
		case pod.TeamID == "":
			report.Rows = append(report.Rows, statusRows(pod.Name, cal, cfg.PolicyCycle, now, schema.StatusNoTeamID)...)
		case fetched[pod.Name].err != nil:
			report.Rows = append(report.Rows, statusRows(pod.Name, cal, cfg.PolicyCycle, now, schema.StatusFetchFailed)...)
		default:
			report.Rows = append(report.Rows, computePodRows(pod.Name, fetched[pod.Name].items, cal, cfg.Labels, cfg.Quarter, cfg.PolicyCycle, now)...)
		}
	}

	current := cfg.TargetCycle
	if current == "" {
		current = ResolveCycle(headlineCalendar(cfg), now)
	}
	fallback, used := FallbackCycle(report.Rows, current)

	report.CurrentCycle = current
	report.FallbackCycle = fallback
	report.FallbackUsed = used
	report.Success = true
	return report
}

// computePodRows classifies one pod's work items into all six cycle rows.
// Label sets are built once per item and reused for every cycle.
func computePodRows(podName string, items []schema.WorkItem, cal schema.CycleCalendar, labels schema.LabelConfig, quarter string, policy schema.CycleKey, now time.Time) []schema.CycleKpiRow {
	sets := make([]LabelSet, len(items))
	for i, item := range items {
		sets[i] = NewLabelSet(item.Labels)
	}

	rows := make([]schema.CycleKpiRow, 0, len(schema.CycleOrder))
	for _, cycle := range schema.CycleOrder {
		baseline := labels.BaselineLabelID(quarter, cycle)

		w, hasWindow := cal[cycle]
		closed := hasWindow && now.After(w.End)
		// Completions only count up to the cutoff: now while the cycle is
		// open, the cycle end once it closed.
		cutoff := now
		if closed {
			cutoff = w.End
		}

		committed, completed := 0, 0
		for i, item := range items {
			if !IsCommitted(sets[i], baseline, labels.CancelledLabelID) {
				continue
			}
			committed++
			if item.State.Type == "completed" && item.CompletedAt != nil && !item.CompletedAt.After(cutoff) {
				completed++
			}
		}

		spillover := 0
		if closed {
			spillover = max(0, committed-completed)
		}

		rows = append(rows, schema.CycleKpiRow{
			Pod:         podName,
			Cycle:       cycle,
			Committed:   committed,
			Completed:   completed,
			DeliveryPct: DeliveryPct(completed, committed),
			Spillover:   spillover,
			Status:      schema.StatusOK,
			Frozen:      ShouldFreezeNow(cal, policy, cycle, now),
		})
	}
	return rows
}

// statusRows builds six zeroed rows carrying the given status, so a failing
// pod still occupies its place in the report without affecting siblings.
func statusRows(podName string, cal schema.CycleCalendar, policy schema.CycleKey, now time.Time, status schema.RowStatus) []schema.CycleKpiRow {
	rows := make([]schema.CycleKpiRow, 0, len(schema.CycleOrder))
	for _, cycle := range schema.CycleOrder {
		rows = append(rows, schema.CycleKpiRow{
			Pod:         podName,
			Cycle:       cycle,
			DeliveryPct: "0%",
			Status:      status,
			Frozen:      ShouldFreezeNow(cal, policy, cycle, now),
		})
	}
	return rows
}

// headlineCalendar picks the calendar used to resolve the report-level
// current cycle: the first configured pod that has one. Pods share the same
// quarter structure, so any calendar anchors the headline.
func headlineCalendar(cfg *contract.Config) schema.CycleCalendar {
	for _, pod := range cfg.Pods {
		if cal, ok := cfg.Calendars[pod.Name]; ok {
			return cal
		}
	}
	return nil
}

// validateKpiConfig checks the configuration the KPI computation depends on.
// It returns an empty code when everything needed is present.
func validateKpiConfig(cfg *contract.Config) (string, string) {
	if len(cfg.Pods) == 0 {
		return ErrCodeNoPods, "no pods configured"
	}
	if cfg.Labels.DelLabelID == "" || len(cfg.Labels.CycleLabels[cfg.Quarter]) == 0 {
		return ErrCodeNoLabels, "no cycle labels configured for quarter " + cfg.Quarter
	}
	if len(cfg.Calendars) == 0 {
		return ErrCodeNoCalendars, "no cycle calendars configured"
	}
	return "", ""
}

// deliverableStore unwraps the cache manager, tolerating a nil manager so
// callers can run cache-less.
func deliverableStore(mgr contract.CacheManager) contract.CacheStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetDeliverableStore()
}
