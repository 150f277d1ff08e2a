package core

import (
	"context"
	"strings"
	"time"

	"podpulse/internal/contract"
	"podpulse/schema"
)

// ResolveEntity resolves a free-text project name across every pod's
// candidate projects. A query that matches nothing yields a successful report
// with a nil Match; only a blank query or missing configuration makes the
// report unsuccessful.
func ResolveEntity(ctx context.Context, cfg *contract.Config, client contract.TrackerClient, mgr contract.CacheManager, query string) *schema.ResolveReport {
	now := time.Now()
	report := &schema.ResolveReport{
		Query:     query,
		PodStatus: make(map[string]schema.RowStatus),
		FetchedAt: now,
	}

	if strings.TrimSpace(query) == "" {
		report.ErrorCode, report.ErrorMessage = ErrCodeNoQuery, "no query provided"
		return report
	}
	if len(cfg.Pods) == 0 {
		report.ErrorCode, report.ErrorMessage = ErrCodeNoPods, "no pods configured"
		return report
	}

	fetched := fetchAllProjects(ctx, cfg, client, deliverableStore(mgr), now)

	// Candidates keep the configured pod order so score ties resolve to the
	// first pod deterministically.
	candidates := make([]PodProjects, 0, len(cfg.Pods))
	for _, pod := range cfg.Pods {
		switch {
		case pod.InitiativeID == "":
			report.PodStatus[pod.Name] = schema.StatusNoInitiative
		case fetched[pod.Name].err != nil:
			report.PodStatus[pod.Name] = schema.StatusFetchFailed
		default:
			report.PodStatus[pod.Name] = schema.StatusOK
			candidates = append(candidates, PodProjects{Pod: pod.Name, Projects: fetched[pod.Name].projects})
		}
	}

	report.Match = BestMatch(query, candidates)
	report.Success = true
	return report
}
