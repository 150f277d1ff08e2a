package core

import (
	"context"
	"time"

	"podpulse/internal/contract"
	"podpulse/schema"
)

// ComputeFeatureMovement fetches every pod's projects and normalizes their
// states. Pods without an initiative id and pods whose fetch failed are
// reported in PodStatus; their absence never hides sibling pods.
func ComputeFeatureMovement(ctx context.Context, cfg *contract.Config, client contract.TrackerClient, mgr contract.CacheManager) *schema.FeatureReport {
	now := time.Now()
	report := &schema.FeatureReport{
		PodStatus: make(map[string]schema.RowStatus),
		FetchedAt: now,
	}

	if len(cfg.Pods) == 0 {
		report.ErrorCode, report.ErrorMessage = ErrCodeNoPods, "no pods configured"
		return report
	}

	fetched := fetchAllProjects(ctx, cfg, client, deliverableStore(mgr), now)

	for _, pod := range cfg.Pods {
		switch {
		case pod.InitiativeID == "":
			report.PodStatus[pod.Name] = schema.StatusNoInitiative
		case fetched[pod.Name].err != nil:
			report.PodStatus[pod.Name] = schema.StatusFetchFailed
		default:
			report.PodStatus[pod.Name] = schema.StatusOK
			for _, project := range fetched[pod.Name].projects {
				report.Rows = append(report.Rows, schema.FeatureRow{
					Pod:       pod.Name,
					Project:   project.Name,
					State:     NormalizeState(project.State),
					RawState:  project.State,
					Lead:      project.Lead,
					Target:    project.TargetDate,
					UpdatedAt: project.UpdatedAt,
				})
			}
		}
	}

	report.Success = true
	return report
}
