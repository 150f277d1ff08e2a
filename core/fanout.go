package core

import (
	"context"
	"time"

	"podpulse/internal/contract"
	"podpulse/schema"

	"golang.org/x/sync/errgroup"
)

// retryDelay is the pause before the single retry pass over failed pods.
// It is a variable so tests can shorten it.
var retryDelay = 2 * time.Second

// podItems is the outcome of fetching one pod's deliverables.
type podItems struct {
	items  []schema.WorkItem
	cached bool
	err    error
}

// podProjectsResult is the outcome of fetching one pod's projects.
type podProjectsResult struct {
	projects []schema.Project
	cached   bool
	err      error
}

// fetchAllDeliverables fans out over all configured pods concurrently and
// fetches each pod's deliverable list. Pods that failed are retried once as a
// second concurrent batch after a short delay. Per-pod failures land in the
// result map as data; the map always has one entry per pod with a team id.
func fetchAllDeliverables(ctx context.Context, cfg *contract.Config, client contract.TrackerClient, store contract.CacheStore, now time.Time) map[string]podItems {
	results := make([]podItems, len(cfg.Pods))

	fetchPod := func(i int) {
		pod := cfg.Pods[i]
		ttl := refreshTTL(cfg.Calendars[pod.Name], cfg.PolicyCycle, now, cfg.CacheTTL)
		items, cached, err := cachedListDeliverables(ctx, client, store, ttl, pod.TeamID, cfg.Labels.DelLabelID)
		results[i] = podItems{items: items, cached: cached, err: err}
	}

	runBatch := func(indices []int) {
		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Workers)
		for _, i := range indices {
			g.Go(func() error {
				fetchPod(i)
				return nil
			})
		}
		_ = g.Wait() // Per-pod errors are recorded in results, never returned.
	}

	var first []int
	for i, pod := range cfg.Pods {
		if pod.TeamID == "" {
			continue
		}
		first = append(first, i)
	}
	runBatch(first)

	// One retry pass for pods that failed, after a short delay.
	var failed []int
	for _, i := range first {
		if results[i].err != nil {
			failed = append(failed, i)
		}
	}
	if len(failed) > 0 && sleepCtx(ctx, retryDelay) {
		runBatch(failed)
	}

	out := make(map[string]podItems, len(first))
	for _, i := range first {
		out[cfg.Pods[i].Name] = results[i]
	}
	return out
}

// fetchAllProjects is the projects counterpart of fetchAllDeliverables. Only
// pods with an initiative id participate.
func fetchAllProjects(ctx context.Context, cfg *contract.Config, client contract.TrackerClient, store contract.CacheStore, now time.Time) map[string]podProjectsResult {
	results := make([]podProjectsResult, len(cfg.Pods))

	fetchPod := func(i int) {
		pod := cfg.Pods[i]
		ttl := refreshTTL(cfg.Calendars[pod.Name], cfg.PolicyCycle, now, cfg.CacheTTL)
		projects, cached, err := cachedListProjects(ctx, client, store, ttl, pod.InitiativeID)
		results[i] = podProjectsResult{projects: projects, cached: cached, err: err}
	}

	runBatch := func(indices []int) {
		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Workers)
		for _, i := range indices {
			g.Go(func() error {
				fetchPod(i)
				return nil
			})
		}
		_ = g.Wait()
	}

	var first []int
	for i, pod := range cfg.Pods {
		if pod.InitiativeID == "" {
			continue
		}
		first = append(first, i)
	}
	runBatch(first)

	var failed []int
	for _, i := range first {
		if results[i].err != nil {
			failed = append(failed, i)
		}
	}
	if len(failed) > 0 && sleepCtx(ctx, retryDelay) {
		runBatch(failed)
	}

	out := make(map[string]podProjectsResult, len(first))
	for _, i := range first {
		out[cfg.Pods[i].Name] = results[i]
	}
	return out
}

// sleepCtx waits for d and reports whether the wait completed before the
// context was cancelled.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
