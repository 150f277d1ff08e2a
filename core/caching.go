package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"time"

	"podpulse/internal/contract"
	"podpulse/schema"
)

// CacheVersion is bumped whenever the cached payload shape changes, so stale
// encodings are treated as misses instead of decoding garbage.
const CacheVersion = 1

// Cache namespaces keep key spaces of different payloads disjoint.
const (
	deliverablesNamespace = "deliverables"
	projectsNamespace     = "projects"
)

// frozenTTL is the effective TTL applied when a pod's current cycle is frozen:
// long enough that frozen data is never refetched in practice.
const frozenTTL = 365 * 24 * time.Hour

// cacheKey builds a stable sha256 key from a namespace and its arguments.
func cacheKey(namespace string, args ...string) string {
	h := sha256.New()
	_, _ = io.WriteString(h, namespace)
	for _, arg := range args {
		_, _ = io.WriteString(h, "|")
		_, _ = io.WriteString(h, arg)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// FetchThrough returns the cached value for (namespace, args) when a fresh
// entry exists, otherwise invokes fetch and stores the result. The boolean
// reports whether the value was served from cache. Expired and corrupt
// entries are deleted lazily on read and treated as misses. Store failures
// degrade to a direct fetch; they are never fatal.
//
// There is deliberately no per-key locking: two concurrent misses on the same
// key both fetch and the last write wins, which is acceptable duplicate work.
func FetchThrough[T any](store contract.CacheStore, namespace string, args []string, ttl time.Duration, fetch func() (T, error)) (T, bool, error) {
	var zero T
	if store == nil {
		value, err := fetch()
		if err != nil {
			return zero, false, err
		}
		return value, false, nil
	}

	key := cacheKey(namespace, args...)
	if data, version, ts, err := store.Get(key); err == nil {
		if version == CacheVersion && time.Since(time.Unix(ts, 0)) <= ttl {
			var value T
			if err := json.Unmarshal(data, &value); err == nil {
				return value, true, nil
			}
		}
		// Stale, incompatible or corrupt entry is removed lazily on read.
		_ = store.Delete(key)
	}

	value, err := fetch()
	if err != nil {
		return zero, false, err
	}
	if data, err := json.Marshal(value); err == nil {
		_ = store.Set(key, data, CacheVersion, time.Now().Unix())
	}
	return value, false, nil
}

// refreshTTL picks the effective cache TTL for a pod: the configured TTL while
// the pod's current cycle still allows refresh, and frozenTTL once it froze.
func refreshTTL(cal schema.CycleCalendar, policy schema.CycleKey, now time.Time, base time.Duration) time.Duration {
	if cal == nil {
		return base
	}
	current := ResolveCycle(cal, now)
	if ShouldAllowRefreshForCycle(cal, policy, current, now) {
		return base
	}
	return frozenTTL
}

// cachedListDeliverables memoizes TrackerClient.ListDeliverables per
// (team, label) pair.
func cachedListDeliverables(ctx context.Context, client contract.TrackerClient, store contract.CacheStore, ttl time.Duration, teamID, labelID string) ([]schema.WorkItem, bool, error) {
	return FetchThrough(store, deliverablesNamespace, []string{teamID, labelID}, ttl, func() ([]schema.WorkItem, error) {
		return client.ListDeliverables(ctx, teamID, labelID)
	})
}

// cachedListProjects memoizes TrackerClient.ListProjects per initiative.
func cachedListProjects(ctx context.Context, client contract.TrackerClient, store contract.CacheStore, ttl time.Duration, initiativeID string) ([]schema.Project, bool, error) {
	return FetchThrough(store, projectsNamespace, []string{initiativeID}, ttl, func() ([]schema.Project, error) {
		return client.ListProjects(ctx, initiativeID)
	})
}
