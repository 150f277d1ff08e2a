package core

import (
	"time"

	"podpulse/schema"
)

// ResolveCycle determines which cycle the given instant falls into.
// A cycle whose window contains t wins outright. Between cycles (weekends,
// calendar gaps) the most recently ended cycle is still considered current.
// Before the first cycle starts, C1 is returned.
func ResolveCycle(cal schema.CycleCalendar, t time.Time) schema.CycleKey {
	// Pass 1: open window wins.
	for _, key := range schema.CycleOrder {
		if w, ok := cal[key]; ok && w.Contains(t) {
			return key
		}
	}

	// Pass 2: latest cycle that already ended.
	var (
		best    schema.CycleKey
		bestEnd time.Time
		found   bool
	)
	for _, key := range schema.CycleOrder {
		w, ok := cal[key]
		if !ok || w.End.After(t) {
			continue
		}
		if !found || w.End.After(bestEnd) {
			best, bestEnd, found = key, w.End, true
		}
	}
	if found {
		return best
	}
	return schema.CycleC1
}

// ShouldFreezeNow reports whether data for the given cycle is frozen at time t.
// Cycles up to and including the policy cycle freeze together once the policy
// cycle's window ends. Later cycles freeze individually when their own window
// ends.
func ShouldFreezeNow(cal schema.CycleCalendar, policy, cycle schema.CycleKey, t time.Time) bool {
	idx := schema.CycleIndex(cycle)
	policyIdx := schema.CycleIndex(policy)
	if idx < 0 || policyIdx < 0 {
		return false
	}

	boundary := cycle
	if idx <= policyIdx {
		boundary = policy
	}
	w, ok := cal[boundary]
	if !ok {
		// No window configured means there is nothing to freeze against.
		return false
	}
	return t.After(w.End)
}

// ShouldAllowRefreshForCycle is the complement of ShouldFreezeNow: data for a
// cycle may be re-fetched only while it is not frozen.
func ShouldAllowRefreshForCycle(cal schema.CycleCalendar, policy, cycle schema.CycleKey, t time.Time) bool {
	return !ShouldFreezeNow(cal, policy, cycle, t)
}

// FallbackCycle substitutes the headline cycle when the structurally resolved
// one has zero total committed across all pods. The replacement is the cycle
// with the highest committed sum, provided it is strictly positive and differs
// from current. Ties resolve to the earliest cycle in calendar order.
func FallbackCycle(rows []schema.CycleKpiRow, current schema.CycleKey) (schema.CycleKey, bool) {
	sums := make(map[schema.CycleKey]int)
	for _, row := range rows {
		sums[row.Cycle] += row.Committed
	}
	if sums[current] > 0 {
		return current, false
	}

	best := current
	bestSum := 0
	for _, key := range schema.CycleOrder {
		if sums[key] > bestSum {
			best, bestSum = key, sums[key]
		}
	}
	if bestSum > 0 && best != current {
		return best, true
	}
	return current, false
}
