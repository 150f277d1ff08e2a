package core

import (
	"testing"
	"time"

	"podpulse/schema"

	"github.com/stretchr/testify/assert"
)

// testCalendar builds a six-cycle calendar with two-week cycles separated by
// weekend gaps, starting 2026-01-05.
func testCalendar() schema.CycleCalendar {
	cal := make(schema.CycleCalendar)
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	for _, key := range schema.CycleOrder {
		end := start.AddDate(0, 0, 11).Add(24*time.Hour - time.Nanosecond) // Mon..Fri next week
		cal[key] = schema.CycleWindow{Start: start, End: end}
		start = start.AddDate(0, 0, 14)
	}
	return cal
}

func TestResolveCycle(t *testing.T) {
	cal := testCalendar()

	tests := []struct {
		name string
		t    time.Time
		want schema.CycleKey
	}{
		{"inside C1", time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC), schema.CycleC1},
		{"first day of C2", cal[schema.CycleC2].Start, schema.CycleC2},
		{"last day of C3", time.Date(2026, 2, 13, 23, 0, 0, 0, time.UTC), schema.CycleC3},
		{"weekend gap after C1 stays C1", time.Date(2026, 1, 17, 12, 0, 0, 0, time.UTC), schema.CycleC1},
		{"before the quarter starts", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), schema.CycleC1},
		{"after the quarter ends", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), schema.CycleC6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveCycle(cal, tt.t))
		})
	}
}

func TestResolveCycleEmptyCalendar(t *testing.T) {
	assert.Equal(t, schema.CycleC1, ResolveCycle(schema.CycleCalendar{}, time.Now()))
}

func TestShouldFreezeNow(t *testing.T) {
	cal := testCalendar()
	policy := schema.CycleC2
	policyEnd := cal[schema.CycleC2].End

	tests := []struct {
		name  string
		cycle schema.CycleKey
		t     time.Time
		want  bool
	}{
		{"C1 mutable before policy end", schema.CycleC1, policyEnd.Add(-time.Hour), false},
		{"C1 frozen after policy end", schema.CycleC1, policyEnd.Add(time.Hour), true},
		{"C2 mutable at policy end", schema.CycleC2, policyEnd, false},
		{"C2 frozen after policy end", schema.CycleC2, policyEnd.Add(time.Second), true},
		{"C3 mutable while open", schema.CycleC3, cal[schema.CycleC3].Start.Add(time.Hour), false},
		{"C3 mutable even after policy end", schema.CycleC3, policyEnd.Add(time.Hour), false},
		{"C3 frozen after own end", schema.CycleC3, cal[schema.CycleC3].End.Add(time.Hour), true},
		{"C6 mutable before start", schema.CycleC6, cal[schema.CycleC1].Start, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldFreezeNow(cal, policy, tt.cycle, tt.t))
			// Refresh is always the exact complement of freezing.
			assert.Equal(t, !tt.want, ShouldAllowRefreshForCycle(cal, policy, tt.cycle, tt.t))
		})
	}
}

func TestShouldFreezeNowMissingWindow(t *testing.T) {
	cal := schema.CycleCalendar{}
	assert.False(t, ShouldFreezeNow(cal, schema.CycleC2, schema.CycleC1, time.Now()))
}

func kpiRow(pod string, cycle schema.CycleKey, committed int) schema.CycleKpiRow {
	return schema.CycleKpiRow{Pod: pod, Cycle: cycle, Committed: committed, Status: schema.StatusOK}
}

func TestFallbackCycle(t *testing.T) {
	t.Run("current has committed work", func(t *testing.T) {
		rows := []schema.CycleKpiRow{
			kpiRow("atlas", schema.CycleC2, 3),
			kpiRow("nimbus", schema.CycleC3, 5),
		}
		got, used := FallbackCycle(rows, schema.CycleC2)
		assert.Equal(t, schema.CycleC2, got)
		assert.False(t, used)
	})

	t.Run("substitutes cycle with highest total", func(t *testing.T) {
		rows := []schema.CycleKpiRow{
			kpiRow("atlas", schema.CycleC1, 2),
			kpiRow("nimbus", schema.CycleC1, 1),
			kpiRow("atlas", schema.CycleC3, 2),
		}
		got, used := FallbackCycle(rows, schema.CycleC2)
		assert.Equal(t, schema.CycleC1, got)
		assert.True(t, used)
	})

	t.Run("all cycles empty keeps current", func(t *testing.T) {
		rows := []schema.CycleKpiRow{
			kpiRow("atlas", schema.CycleC1, 0),
			kpiRow("atlas", schema.CycleC2, 0),
		}
		got, used := FallbackCycle(rows, schema.CycleC4)
		assert.Equal(t, schema.CycleC4, got)
		assert.False(t, used)
	})

	t.Run("tie resolves to earliest cycle", func(t *testing.T) {
		rows := []schema.CycleKpiRow{
			kpiRow("atlas", schema.CycleC3, 4),
			kpiRow("atlas", schema.CycleC5, 4),
		}
		got, used := FallbackCycle(rows, schema.CycleC1)
		assert.Equal(t, schema.CycleC3, got)
		assert.True(t, used)
	})

	t.Run("no rows", func(t *testing.T) {
		got, used := FallbackCycle(nil, schema.CycleC1)
		assert.Equal(t, schema.CycleC1, got)
		assert.False(t, used)
	})
}
