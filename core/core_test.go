package core

import (
	"testing"
	"time"

	"podpulse/internal/contract"
	"podpulse/internal/iocache"
	"podpulse/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestComputeCycleReport(t *testing.T) {
	cfg := &contract.Config{
		Pods: []schema.Pod{
			{Name: "atlas"},
			{Name: "nimbus"},
			{Name: "quill"}, // no calendar configured
		},
		Calendars: map[string]schema.CycleCalendar{
			"atlas":  testCalendar(),
			"nimbus": testCalendar(),
		},
		PolicyCycle: schema.CycleC2,
	}

	report := ComputeCycleReport(cfg)
	require.True(t, report.Success)
	assert.Equal(t, schema.CycleC2, report.PolicyCycle)

	// Only pods with calendars produce rows
	require.Len(t, report.Rows, 2)
	for _, r := range report.Rows {
		assert.NotEmpty(t, r.CurrentCycle)
		assert.Equal(t, !r.Frozen, r.Refreshable)
	}
}

func TestComputeCycleReportMissingConfig(t *testing.T) {
	t.Run("no pods", func(t *testing.T) {
		report := ComputeCycleReport(&contract.Config{})
		assert.False(t, report.Success)
		assert.Equal(t, ErrCodeNoPods, report.ErrorCode)
	})

	t.Run("no calendars", func(t *testing.T) {
		report := ComputeCycleReport(&contract.Config{Pods: []schema.Pod{{Name: "atlas"}}})
		assert.False(t, report.Success)
		assert.Equal(t, ErrCodeNoCalendars, report.ErrorCode)
	})
}

func TestRecordSnapshot(t *testing.T) {
	cfg := kpiConfig()
	report := &schema.KpiReport{
		Success:       true,
		Quarter:       "Q1-26",
		CurrentCycle:  schema.CycleC2,
		FallbackCycle: schema.CycleC2,
		Rows: []schema.CycleKpiRow{
			{Pod: "atlas", Cycle: schema.CycleC1, Committed: 2, Completed: 1, DeliveryPct: "50%", Status: schema.StatusOK},
		},
		FetchedAt: time.Now(),
	}
	start := time.Now()
	duration := 2 * time.Second

	store := &iocache.MockSnapshotStore{}
	store.On("BeginSnapshot", start, mock.AnythingOfType("map[string]interface {}")).Return(int64(7), nil)
	store.On("RecordCycleRows", int64(7), report.Rows, report.FetchedAt).Return(nil)
	store.On("EndSnapshot", int64(7), start.Add(duration), len(cfg.Pods), schema.CycleC2).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetSnapshotStore").Return(store)

	recordSnapshot(cfg, mgr, report, start, duration)

	store.AssertExpectations(t)
	// Config params carry the run context
	params := store.Calls[0].Arguments.Get(1).(map[string]any)
	assert.Equal(t, "Q1-26", params["quarter"])
	assert.Equal(t, "C2", params["current_cycle"])
}

func TestRecordSnapshotNilManager(t *testing.T) {
	// Must not panic without a store
	recordSnapshot(kpiConfig(), nil, &schema.KpiReport{}, time.Now(), time.Second)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetSnapshotStore").Return(nil)
	recordSnapshot(kpiConfig(), mgr, &schema.KpiReport{}, time.Now(), time.Second)
	mgr.AssertExpectations(t)
}
