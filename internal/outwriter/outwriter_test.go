package outwriter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"podpulse/internal/contract"
	"podpulse/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *contract.Config {
	return &contract.Config{
		Output:       schema.TextOut,
		Width:        120,
		Workers:      4,
		UseColors:    false,
		CacheBackend: schema.SQLiteBackend,
	}
}

func sampleKpiReport() *schema.KpiReport {
	return &schema.KpiReport{
		Success:       true,
		Quarter:       "Q1-26",
		CurrentCycle:  schema.CycleC2,
		FallbackCycle: schema.CycleC2,
		Rows: []schema.CycleKpiRow{
			{Pod: "atlas", Cycle: schema.CycleC1, Committed: 8, Completed: 6, DeliveryPct: "75%", Spillover: 2, Status: schema.StatusOK, Frozen: true},
			{Pod: "atlas", Cycle: schema.CycleC2, Committed: 5, Completed: 5, DeliveryPct: "100%", Spillover: 0, Status: schema.StatusOK},
			{Pod: "nimbus", Cycle: schema.CycleC1, Committed: 0, Completed: 0, DeliveryPct: "0%", Spillover: 0, Status: schema.StatusFetchFailed},
		},
		FetchedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestWriteKpiTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeKpiTable(sampleKpiReport(), testConfig(), 120*time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "atlas")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, contract.HealthyValue)
	assert.Contains(t, out, "FETCH_FAILED")
	assert.Contains(t, out, "current cycle C2")
	assert.NotContains(t, out, "instead")
}

func TestWriteKpiTableFallbackNote(t *testing.T) {
	report := sampleKpiReport()
	report.FallbackCycle = schema.CycleC1
	report.FallbackUsed = true

	var buf bytes.Buffer
	err := writeKpiTable(report, testConfig(), time.Millisecond, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "showing C1 instead")
}

func TestWriteKpiTableError(t *testing.T) {
	report := &schema.KpiReport{
		Success:      false,
		ErrorCode:    "missing_pods_config",
		ErrorMessage: "no pods configured",
	}

	var buf bytes.Buffer
	err := writeKpiTable(report, testConfig(), time.Millisecond, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no pods configured")
	assert.Contains(t, buf.String(), "missing_pods_config")
}

func TestWriteFeatureTable(t *testing.T) {
	report := &schema.FeatureReport{
		Success: true,
		Rows: []schema.FeatureRow{
			{Pod: "atlas", Project: "Contributor Portal", State: schema.StateInFlight, RawState: "started", Lead: "Sam", Target: "2026-03-31", UpdatedAt: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)},
		},
		PodStatus: map[string]schema.RowStatus{
			"atlas":  schema.StatusOK,
			"nimbus": schema.StatusNoInitiative,
		},
		FetchedAt: time.Now(),
	}

	var buf bytes.Buffer
	err := writeFeatureTable(report, testConfig(), time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Contributor Portal")
	assert.Contains(t, out, "in_flight")
	assert.Contains(t, out, "Pod nimbus: NO_INITIATIVE_ID")
	// OK pods are not called out individually
	assert.NotContains(t, out, "Pod atlas:")
}

func TestWriteResolveText(t *testing.T) {
	report := &schema.ResolveReport{
		Success: true,
		Query:   "Contributor Portal",
		Match: &schema.MatchResult{
			Pod:     "atlas",
			Project: schema.Project{ID: "p1", Name: "Contributor Portal", State: "started", Lead: "Sam", TargetDate: "2026-03-31"},
			Score:   1000,
		},
		FetchedAt: time.Now(),
	}

	var buf bytes.Buffer
	err := writeResolveText(report, testConfig(), time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `Query: "Contributor Portal"`)
	assert.Contains(t, out, "pod atlas, score 1000")
	assert.Contains(t, out, "Lead: Sam")
}

func TestWriteResolveTextNoMatch(t *testing.T) {
	report := &schema.ResolveReport{
		Success:   true,
		Query:     "zzz",
		FetchedAt: time.Now(),
	}

	var buf bytes.Buffer
	err := writeResolveText(report, testConfig(), time.Millisecond, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No match found")
}

func TestWriteCycleTable(t *testing.T) {
	report := &schema.CycleReport{
		Success:     true,
		PolicyCycle: schema.CycleC2,
		Rows: []schema.CycleRow{
			{Pod: "atlas", CurrentCycle: schema.CycleC3, Frozen: false, Refreshable: true},
			{Pod: "nimbus", CurrentCycle: schema.CycleC3, Frozen: true, Refreshable: false},
		},
		FetchedAt: time.Now(),
	}

	var buf bytes.Buffer
	err := writeCycleTable(report, testConfig(), time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "atlas")
	assert.Contains(t, out, "C3")
	assert.Contains(t, out, "Freeze policy cycle: C2")
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	report := sampleKpiReport()

	err := writeCSVWithHeader(&buf, []string{"pod", "cycle"}, func(w *csv.Writer) error {
		for _, r := range report.Rows {
			if err := w.Write([]string{r.Pod, string(r.Cycle)}); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "pod,cycle", lines[0])
	assert.Len(t, lines, 4)
}

func TestDeliveryPctValue(t *testing.T) {
	assert.Equal(t, 75, deliveryPctValue("75%"))
	assert.Equal(t, 0, deliveryPctValue("0%"))
	assert.Equal(t, 100, deliveryPctValue("100%"))
	assert.Equal(t, 0, deliveryPctValue("garbage"))
}

func TestGetMaxTableNameWidth(t *testing.T) {
	narrow := &contract.Config{Width: 40}
	assert.Equal(t, 15, getMaxTableNameWidth(narrow))

	wide := &contract.Config{Width: 500}
	assert.Equal(t, 60, getMaxTableNameWidth(wide))

	medium := &contract.Config{Width: 100}
	assert.Equal(t, 50, getMaxTableNameWidth(medium))
}
