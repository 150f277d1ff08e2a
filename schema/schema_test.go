package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCycleIndex(t *testing.T) {
	assert.Equal(t, 0, CycleIndex(CycleC1))
	assert.Equal(t, 5, CycleIndex(CycleC6))
	assert.Equal(t, -1, CycleIndex(CycleKey("C9")))
}

func TestCycleWindowContains(t *testing.T) {
	w := CycleWindow{
		Start: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 16, 23, 59, 59, 0, time.UTC),
	}

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"before start", w.Start.Add(-time.Second), false},
		{"at start", w.Start, true},
		{"inside", w.Start.AddDate(0, 0, 5), true},
		{"at end", w.End, true},
		{"after end", w.End.Add(time.Second), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Contains(tt.t))
		})
	}
}

func TestBaselineLabelID(t *testing.T) {
	lc := LabelConfig{
		DelLabelID:       "lbl-del",
		CancelledLabelID: "lbl-cancelled",
		CycleLabels: map[string]map[CycleKey]string{
			"Q1-26": {CycleC1: "lbl-c1", CycleC2: "lbl-c2"},
		},
	}

	assert.Equal(t, "lbl-c1", lc.BaselineLabelID("Q1-26", CycleC1))
	assert.Empty(t, lc.BaselineLabelID("Q1-26", CycleC3))
	assert.Empty(t, lc.BaselineLabelID("Q4-25", CycleC1))
}
