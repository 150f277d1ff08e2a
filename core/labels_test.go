package core

import (
	"testing"

	"podpulse/schema"

	"github.com/stretchr/testify/assert"
)

func TestNewLabelSet(t *testing.T) {
	set := NewLabelSet([]schema.Label{
		{ID: "lbl-a", Name: "DEL"},
		{ID: "lbl-b", Name: "C1 Q1-26"},
		{ID: "lbl-a", Name: "duplicate"},
	})

	assert.Len(t, set, 2)
	assert.True(t, set.Has("lbl-a"))
	assert.True(t, set.Has("lbl-b"))
	assert.False(t, set.Has("lbl-c"))
}

func TestIsCommitted(t *testing.T) {
	set := NewLabelSet([]schema.Label{{ID: "lbl-c1"}, {ID: "lbl-del"}})
	cancelled := NewLabelSet([]schema.Label{{ID: "lbl-c1"}, {ID: "lbl-cancelled"}})

	tests := []struct {
		name      string
		set       LabelSet
		baseline  string
		cancelled string
		want      bool
	}{
		{"baseline present", set, "lbl-c1", "lbl-cancelled", true},
		{"baseline missing", set, "lbl-c2", "lbl-cancelled", false},
		{"cancelled wins over baseline", cancelled, "lbl-c1", "lbl-cancelled", false},
		{"empty baseline commits nothing", set, "", "lbl-cancelled", false},
		{"no cancelled label configured", cancelled, "lbl-c1", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCommitted(tt.set, tt.baseline, tt.cancelled))
		})
	}
}
