package contract

import (
	"testing"

	"podpulse/schema"

	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{100, StrongValue},
		{90, StrongValue},
		{89, HealthyValue},
		{70, HealthyValue},
		{69, AtRiskValue},
		{40, AtRiskValue},
		{39, OffTrackValue},
		{0, OffTrackValue},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetPlainLabel(tt.pct), "pct=%d", tt.pct)
	}
}

func TestGetStatusLabel(t *testing.T) {
	// Colored output still contains the raw status text.
	assert.Contains(t, GetStatusLabel(schema.StatusOK), "OK")
	assert.Contains(t, GetStatusLabel(schema.StatusNoTeamID), "NO_TEAM_ID")
	assert.Contains(t, GetStatusLabel(schema.StatusFetchFailed), "FETCH_FAILED")
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"short name unchanged", "Portal", 20, "Portal"},
		{"exact width unchanged", "Portal", 6, "Portal"},
		{"truncated with ellipsis", "Contributor Portal Revamp", 10, "Contrib..."},
		{"tiny width unchanged", "Portal", 3, "Portal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateName(tt.input, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "true", "1", "YES", "True"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, got, s)
	}
	for _, s := range []string{"no", "false", "0", "NO"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, got, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}
