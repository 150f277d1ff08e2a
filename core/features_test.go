package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"podpulse/internal/contract"
	"podpulse/internal/tracker"
	"podpulse/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func featureConfig() *contract.Config {
	return &contract.Config{
		Pods: []schema.Pod{
			{Name: "atlas", InitiativeID: "init-atlas"},
			{Name: "nimbus"}, // no initiative id
			{Name: "quill", InitiativeID: "init-quill"},
		},
		PolicyCycle: schema.CycleC2,
		CacheTTL:    6 * time.Hour,
		Workers:     4,
	}
}

func TestComputeFeatureMovement(t *testing.T) {
	shortenRetryDelay(t)
	updated := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	projects := []schema.Project{
		{ID: "p1", Name: "Contributor Portal", State: "started", Lead: "Sam", TargetDate: "2026-03-31", UpdatedAt: updated},
		{ID: "p2", Name: "Billing Revamp", State: "backlog", UpdatedAt: updated},
	}

	client := &tracker.MockTrackerClient{}
	client.On("ListProjects", mock.Anything, "init-atlas").Return(projects, nil)
	client.On("ListProjects", mock.Anything, "init-quill").Return(nil, errors.New("down"))

	report := ComputeFeatureMovement(context.Background(), featureConfig(), client, nil)
	require.True(t, report.Success)
	assert.False(t, report.FetchedAt.IsZero())

	// Fetch outcomes are data, one per pod
	assert.Equal(t, schema.StatusOK, report.PodStatus["atlas"])
	assert.Equal(t, schema.StatusNoInitiative, report.PodStatus["nimbus"])
	assert.Equal(t, schema.StatusFetchFailed, report.PodStatus["quill"])

	require.Len(t, report.Rows, 2)
	first := report.Rows[0]
	assert.Equal(t, "atlas", first.Pod)
	assert.Equal(t, "Contributor Portal", first.Project)
	assert.Equal(t, schema.StateInFlight, first.State)
	assert.Equal(t, "started", first.RawState)
	assert.Equal(t, "Sam", first.Lead)
	assert.Equal(t, "2026-03-31", first.Target)

	second := report.Rows[1]
	assert.Equal(t, schema.StateNotStarted, second.State)
	assert.Equal(t, "backlog", second.RawState)
}

func TestComputeFeatureMovementNoPods(t *testing.T) {
	cfg := featureConfig()
	cfg.Pods = nil

	report := ComputeFeatureMovement(context.Background(), cfg, &tracker.MockTrackerClient{}, nil)
	assert.False(t, report.Success)
	assert.Equal(t, ErrCodeNoPods, report.ErrorCode)
	assert.Empty(t, report.Rows)
}
