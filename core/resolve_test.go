package core

import (
	"context"
	"errors"
	"testing"

	"podpulse/internal/tracker"
	"podpulse/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolveEntity(t *testing.T) {
	shortenRetryDelay(t)
	client := &tracker.MockTrackerClient{}
	client.On("ListProjects", mock.Anything, "init-atlas").Return([]schema.Project{
		{ID: "p1", Name: "Contributor management system"},
	}, nil)
	client.On("ListProjects", mock.Anything, "init-quill").Return([]schema.Project{
		{ID: "p2", Name: "Q1 26 - Contributor Portal"},
	}, nil)

	report := ResolveEntity(context.Background(), featureConfig(), client, nil, "Contributor Portal")
	require.True(t, report.Success)
	assert.Equal(t, "Contributor Portal", report.Query)

	require.NotNil(t, report.Match)
	assert.Equal(t, "quill", report.Match.Pod)
	assert.Equal(t, "p2", report.Match.Project.ID)
	assert.Equal(t, ScoreSuffix, report.Match.Score)

	assert.Equal(t, schema.StatusNoInitiative, report.PodStatus["nimbus"])
}

func TestResolveEntityNoMatchIsSuccess(t *testing.T) {
	shortenRetryDelay(t)
	client := &tracker.MockTrackerClient{}
	client.On("ListProjects", mock.Anything, "init-atlas").Return([]schema.Project{
		{ID: "p1", Name: "Billing Revamp"},
	}, nil)
	client.On("ListProjects", mock.Anything, "init-quill").Return([]schema.Project{}, nil)

	report := ResolveEntity(context.Background(), featureConfig(), client, nil, "zzz nothing")
	require.True(t, report.Success)
	assert.Nil(t, report.Match)
}

func TestResolveEntityFailedPodsExcluded(t *testing.T) {
	shortenRetryDelay(t)
	client := &tracker.MockTrackerClient{}
	// atlas holds the only exact match but its fetch fails both times
	client.On("ListProjects", mock.Anything, "init-atlas").Return(nil, errors.New("down"))
	client.On("ListProjects", mock.Anything, "init-quill").Return([]schema.Project{
		{ID: "p2", Name: "Contributor management system"},
	}, nil)

	report := ResolveEntity(context.Background(), featureConfig(), client, nil, "Contributor Portal")
	require.True(t, report.Success)
	assert.Equal(t, schema.StatusFetchFailed, report.PodStatus["atlas"])

	// The partial match from the healthy pod wins by default
	require.NotNil(t, report.Match)
	assert.Equal(t, "quill", report.Match.Pod)
	assert.GreaterOrEqual(t, report.Match.Score, ScorePartial)
}

func TestResolveEntityNoPods(t *testing.T) {
	cfg := featureConfig()
	cfg.Pods = nil

	report := ResolveEntity(context.Background(), cfg, &tracker.MockTrackerClient{}, nil, "anything")
	assert.False(t, report.Success)
	assert.Equal(t, ErrCodeNoPods, report.ErrorCode)
}

func TestResolveEntityBlankQuery(t *testing.T) {
	for _, query := range []string{"", "   "} {
		report := ResolveEntity(context.Background(), featureConfig(), &tracker.MockTrackerClient{}, nil, query)
		assert.False(t, report.Success)
		assert.Equal(t, ErrCodeNoQuery, report.ErrorCode)
	}
}
