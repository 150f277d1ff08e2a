package tracker

import (
	"context"

	"podpulse/internal/contract"
	"podpulse/schema"

	"github.com/stretchr/testify/mock"
)

// MockTrackerClient is a mock implementation of TrackerClient for testing.
type MockTrackerClient struct {
	mock.Mock
}

var _ contract.TrackerClient = &MockTrackerClient{} // Compile-time check

// ListDeliverables implements the TrackerClient interface.
func (m *MockTrackerClient) ListDeliverables(ctx context.Context, teamID, labelID string) ([]schema.WorkItem, error) {
	args := m.Called(ctx, teamID, labelID)
	items, _ := args.Get(0).([]schema.WorkItem)
	return items, args.Error(1)
}

// ListProjects implements the TrackerClient interface.
func (m *MockTrackerClient) ListProjects(ctx context.Context, initiativeID string) ([]schema.Project, error) {
	args := m.Called(ctx, initiativeID)
	projects, _ := args.Get(0).([]schema.Project)
	return projects, args.Error(1)
}
