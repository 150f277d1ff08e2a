// Package schema has configs, models and global variables for all parts of podpulse.
package schema

import "time"

// Pod is one organizational sub-team whose delivery metrics are tracked.
type Pod struct {
	Name         string `json:"name" mapstructure:"name"`
	TeamID       string `json:"team_id" mapstructure:"team-id"`
	InitiativeID string `json:"initiative_id,omitempty" mapstructure:"initiative-id"`
}

// Label is a tracker label attached to a work item.
type Label struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// WorkItemState is the tracker-reported state of a work item.
// Type is the tracker's state category (e.g. "completed", "started").
type WorkItemState struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// WorkItem is one deliverable fetched from the tracker backend.
type WorkItem struct {
	ID          string        `json:"id"`
	Title       string        `json:"title,omitempty"`
	State       WorkItemState `json:"state"`
	Labels      []Label       `json:"labels"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// Project is one tracker project ("feature") under a pod's initiative.
type Project struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	State      string    `json:"state"`
	Lead       string    `json:"lead,omitempty"`
	TargetDate string    `json:"target_date,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CycleWindow is the closed date interval of one cycle. End is inclusive.
type CycleWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window, boundaries included.
func (w CycleWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// CycleCalendar maps each cycle key to its date window for one pod.
type CycleCalendar map[CycleKey]CycleWindow
