package monitor

import (
	"sync"
	"time"
)

// DashboardData provides a real-time snapshot of run state.
type DashboardData struct {
	mu        sync.RWMutex
	RunID     string                  `json:"run_id"`
	StartTime time.Time               `json:"start_time"`
	Status    string                  `json:"status"` // running, completed, failed
	Fixtures  map[string]FixtureState `json:"fixtures"`
	Summary   DashboardSummary        `json:"summary"`
}

// FixtureState represents the current state of a fixture in the
// dashboard.
type FixtureState struct {
	Fixture   string        `json:"fixture"`
	Engine    string        `json:"engine,omitempty"`
	Status    string        `json:"status"`
	StartTime *time.Time    `json:"start_time,omitempty"`
	EndTime   *time.Time    `json:"end_time,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Message   string        `json:"message,omitempty"`
}

// DashboardSummary holds aggregate stats for the dashboard.
type DashboardSummary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Skipped  int     `json:"skipped"`
	Running  int     `json:"running"`
	Pending  int     `json:"pending"`
	PassRate float64 `json:"pass_rate"`
	Elapsed  string  `json:"elapsed"`
}

// NewDashboardData creates a new dashboard data instance.
func NewDashboardData(runID string) *DashboardData {
	return &DashboardData{
		RunID:     runID,
		StartTime: time.Now(),
		Status:    "running",
		Fixtures:  make(map[string]FixtureState),
	}
}

// UpdateFromEvent updates dashboard state from a run event.
func (d *DashboardData) UpdateFromEvent(event RunEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now()
	state, exists := d.Fixtures[event.Fixture]
	if !exists {
		state = FixtureState{
			Fixture: event.Fixture,
			Engine:  event.Engine,
		}
	}

	switch event.Type {
	case EventStarted:
		state.Status = "running"
		state.StartTime = &now
	case EventCompleted:
		state.Status = "passed"
		state.EndTime = &now
		state.Duration = event.Duration
	case EventFailed:
		state.Status = "failed"
		state.EndTime = &now
		state.Message = event.Message
	case EventSkipped:
		state.Status = "skipped"
	case EventTimedOut:
		state.Status = "timed_out"
		state.EndTime = &now
	}

	d.Fixtures[event.Fixture] = state
	d.recalcSummary()
}

func (d *DashboardData) recalcSummary() {
	s := DashboardSummary{}
	for _, f := range d.Fixtures {
		s.Total++
		switch f.Status {
		case "passed":
			s.Passed++
		case "failed":
			s.Failed++
		case "skipped":
			s.Skipped++
		case "running":
			s.Running++
		default:
			s.Pending++
		}
	}
	if completed := s.Passed + s.Failed; completed > 0 {
		s.PassRate = float64(s.Passed) /
			float64(completed) * 100
	}
	s.Elapsed = time.Since(d.StartTime).
		Round(time.Millisecond).String()
	d.Summary = s
}

// Snapshot returns a copy of the current dashboard state.
func (d *DashboardData) Snapshot() DashboardData {
	d.mu.RLock()
	defer d.mu.RUnlock()
	snap := DashboardData{
		RunID:     d.RunID,
		StartTime: d.StartTime,
		Status:    d.Status,
		Summary:   d.Summary,
	}
	snap.Fixtures = make(map[string]FixtureState, len(d.Fixtures))
	for k, v := range d.Fixtures {
		snap.Fixtures[k] = v
	}
	return snap
}

// SetStatus sets the overall run status.
func (d *DashboardData) SetStatus(status string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Status = status
}

// BuildDashboardData creates a DashboardData snapshot from an
// EventCollector by replaying all collected events.
func BuildDashboardData(
	collector *EventCollector,
) *DashboardData {
	data := NewDashboardData("snapshot")
	for _, event := range collector.Events() {
		data.UpdateFromEvent(event)
	}
	return data
}
