// Package monitor provides live observation of conformance
// runs: an event collector, an aggregated dashboard, and a
// WebSocket server streaming events to clients.
package monitor

import "time"

// EventType represents the type of run event.
type EventType string

const (
	EventStarted   EventType = "started"
	EventCompleted EventType = "completed"
	EventFailed    EventType = "failed"
	EventSkipped   EventType = "skipped"
	EventTimedOut  EventType = "timed_out"
	EventLog       EventType = "log"
)

// RunEvent represents a lifecycle event during fixture
// execution.
type RunEvent struct {
	Type      EventType     `json:"type"`
	Fixture   string        `json:"fixture"`
	Engine    string        `json:"engine,omitempty"`
	Status    string        `json:"status,omitempty"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
