package monitor

import (
	"sync"
	"time"

	"digital.vasic.conformance/pkg/runner"
)

// EventCollector captures run events and timing data.
type EventCollector struct {
	mu       sync.RWMutex
	events   []RunEvent
	handlers []func(RunEvent)
	stats    CollectorStats
}

// CollectorStats holds aggregate statistics.
type CollectorStats struct {
	Total     int           `json:"total"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	TimedOut  int           `json:"timed_out"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// NewEventCollector creates a new event collector.
func NewEventCollector() *EventCollector {
	return &EventCollector{
		events: make([]RunEvent, 0, 64),
		stats:  CollectorStats{StartTime: time.Now()},
	}
}

// OnEvent registers a handler to be called for each event.
func (c *EventCollector) OnEvent(handler func(RunEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// Emit records an event and notifies all handlers.
func (c *EventCollector) Emit(event RunEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	c.mu.Lock()
	c.events = append(c.events, event)
	c.stats.Total++
	switch event.Type {
	case EventCompleted:
		c.stats.Passed++
	case EventFailed:
		c.stats.Failed++
	case EventSkipped:
		c.stats.Skipped++
	case EventTimedOut:
		c.stats.TimedOut++
	}
	c.stats.Duration = time.Since(c.stats.StartTime)
	handlers := make([]func(RunEvent), len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// EmitStarted emits a fixture started event.
func (c *EventCollector) EmitStarted(fixtureName, engineName string) {
	c.Emit(RunEvent{
		Type:      EventStarted,
		Fixture:   fixtureName,
		Engine:    engineName,
		Timestamp: time.Now(),
	})
}

// EmitResult emits the event matching a finished fixture run.
func (c *EventCollector) EmitResult(result *runner.Result) {
	event := RunEvent{
		Fixture:   result.Fixture,
		Engine:    result.Engine,
		Status:    string(result.Status),
		Duration:  result.Duration,
		Timestamp: time.Now(),
	}

	switch result.Status {
	case runner.StatusPassed:
		event.Type = EventCompleted
	case runner.StatusTimedOut:
		event.Type = EventTimedOut
	case runner.StatusSkipped:
		event.Type = EventSkipped
		event.Message = result.Error
	default:
		event.Type = EventFailed
		event.Message = result.Error
	}

	c.Emit(event)
}

// Events returns a copy of all collected events.
func (c *EventCollector) Events() []RunEvent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]RunEvent, len(c.events))
	copy(result, c.events)
	return result
}

// Stats returns the current aggregate statistics.
func (c *EventCollector) Stats() CollectorStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.Duration = time.Since(s.StartTime)
	return s
}

// Reset clears all collected events and statistics.
func (c *EventCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
	c.stats = CollectorStats{StartTime: time.Now()}
}
