package metrics

import (
	"sync"
	"time"
)

// Collector implements RunMetrics with in-memory counters. It
// is safe for concurrent use, so parallel runs can share one
// instance. Export to a real metrics backend is done by the
// host application.
type Collector struct {
	mu         sync.Mutex
	tests      map[string]int
	assertions map[string]int
	durations  map[string][]time.Duration
	runTotal   int
	active     int
}

// NewCollector creates a new Collector.
func NewCollector() *Collector {
	return &Collector{
		tests:      make(map[string]int),
		assertions: make(map[string]int),
		durations:  make(map[string][]time.Duration),
	}
}

func (c *Collector) RecordTest(
	fixture, status string,
	duration time.Duration,
) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tests[fixture+":"+status]++
	c.durations[fixture] = append(c.durations[fixture], duration)
}

func (c *Collector) RecordAssertion(
	fixture, evaluator string,
	passed bool,
) {
	status := "failed"
	if passed {
		status = "passed"
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assertions[fixture+":"+evaluator+":"+status]++
}

func (c *Collector) IncrementRunTotal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runTotal++
}

func (c *Collector) SetActiveTests(count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = count
}

// TestCount returns the count for a fixture+status combination.
func (c *Collector) TestCount(fixture, status string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tests[fixture+":"+status]
}

// AssertionCount returns the count for a
// fixture+evaluator+status combination.
func (c *Collector) AssertionCount(
	fixture, evaluator, status string,
) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.assertions[fixture+":"+evaluator+":"+status]
}

// Durations returns recorded durations for a fixture.
func (c *Collector) Durations(fixture string) []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]time.Duration, len(c.durations[fixture]))
	copy(result, c.durations[fixture])
	return result
}

// RunTotal returns the total number of runs.
func (c *Collector) RunTotal() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runTotal
}

// ActiveTests returns the current active tests gauge.
func (c *Collector) ActiveTests() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}
