// Package metrics records counters for conformance runs.
package metrics

import "time"

// RunMetrics defines the interface for recording run metrics.
type RunMetrics interface {
	// RecordTest records a finished test case.
	RecordTest(fixture, status string, duration time.Duration)
	// RecordAssertion records an assertion evaluation.
	RecordAssertion(fixture, evaluator string, passed bool)
	// IncrementRunTotal increments the total run counter.
	IncrementRunTotal()
	// SetActiveTests sets the gauge of currently running tests.
	SetActiveTests(count int)
}

// NoopMetrics is a no-op implementation of RunMetrics useful
// for testing or when metrics collection is disabled.
type NoopMetrics struct{}

func (NoopMetrics) RecordTest(_, _ string, _ time.Duration) {}
func (NoopMetrics) RecordAssertion(_, _ string, _ bool)     {}
func (NoopMetrics) IncrementRunTotal()                      {}
func (NoopMetrics) SetActiveTests(_ int)                    {}
