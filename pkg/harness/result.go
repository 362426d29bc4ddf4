package harness

import "time"

// Status is the lifecycle state of a test case.
type Status string

// Status constants for test case outcomes. A test case starts
// pending and reaches exactly one terminal status.
const (
	StatusPending Status = "pending"
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"

	// StatusTimeout marks an asynchronous test case that never
	// signaled completion. It is distinct from StatusFail so a
	// report can tell "never completed" from "completed and
	// failed".
	StatusTimeout Status = "timeout"
)

// IsFinal returns true if the status is a terminal state.
func (s Status) IsFinal() bool {
	switch s {
	case StatusPass, StatusFail, StatusTimeout:
		return true
	}
	return false
}

// AssertionRecord captures the outcome of a single assertion
// call. Records are created once per invocation, never mutated,
// and owned by their test case in invocation order.
type AssertionRecord struct {
	// Description identifies the assertion, either caller
	// supplied or derived from the primitive name.
	Description string `json:"description"`

	// Passed indicates whether the assertion succeeded.
	Passed bool `json:"passed"`

	// Actual is the value that was observed.
	Actual any `json:"actual"`

	// Expected is the value the assertion expected.
	Expected any `json:"expected"`

	// Message is a human-readable explanation, populated on
	// failure with printable representations of both values.
	Message string `json:"message,omitempty"`

	// Seq is the invocation position within the test case,
	// starting at 0.
	Seq int `json:"seq"`
}

// Result is the immutable view of a test case returned by
// Report.
type Result struct {
	// Name is the test case name given at registration.
	Name string `json:"name"`

	// Status is the case's status at snapshot time.
	Status Status `json:"status"`

	// Message carries the failure or timeout explanation.
	Message string `json:"message,omitempty"`

	// Assertions holds the recorded assertion outcomes in
	// invocation order.
	Assertions []AssertionRecord `json:"assertions"`

	// StartTime is when the test case was registered.
	StartTime time.Time `json:"start_time"`

	// EndTime is when the test case reached a terminal
	// status; zero while pending.
	EndTime time.Time `json:"end_time"`

	// Duration is the wall-clock time from registration to
	// finalization.
	Duration time.Duration `json:"duration"`
}

// AllPassed returns true if every assertion in the result
// passed.
func (r *Result) AllPassed() bool {
	for _, a := range r.Assertions {
		if !a.Passed {
			return false
		}
	}
	return true
}
