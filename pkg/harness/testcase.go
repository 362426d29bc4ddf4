package harness

import (
	"fmt"
	"time"

	"digital.vasic.conformance/pkg/assertion"
	"digital.vasic.conformance/pkg/logging"
)

// TestCase is one named unit of verification. It is created by
// Test or AsyncTest, mutated only through harness API calls,
// and immutable once its status leaves pending.
//
// All methods are safe to call from host callbacks (timers,
// event handlers); the owning harness serializes mutation.
type TestCase struct {
	h *Harness

	name       string
	status     Status
	message    string
	assertions []AssertionRecord
	async      bool

	startTime time.Time
	endTime   time.Time

	timer *time.Timer
}

// Name returns the test case name given at registration.
func (tc *TestCase) Name() string {
	return tc.name
}

// Status returns the current status.
func (tc *TestCase) Status() Status {
	tc.h.mu.Lock()
	defer tc.h.mu.Unlock()
	return tc.status
}

// Equals records an assertion that actual equals expected under
// the same-value contract of assertion.Equal: numeric equality
// for numbers regardless of width, codepoint equality for
// strings, structural equality for sequences and maps. On
// failure the record's message includes printable
// representations of both values.
func (tc *TestCase) Equals(
	actual, expected any,
	desc ...string,
) {
	passed := assertion.Equal(actual, expected)

	var message string
	if !passed {
		message = fmt.Sprintf(
			"expected %s but got %s",
			assertion.Format(expected),
			assertion.Format(actual),
		)
	}

	tc.record(AssertionRecord{
		Description: description("assert_equals", desc),
		Passed:      passed,
		Actual:      actual,
		Expected:    expected,
		Message:     message,
	})
}

// NotEquals records an assertion that actual differs from
// expected.
func (tc *TestCase) NotEquals(
	actual, expected any,
	desc ...string,
) {
	passed := !assertion.Equal(actual, expected)

	var message string
	if !passed {
		message = fmt.Sprintf(
			"expected a value different from %s",
			assertion.Format(expected),
		)
	}

	tc.record(AssertionRecord{
		Description: description("assert_not_equals", desc),
		Passed:      passed,
		Actual:      actual,
		Expected:    expected,
		Message:     message,
	})
}

// True records an assertion that value is the boolean true.
// A non-bool value fails, it is never coerced.
func (tc *TestCase) True(value any, desc ...string) {
	b, ok := value.(bool)
	passed := ok && b

	var message string
	if !passed {
		message = fmt.Sprintf(
			"expected true but got %s",
			assertion.Format(value),
		)
	}

	tc.record(AssertionRecord{
		Description: description("assert_true", desc),
		Passed:      passed,
		Actual:      value,
		Expected:    true,
		Message:     message,
	})
}

// False records an assertion that value is the boolean false.
func (tc *TestCase) False(value any, desc ...string) {
	b, ok := value.(bool)
	passed := ok && !b

	var message string
	if !passed {
		message = fmt.Sprintf(
			"expected false but got %s",
			assertion.Format(value),
		)
	}

	tc.record(AssertionRecord{
		Description: description("assert_false", desc),
		Passed:      passed,
		Actual:      value,
		Expected:    false,
		Message:     message,
	})
}

// Record evaluates a declarative assertion result and records
// it. It lets fixture-driven assertions flow through the same
// per-case bookkeeping as the direct primitives.
func (tc *TestCase) Record(r assertion.Result) {
	desc := r.Message
	if desc == "" {
		desc = fmt.Sprintf("%s %s", r.Type, r.Target)
	}

	tc.record(AssertionRecord{
		Description: desc,
		Passed:      r.Passed,
		Actual:      r.Actual,
		Expected:    r.Expected,
		Message:     r.Message,
	})
}

// Done signals that the test case has finished. The first call
// transitions a pending case to pass (or fail, if any recorded
// assertion failed) and cancels the timeout. Later calls are
// diagnostic no-ops: an already-finalized case is never
// mutated.
func (tc *TestCase) Done() {
	tc.h.mu.Lock()

	if tc.status.IsFinal() {
		logger := tc.h.opts.Logger
		tc.h.mu.Unlock()
		logger.LogDiagnostic(logging.Diagnostic{
			Kind: "late_done",
			Test: tc.name,
			Detail: "done() called after the test case " +
				"was finalized",
		})
		return
	}

	tc.finalizeLocked()
	tc.h.mu.Unlock()

	tc.h.signalCompletion()
}

// record appends an assertion record, or logs a diagnostic if
// the case has already finalized. Records land in exact call
// order; the harness never reorders or buffers.
func (tc *TestCase) record(r AssertionRecord) {
	tc.h.mu.Lock()

	if tc.status.IsFinal() {
		logger := tc.h.opts.Logger
		tc.h.mu.Unlock()
		logger.LogDiagnostic(logging.Diagnostic{
			Kind: "late_assertion",
			Test: tc.name,
			Detail: fmt.Sprintf(
				"%s arrived after the test case was finalized",
				r.Description,
			),
		})
		return
	}

	r.Seq = len(tc.assertions)
	tc.assertions = append(tc.assertions, r)
	tc.h.mu.Unlock()
}

// finalizeLocked moves a pending case to pass or fail based on
// its recorded assertions. Caller holds the harness mutex.
func (tc *TestCase) finalizeLocked() {
	status := StatusPass
	for _, a := range tc.assertions {
		if !a.Passed {
			status = StatusFail
			tc.message = a.Message
			break
		}
	}

	tc.settleLocked(status)
}

// settleLocked assigns a terminal status and stops the timeout
// timer. Caller holds the harness mutex.
func (tc *TestCase) settleLocked(status Status) {
	tc.status = status
	tc.endTime = time.Now()
	if tc.timer != nil {
		tc.timer.Stop()
		tc.timer = nil
	}
}

// timeoutFire is invoked by the timeout timer. A case that
// already finalized is left untouched; otherwise it settles as
// timeout regardless of recorded assertions, since it never
// signaled completion.
func (tc *TestCase) timeoutFire(timeout time.Duration) {
	tc.h.mu.Lock()

	if tc.status.IsFinal() {
		tc.h.mu.Unlock()
		return
	}

	tc.message = fmt.Sprintf(
		"test timed out after %v", timeout,
	)
	tc.settleLocked(StatusTimeout)
	logger := tc.h.opts.Logger
	tc.h.mu.Unlock()

	logger.Warn("test timed out",
		logging.StringField("test", tc.name),
		logging.Int64Field(
			"timeout_ms", timeout.Milliseconds(),
		),
	)

	tc.h.signalCompletion()
}

// snapshotLocked builds the immutable report view. Caller holds
// the harness mutex.
func (tc *TestCase) snapshotLocked() Result {
	assertions := make([]AssertionRecord, len(tc.assertions))
	copy(assertions, tc.assertions)

	r := Result{
		Name:       tc.name,
		Status:     tc.status,
		Message:    tc.message,
		Assertions: assertions,
		StartTime:  tc.startTime,
		EndTime:    tc.endTime,
	}
	if !tc.endTime.IsZero() {
		r.Duration = tc.endTime.Sub(tc.startTime)
	}
	return r
}

// description picks the caller-supplied description or falls
// back to the primitive name.
func description(fallback string, desc []string) string {
	if len(desc) > 0 && desc[0] != "" {
		return desc[0]
	}
	return fallback
}
