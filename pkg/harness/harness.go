// Package harness provides the minimal runtime needed to author
// and execute a conformance test file: test case registration,
// assertion recording, deferred asynchronous completion with
// timeouts, and ordered pass/fail reporting.
//
// The harness performs no parallel execution of its own. It is
// built for a cooperative host: an asynchronous test case
// suspends when its function returns without calling Done, and
// host callbacks (timers, event deliveries) later complete it
// through the same API. Calls may arrive from any goroutine in
// any interleaving; a mutex serializes registry mutation, and
// records always land in exact call order. The harness never
// reorders or buffers.
//
// Errors are contained per test case: a panic inside a test
// function fails that case only, a timeout settles its case as
// timeout, and a signal arriving after finalization is a logged
// diagnostic, never a mutation. Report therefore always returns
// a complete, registration-ordered account of every test case.
package harness

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"digital.vasic.conformance/pkg/logging"
)

// ErrStarted is returned by Configure once any test has
// started.
var ErrStarted = errors.New(
	"harness already started: configuration is fixed",
)

// Harness registers test cases, collects their assertion
// results, and produces the ordered report.
type Harness struct {
	mu   sync.Mutex
	opts Options

	cases   []*TestCase
	started bool

	// implicit is the single-test-mode case, nil otherwise.
	implicit *TestCase

	// completionCh is closed whenever a case reaches a
	// terminal status, waking Wait.
	completionCh chan struct{}
}

// New creates a harness. In single-test mode the implicit
// asynchronous test case is registered immediately, so
// Configure is rejected from that point on.
func New(opts ...Option) *Harness {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	h := &Harness{opts: options}

	if options.SingleTest {
		h.implicit = h.register(options.TestName, true)
	}

	return h
}

// Configure re-applies options on a harness that has not yet
// started any test. It fails with ErrStarted otherwise, leaving
// the original options in place.
func (h *Harness) Configure(opts ...Option) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.started {
		return ErrStarted
	}

	options := h.opts
	for _, opt := range opts {
		opt(&options)
	}
	h.opts = options

	return nil
}

// Test registers a synchronous test case and runs fn to
// completion. A panic inside fn fails the case with the panic
// message; otherwise the case passes or fails based on its
// recorded assertions. A panic never aborts sibling tests.
func (h *Harness) Test(
	name string,
	fn func(*TestCase),
) *TestCase {
	tc := h.register(name, false)

	if err := runProtected(fn, tc); err != nil {
		h.failUncaught(tc, err)
		return tc
	}

	h.mu.Lock()
	if !tc.status.IsFinal() {
		tc.finalizeLocked()
	}
	h.mu.Unlock()
	h.signalCompletion()

	return tc
}

// AsyncTest registers an asynchronous test case and runs fn
// once. The case stays pending until Done is called on it or
// the configured timeout elapses, whichever comes first. A
// panic inside fn fails the case immediately.
func (h *Harness) AsyncTest(
	name string,
	fn func(*TestCase),
) *TestCase {
	tc := h.register(name, true)

	if err := runProtected(fn, tc); err != nil {
		h.failUncaught(tc, err)
	}

	return tc
}

// Done completes the implicit single-test-mode case. Outside
// single-test mode it is a diagnostic no-op.
func (h *Harness) Done() {
	h.mu.Lock()
	implicit := h.implicit
	logger := h.opts.Logger
	h.mu.Unlock()

	if implicit == nil {
		logger.LogDiagnostic(logging.Diagnostic{
			Kind: "stray_done",
			Detail: "harness done() called outside " +
				"single-test mode",
		})
		return
	}

	implicit.Done()
}

// Implicit returns the single-test-mode case, or nil when the
// harness runs in multi-test mode.
func (h *Harness) Implicit() *TestCase {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.implicit
}

// Report returns a snapshot of every registered test case in
// registration order, regardless of completion order. Partial
// failure never truncates the report.
func (h *Harness) Report() []Result {
	h.mu.Lock()
	defer h.mu.Unlock()

	results := make([]Result, 0, len(h.cases))
	for _, tc := range h.cases {
		results = append(results, tc.snapshotLocked())
	}
	return results
}

// AllFinal returns true once every registered test case has
// reached a terminal status.
func (h *Harness) AllFinal() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.allFinalLocked()
}

// Wait blocks until every registered test case is terminal or
// the context is cancelled. Timeouts guarantee progress: an
// asynchronous case that never completes settles as timeout.
func (h *Harness) Wait(ctx context.Context) error {
	for {
		h.mu.Lock()
		if h.allFinalLocked() {
			h.mu.Unlock()
			return nil
		}
		if h.completionCh == nil {
			h.completionCh = make(chan struct{})
		}
		ch := h.completionCh
		h.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// register creates a test case, marks the harness started, and
// arms the timeout for asynchronous cases.
func (h *Harness) register(name string, async bool) *TestCase {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.started = true

	tc := &TestCase{
		h:         h,
		name:      name,
		status:    StatusPending,
		async:     async,
		startTime: time.Now(),
	}
	h.cases = append(h.cases, tc)

	if async {
		timeout := h.opts.Timeout
		tc.timer = time.AfterFunc(timeout, func() {
			tc.timeoutFire(timeout)
		})
	}

	h.opts.Logger.Debug("test registered",
		logging.StringField("test", name),
		logging.BoolField("async", async),
	)

	return tc
}

// failUncaught settles a case as fail after a panic escaped its
// test function.
func (h *Harness) failUncaught(tc *TestCase, err error) {
	h.mu.Lock()
	if !tc.status.IsFinal() {
		tc.message = err.Error()
		tc.settleLocked(StatusFail)
	}
	logger := h.opts.Logger
	h.mu.Unlock()

	logger.Error("uncaught exception in test",
		logging.StringField("test", tc.name),
		logging.ErrorField(err),
	)

	h.signalCompletion()
}

// signalCompletion wakes any Wait callers after a case reaches
// a terminal status.
func (h *Harness) signalCompletion() {
	h.mu.Lock()
	if h.completionCh != nil {
		close(h.completionCh)
		h.completionCh = nil
	}
	h.mu.Unlock()
}

// allFinalLocked reports whether every case is terminal.
// Caller holds the mutex.
func (h *Harness) allFinalLocked() bool {
	for _, tc := range h.cases {
		if !tc.status.IsFinal() {
			return false
		}
	}
	return true
}

// runProtected invokes fn and converts an escaped panic into an
// error so the harness boundary can contain it.
func runProtected(
	fn func(*TestCase),
	tc *TestCase,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("uncaught exception: %v", r)
		}
	}()

	fn(tc)
	return nil
}
