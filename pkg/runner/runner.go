// Package runner drives fixture execution. It feeds a fixture
// payload to an engine, evaluates the fixture's assertions
// against the engine's output through a harness, and produces
// per-fixture results. Sequential and parallel modes are
// supported, with configurable timeouts and lifecycle hooks.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"digital.vasic.conformance/pkg/assertion"
	"digital.vasic.conformance/pkg/engine"
	"digital.vasic.conformance/pkg/fixture"
	"digital.vasic.conformance/pkg/harness"
	"digital.vasic.conformance/pkg/logging"
	"digital.vasic.conformance/pkg/metrics"
)

// Status is the aggregate outcome of a fixture run.
type Status string

const (
	// StatusPassed means every test case passed.
	StatusPassed Status = "passed"
	// StatusFailed means at least one test case failed.
	StatusFailed Status = "failed"
	// StatusTimedOut means a test case timed out and none
	// failed outright.
	StatusTimedOut Status = "timed_out"
	// StatusError means the run broke before assertions could
	// be evaluated.
	StatusError Status = "error"
	// StatusSkipped means the engine was not available.
	StatusSkipped Status = "skipped"
)

// Result is the outcome of running one fixture against one
// engine.
type Result struct {
	Fixture   string           `json:"fixture"`
	Title     string           `json:"title"`
	SpecLink  string           `json:"spec_link,omitempty"`
	Engine    string           `json:"engine"`
	Status    Status           `json:"status"`
	Error     string           `json:"error,omitempty"`
	Tests     []harness.Result `json:"tests"`
	StartTime time.Time        `json:"start_time"`
	EndTime   time.Time        `json:"end_time"`
	Duration  time.Duration    `json:"duration"`
}

// Runner defines the interface for fixture execution.
type Runner interface {
	// RunFixture executes a single parsed fixture.
	RunFixture(
		ctx context.Context,
		f *fixture.Fixture,
		eng engine.Engine,
	) (*Result, error)

	// RunFile loads and executes a single fixture file.
	RunFile(
		ctx context.Context,
		path string,
		eng engine.Engine,
	) (*Result, error)

	// RunDir loads all fixtures from a directory and executes
	// them sequentially in name order.
	RunDir(
		ctx context.Context,
		dir string,
		eng engine.Engine,
	) ([]*Result, error)

	// RunParallel executes fixtures concurrently with the
	// given concurrency limit. Results are returned in the
	// same order as the input fixtures.
	RunParallel(
		ctx context.Context,
		fixtures []*fixture.Fixture,
		eng engine.Engine,
		maxConcurrency int,
	) ([]*Result, error)
}

// Hook is a function invoked before or after a fixture run.
type Hook func(
	ctx context.Context,
	f *fixture.Fixture,
	eng engine.Engine,
) error

// ExecuteHook is called after runFixture completes and can
// override the returned result and error. This is only
// intended for testing.
type ExecuteHook func(
	f *fixture.Fixture,
	result *Result,
	err error,
) (*Result, error)

// DefaultRunner is the standard Runner implementation.
type DefaultRunner struct {
	eval        assertion.Engine
	logger      logging.Logger
	metrics     metrics.RunMetrics
	timeout     time.Duration
	preHooks    []Hook
	postHooks   []Hook
	executeHook ExecuteHook
}

// NewRunner creates a DefaultRunner with the supplied options.
func NewRunner(opts ...RunnerOption) *DefaultRunner {
	r := &DefaultRunner{
		eval:    assertion.NewEngine(),
		logger:  logging.NullLogger{},
		metrics: metrics.NoopMetrics{},
		timeout: harness.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunFixture executes a single parsed fixture.
func (r *DefaultRunner) RunFixture(
	ctx context.Context,
	f *fixture.Fixture,
	eng engine.Engine,
) (*Result, error) {
	r.metrics.IncrementRunTotal()
	return r.runFixture(ctx, f, eng)
}

// RunFile loads and executes a single fixture file.
func (r *DefaultRunner) RunFile(
	ctx context.Context,
	path string,
	eng engine.Engine,
) (*Result, error) {
	catalog := fixture.NewCatalog()
	if err := catalog.LoadFile(path); err != nil {
		return nil, err
	}

	all := catalog.All()
	r.metrics.IncrementRunTotal()
	return r.runFixture(ctx, all[0], eng)
}

// RunDir loads all fixtures from a directory and executes them
// sequentially in name order. Execution continues past failing
// fixtures; only a broken run aborts.
func (r *DefaultRunner) RunDir(
	ctx context.Context,
	dir string,
	eng engine.Engine,
) ([]*Result, error) {
	catalog := fixture.NewCatalog()
	if err := catalog.LoadDir(dir); err != nil {
		return nil, err
	}

	r.metrics.IncrementRunTotal()

	var results []*Result
	for _, f := range catalog.All() {
		result, err := r.runFixture(ctx, f, eng)
		if err != nil {
			return results, fmt.Errorf(
				"fixture %s: %w", f.Name, err,
			)
		}
		results = append(results, result)
	}
	return results, nil
}

// RunParallel executes fixtures concurrently using at most
// maxConcurrency goroutines. It delegates to the parallel
// runner implementation.
func (r *DefaultRunner) RunParallel(
	ctx context.Context,
	fixtures []*fixture.Fixture,
	eng engine.Engine,
	maxConcurrency int,
) ([]*Result, error) {
	r.metrics.IncrementRunTotal()
	return runParallel(ctx, r, fixtures, eng, maxConcurrency)
}

// runFixture runs one fixture through its full lifecycle:
// pre-hooks -> validate -> availability check -> engine process
// with timeout -> harness evaluation -> post-hooks.
func (r *DefaultRunner) runFixture(
	ctx context.Context,
	f *fixture.Fixture,
	eng engine.Engine,
) (*Result, error) {
	result := &Result{
		Fixture:   f.Name,
		Title:     f.Title,
		SpecLink:  f.SpecLink,
		Engine:    eng.Name(),
		StartTime: time.Now(),
	}

	r.logEvent("fixture_started",
		logging.StringField("fixture", f.Name),
		logging.StringField("engine", eng.Name()),
	)

	// Pre-hooks.
	for _, hook := range r.preHooks {
		if err := hook(ctx, f, eng); err != nil {
			return r.settle(f, result, StatusError,
				fmt.Sprintf("pre-hook failed: %v", err))
		}
	}

	// Validate before touching the engine, so malformed
	// fixtures surface as errors rather than false failures.
	if errs := fixture.Validate(f, r.eval); len(errs) > 0 {
		return r.settle(f, result, StatusError,
			fmt.Sprintf("invalid fixture: %v", errs[0]))
	}

	if !eng.Available(ctx) {
		r.logEvent("fixture_skipped",
			logging.StringField("fixture", f.Name),
			logging.StringField("reason", "engine unavailable"),
		)
		return r.settle(f, result, StatusSkipped,
			fmt.Sprintf("engine %s is not available", eng.Name()))
	}

	timeout := f.Timeout()
	if timeout == 0 {
		timeout = r.timeout
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	values, err := eng.Process(execCtx, f.Payload)
	if err != nil {
		if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
			r.logEvent("fixture_timeout",
				logging.StringField("fixture", f.Name),
				logging.Float64Field(
					"timeout_seconds", timeout.Seconds(),
				),
			)
			return r.settle(f, result, StatusTimedOut,
				"engine processing timed out")
		}
		return r.settle(f, result, StatusError,
			fmt.Sprintf("engine processing failed: %v", err))
	}

	h := r.newHarness(f, timeout)
	r.evaluate(h, f, values)

	if err := h.Wait(ctx); err != nil {
		return r.settle(f, result, StatusError,
			fmt.Sprintf("harness wait interrupted: %v", err))
	}

	result.Tests = h.Report()
	status := aggregate(result.Tests)

	// Post-hooks. Failures are warnings, not result changes.
	for _, hook := range r.postHooks {
		if err := hook(ctx, f, eng); err != nil {
			r.logger.Warn("post-hook failed",
				logging.StringField("fixture", f.Name),
				logging.ErrorField(err),
			)
		}
	}

	res, err := r.settle(f, result, status, "")
	if r.executeHook != nil {
		return r.executeHook(f, res, err)
	}
	return res, err
}

// newHarness builds the harness for a fixture, honoring its
// single-test flag and timeout override.
func (r *DefaultRunner) newHarness(
	f *fixture.Fixture,
	timeout time.Duration,
) *harness.Harness {
	opts := []harness.Option{
		harness.WithTimeout(timeout),
		harness.WithLogger(r.logger),
	}
	if f.SingleTest {
		opts = append(opts,
			harness.WithSingleTest(),
			harness.WithTestName(f.Name),
		)
	}
	return harness.New(opts...)
}

// evaluate records every assertion outcome into the harness.
// Single-test fixtures record into the implicit case; otherwise
// each assertion becomes its own test case, so one failure
// never hides the others.
func (r *DefaultRunner) evaluate(
	h *harness.Harness,
	f *fixture.Fixture,
	values map[string]any,
) {
	outcomes := r.eval.EvaluateAll(f.Assertions, values)

	for i, outcome := range outcomes {
		r.metrics.RecordAssertion(
			f.Name, outcome.Type, outcome.Passed,
		)

		if f.SingleTest {
			h.Implicit().Record(outcome)
			continue
		}

		name := describe(f.Assertions[i])
		oc := outcome
		h.Test(name, func(tc *harness.TestCase) {
			tc.Record(oc)
		})
	}

	if f.SingleTest {
		h.Done()
	}
}

// settle finalizes a result and records its metrics.
func (r *DefaultRunner) settle(
	f *fixture.Fixture,
	result *Result,
	status Status,
	errMsg string,
) (*Result, error) {
	result.Status = status
	result.Error = errMsg
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	r.metrics.RecordTest(
		f.Name, string(status), result.Duration,
	)

	r.logEvent("fixture_completed",
		logging.StringField("fixture", f.Name),
		logging.StringField("status", string(status)),
		logging.Float64Field(
			"duration_seconds", result.Duration.Seconds(),
		),
	)

	return result, nil
}

// aggregate derives the fixture status from its test cases.
// Failure outranks timeout so a genuine assertion failure is
// never masked by a sibling that stalled.
func aggregate(tests []harness.Result) Status {
	status := StatusPassed
	for _, t := range tests {
		switch t.Status {
		case harness.StatusFail:
			return StatusFailed
		case harness.StatusTimeout:
			status = StatusTimedOut
		}
	}
	return status
}

// describe names a multi-test case after its assertion.
func describe(a assertion.Definition) string {
	if a.Message != "" {
		return a.Message
	}
	return a.Type + " " + a.Target
}

// logEvent emits a structured log entry.
func (r *DefaultRunner) logEvent(
	event string,
	fields ...logging.Field,
) {
	r.logger.Info(event, fields...)
}
