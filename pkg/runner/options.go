package runner

import (
	"time"

	"digital.vasic.conformance/pkg/assertion"
	"digital.vasic.conformance/pkg/logging"
	"digital.vasic.conformance/pkg/metrics"
)

// RunnerOption configures a DefaultRunner.
type RunnerOption func(*DefaultRunner)

// WithAssertionEngine sets the assertion engine used to
// evaluate fixture assertions.
func WithAssertionEngine(e assertion.Engine) RunnerOption {
	return func(r *DefaultRunner) {
		r.eval = e
	}
}

// WithLogger sets the logger used by the runner.
func WithLogger(logger logging.Logger) RunnerOption {
	return func(r *DefaultRunner) {
		r.logger = logger
	}
}

// WithMetrics sets the metrics recorder used by the runner.
func WithMetrics(m metrics.RunMetrics) RunnerOption {
	return func(r *DefaultRunner) {
		r.metrics = m
	}
}

// WithTimeout sets the default timeout for fixtures that do not
// specify their own.
func WithTimeout(timeout time.Duration) RunnerOption {
	return func(r *DefaultRunner) {
		r.timeout = timeout
	}
}

// WithPreHook adds a pre-run hook to the runner.
func WithPreHook(h Hook) RunnerOption {
	return func(r *DefaultRunner) {
		r.preHooks = append(r.preHooks, h)
	}
}

// WithPostHook adds a post-run hook to the runner.
func WithPostHook(h Hook) RunnerOption {
	return func(r *DefaultRunner) {
		r.postHooks = append(r.postHooks, h)
	}
}

// WithExecuteHook sets a test hook that is called after a
// fixture run completes. It can override the result and error
// for testing error handling paths.
// This is intended for testing only.
func WithExecuteHook(h ExecuteHook) RunnerOption {
	return func(r *DefaultRunner) {
		r.executeHook = h
	}
}
