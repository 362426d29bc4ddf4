package harness

import (
	"time"

	"digital.vasic.conformance/pkg/logging"
)

// DefaultTimeout is the asynchronous completion deadline used
// when the driver supplies no other value.
const DefaultTimeout = 2 * time.Second

// Options holds the configuration for a Harness instance. It is
// fixed once the first test starts; Configure rejects later
// changes.
type Options struct {
	// SingleTest selects single-test mode: the harness
	// registers exactly one implicit asynchronous test case
	// whose completion is signaled through Harness.Done.
	SingleTest bool

	// TestName names the implicit test case in single-test
	// mode.
	TestName string

	// Timeout is the maximum wait before a pending
	// asynchronous test case is finalized as timeout.
	Timeout time.Duration

	// Logger receives harness lifecycle logs and late-signal
	// diagnostics.
	Logger logging.Logger
}

// Option configures a Harness.
type Option func(*Options)

// WithSingleTest enables single-test mode.
func WithSingleTest() Option {
	return func(o *Options) {
		o.SingleTest = true
	}
}

// WithTestName sets the implicit test case name used in
// single-test mode.
func WithTestName(name string) Option {
	return func(o *Options) {
		o.TestName = name
	}
}

// WithTimeout sets the asynchronous completion deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

// WithLogger sets the logger used for lifecycle logs and
// diagnostics.
func WithLogger(logger logging.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// defaultOptions returns the option set applied before any
// caller-supplied options.
func defaultOptions() Options {
	return Options{
		TestName: "untitled",
		Timeout:  DefaultTimeout,
		Logger:   logging.NullLogger{},
	}
}
