// Package engine abstracts the implementation under test. An
// engine receives a fixture payload and returns the named
// output values that assertions are evaluated against.
package engine

import "context"

// Engine is an implementation under test.
type Engine interface {
	// Name returns the engine's unique name.
	Name() string

	// Available reports whether the engine can be run in the
	// current environment.
	Available(ctx context.Context) bool

	// Process feeds the payload to the implementation and
	// returns its output values keyed by name. Assertion
	// targets address into this map with dotted paths.
	Process(
		ctx context.Context,
		payload []byte,
	) (map[string]any, error)
}

// Func adapts an in-process function to the Engine interface.
// It is always available.
type Func struct {
	name string
	fn   func(context.Context, []byte) (map[string]any, error)
}

// NewFunc wraps fn as a named Engine.
func NewFunc(
	name string,
	fn func(context.Context, []byte) (map[string]any, error),
) *Func {
	return &Func{name: name, fn: fn}
}

// Name returns the engine's unique name.
func (f *Func) Name() string { return f.name }

// Available always reports true.
func (f *Func) Available(_ context.Context) bool { return true }

// Process invokes the wrapped function.
func (f *Func) Process(
	ctx context.Context,
	payload []byte,
) (map[string]any, error) {
	return f.fn(ctx, payload)
}
