package logging

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingLogger captures messages for assertions.
type recordingLogger struct {
	mu          sync.Mutex
	messages    []string
	diagnostics []Diagnostic
}

func (r *recordingLogger) record(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *recordingLogger) Info(msg string, _ ...Field)  { r.record(msg) }
func (r *recordingLogger) Warn(msg string, _ ...Field)  { r.record(msg) }
func (r *recordingLogger) Error(msg string, _ ...Field) { r.record(msg) }
func (r *recordingLogger) Debug(msg string, _ ...Field) { r.record(msg) }

func (r *recordingLogger) WithFields(_ ...Field) Logger { return r }

func (r *recordingLogger) LogDiagnostic(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = append(r.diagnostics, d)
}

func (r *recordingLogger) Close() error { return nil }

func TestMultiLogger_FansOut(t *testing.T) {
	a := &recordingLogger{}
	b := &recordingLogger{}

	m := NewMultiLogger(a, b)
	m.Info("one")
	m.Error("two")
	m.LogDiagnostic(Diagnostic{Kind: "late_done", Test: "t"})

	assert.Equal(t, []string{"one", "two"}, a.messages)
	assert.Equal(t, []string{"one", "two"}, b.messages)
	assert.Len(t, a.diagnostics, 1)
	assert.Len(t, b.diagnostics, 1)
}

func TestMultiLogger_Close(t *testing.T) {
	m := NewMultiLogger(&recordingLogger{}, NullLogger{})
	assert.NoError(t, m.Close())
}
