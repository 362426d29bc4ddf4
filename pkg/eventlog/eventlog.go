// Package eventlog provides an append-only, ordered record of
// asynchronous event deliveries for ordering-sensitive
// conformance tests.
//
// The invariant the package exists for: append order reflects
// callback invocation order, which must match the real-world
// delivery order of the underlying event source. The log never
// reorders, coalesces, or buffers entries.
package eventlog

import (
	"sync"
	"time"
)

// Entry is a single recorded event delivery.
type Entry struct {
	// Tag identifies the event (e.g., "e1",
	// "securitypolicyviolation").
	Tag string `json:"tag"`

	// Seq is the delivery position, starting at 0.
	Seq int `json:"seq"`

	// Timestamp is when the delivery was recorded.
	Timestamp time.Time `json:"timestamp"`
}

// Log is an append-only event log. It is safe for use from
// host callbacks; appends are serialized and land in exact
// call order.
type Log struct {
	mu      sync.Mutex
	entries []Entry
}

// New creates an empty Log.
func New() *Log {
	return &Log{}
}

// Append records an event delivery and returns its sequence
// number.
func (l *Log) Append(tag string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	seq := len(l.entries)
	l.entries = append(l.entries, Entry{
		Tag:       tag,
		Seq:       seq,
		Timestamp: time.Now(),
	})
	return seq
}

// Tags returns the recorded tags in delivery order. The slice
// is a copy; assertions can hold it across later appends.
func (l *Log) Tags() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	tags := make([]string, len(l.entries))
	for i, e := range l.entries {
		tags[i] = e.Tag
	}
	return tags
}

// Snapshot returns a copy of all entries in delivery order.
func (l *Log) Snapshot() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := make([]Entry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// Len returns the number of recorded deliveries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
