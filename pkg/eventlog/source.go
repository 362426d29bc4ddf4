package eventlog

import "sync"

// Event is a single delivery from a Source.
type Event struct {
	// Tag identifies the event.
	Tag string
}

// Source abstracts an asynchronous event origin. In production
// this is satisfied by the real host's event queue; tests
// inject a Queue so ordering behavior is exercised without a
// host. Subscribers are invoked in subscription order for each
// delivery.
type Source interface {
	// Subscribe registers a callback for every subsequent
	// delivery.
	Subscribe(fn func(Event))
}

// Queue is an in-process FIFO Source. Events are emitted into
// the queue and delivered to subscribers on Dispatch, strictly
// in emission order. The queue stands in for a cooperative
// host's task queue.
type Queue struct {
	mu          sync.Mutex
	pending     []Event
	subscribers []func(Event)
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Subscribe registers a callback for every subsequent delivery.
func (q *Queue) Subscribe(fn func(Event)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.subscribers = append(q.subscribers, fn)
}

// Emit enqueues an event without delivering it.
func (q *Queue) Emit(tag string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, Event{Tag: tag})
}

// Dispatch delivers all pending events to every subscriber in
// emission order and returns the number delivered. Callbacks
// run without the queue lock held, so they may emit further
// events; those stay queued for the next Dispatch.
func (q *Queue) Dispatch() int {
	q.mu.Lock()
	pending := q.pending
	q.pending = nil
	subscribers := make([]func(Event), len(q.subscribers))
	copy(subscribers, q.subscribers)
	q.mu.Unlock()

	for _, e := range pending {
		for _, fn := range subscribers {
			fn(e)
		}
	}
	return len(pending)
}

// Recorder binds a Source to a Log so every delivery is
// appended in invocation order.
type Recorder struct {
	log *Log
}

// NewRecorder subscribes a new recorder to the source and
// returns it. The returned recorder's log can be asserted
// against with the "ordered" evaluator.
func NewRecorder(source Source, log *Log) *Recorder {
	r := &Recorder{log: log}
	source.Subscribe(func(e Event) {
		log.Append(e.Tag)
	})
	return r
}

// Log returns the log the recorder appends to.
func (r *Recorder) Log() *Log {
	return r.log
}
