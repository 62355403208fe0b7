package job

import (
	"sync"
	"time"
)

// EventKind tells which fields of an Event are meaningful.
type EventKind int

const (
	// EventStatus carries a human-readable status line.
	EventStatus EventKind = iota
	// EventProgress carries the fraction of commits created so far.
	EventProgress
	// EventState announces a state machine transition.
	EventState
	// EventError carries an intermediate failure, already redacted.
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventStatus:
		return "status"
	case EventProgress:
		return "progress"
	case EventState:
		return "state"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is one entry of a job's ordered report stream.
type Event struct {
	Kind EventKind
	Time time.Time

	// Message is set for EventStatus and EventError.
	Message string

	// Progress is in [0,1]; Commit and Total are set for EventProgress.
	Progress float64
	Commit   int
	Total    int

	// State is set for EventState.
	State State
}

// eventQueue decouples the worker from the consumer: push never blocks and
// never drops, and events come out of C in the order they were pushed.
type eventQueue struct {
	mu      sync.Mutex
	pending []Event
	closed  bool
	notify  chan struct{}

	C chan Event
}

func newEventQueue() *eventQueue {
	q := &eventQueue{
		notify: make(chan struct{}, 1),
		C:      make(chan Event),
	}
	go q.pump()
	return q
}

func (q *eventQueue) push(ev Event) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.pending = append(q.pending, ev)
	q.mu.Unlock()
	q.wake()
}

// close lets the pump deliver whatever is pending and then close C.
func (q *eventQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.wake()
}

func (q *eventQueue) wake() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *eventQueue) pump() {
	defer close(q.C)
	for {
		<-q.notify

		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		closed := q.closed
		q.mu.Unlock()

		for _, ev := range batch {
			q.C <- ev
		}

		if closed {
			q.mu.Lock()
			drained := len(q.pending) == 0
			q.mu.Unlock()
			if drained {
				return
			}
			q.wake()
		}
	}
}
