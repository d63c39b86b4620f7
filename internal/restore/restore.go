// Package restore tracks controlled components whose displayed state
// must be written back after an update cycle.
//
// During dispatch, a controlled component that detects a skipped state
// write enqueues itself as a restore target. The batching coordinator
// (internal/batch) queries the queue from its outermost exit and drains
// it exactly once per update cycle. Queue implements batch.Restorer.
package restore

// Target is a controlled component able to re-sync its displayed state
// with its source of truth.
type Target interface {
	// RestoreState performs the deferred state write.
	RestoreState()
}

// TargetFunc adapts a plain function to the Target interface.
type TargetFunc func()

// RestoreState implements Target.
func (f TargetFunc) RestoreState() { f() }

// Queue is a FIFO of pending restore targets, drained once per
// outermost batch. Like the rest of the event core it belongs to the
// single logical update thread.
type Queue struct {
	pending []Target
}

// NewQueue creates an empty restore queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue records a target for restoration at the end of the current
// outermost batch. Enqueuing the same target twice restores it twice;
// targets are expected to make RestoreState idempotent.
func (q *Queue) Enqueue(t Target) {
	if t == nil {
		return
	}
	q.pending = append(q.pending, t)
}

// NeedsRestore reports whether any targets are pending.
func (q *Queue) NeedsRestore() bool {
	return len(q.pending) > 0
}

// RestoreIfNeeded drains the targets pending at the time of the call,
// in enqueue order. Targets enqueued while draining (restoration may
// trigger further updates) are left for the next cycle.
func (q *Queue) RestoreIfNeeded() {
	if len(q.pending) == 0 {
		return
	}
	batch := q.pending
	q.pending = nil
	for _, t := range batch {
		t.RestoreState()
	}
}

// Len returns the number of pending targets.
func (q *Queue) Len() int {
	return len(q.pending)
}
