// Package dispatch delivers synthetic events to their accumulated
// listeners and returns spent instances to their class pools.
//
// The package fills and consumes the DispatchListeners /
// DispatchInstances slots on a synthetic event: Accumulate records
// listener/instance pairs during the (host-owned) listener-collection
// phase, Run delivers them in order honoring StopPropagation, and
// RunAndRelease additionally recycles the instance unless it was
// persisted.
package dispatch

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/termflux/internal/native"
	"github.com/dshills/termflux/internal/synth"
)

// Bookkeeping identifies one native-event dispatch as it travels
// through the batching coordinator. The ID correlates log lines and
// stats across nested updates triggered by the same input.
type Bookkeeping struct {
	// ID is a unique identifier for this dispatch.
	ID string

	// Native is the platform event being dispatched.
	Native native.Event

	// Started is when the dispatch began.
	Started time.Time

	// Events are the synthetic events produced for this dispatch.
	Events []*synth.Event
}

// NewBookkeeping creates bookkeeping for one native event.
func NewBookkeeping(nev native.Event) *Bookkeeping {
	return &Bookkeeping{
		ID:      uuid.NewString(),
		Native:  nev,
		Started: time.Now(),
	}
}

// Add records a synthetic event produced for this dispatch.
func (b *Bookkeeping) Add(ev *synth.Event) {
	b.Events = append(b.Events, ev)
}

// Accumulate appends a listener/instance pair to the event's dispatch
// slots. Pairs run in accumulation order.
func Accumulate(ev *synth.Event, l synth.Listener, inst any) {
	if l == nil {
		return
	}
	ev.DispatchListeners = append(ev.DispatchListeners, l)
	ev.DispatchInstances = append(ev.DispatchInstances, inst)
}

// Run delivers the event to its accumulated listeners in order. Delivery
// stops as soon as the event reports propagation stopped; remaining
// listeners are skipped. The dispatch slots are cleared afterward, so
// Run consumes the accumulation.
func Run(ev *synth.Event) {
	listeners := ev.DispatchListeners
	instances := ev.DispatchInstances
	ev.DispatchListeners = nil
	ev.DispatchInstances = nil

	for i, l := range listeners {
		if ev.IsPropagationStopped() {
			break
		}
		ev.TargetInst = instances[i]
		l(ev)
	}
}

// RunAndRelease delivers the event and then returns it to its class
// pool, unless Persist was called on it. The release happens even when
// a listener panics, so pooled instances are not leaked by failing
// handlers. The returned error is the release result; a persisted event
// yields nil without being released.
func RunAndRelease(ev *synth.Event) (err error) {
	defer func() {
		if !ev.IsPersistent() {
			err = ev.Class().Release(ev)
		}
	}()
	Run(ev)
	return nil
}
