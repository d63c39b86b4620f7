package synth

import (
	"sync/atomic"

	"github.com/dshills/termflux/internal/native"
)

// Class is an event class: a descriptor table plus its own bounded pool
// of recyclable instances. Classes are immutable after creation; derived
// classes are produced with Extend.
type Class struct {
	name             string
	table            Table
	pool             *pool
	legacyPrevention bool

	// Stats
	acquired atomic.Uint64
	reused   atomic.Uint64
	released atomic.Uint64
	dropped  atomic.Uint64
}

// ClassOption configures a Class at creation time.
type ClassOption func(*Class)

// WithPoolCapacity sets the class's free-list bound. Values <= 0 fall
// back to DefaultPoolCapacity.
func WithPoolCapacity(n int) ClassOption {
	return func(c *Class) {
		c.pool = newPool(n)
	}
}

// WithoutLegacyPrevention disables the legacy returnValue fallback when
// detecting a pre-cancelled native event at construction. Deployments
// whose native shapes never carry the legacy field can opt out of the
// compatibility check.
func WithoutLegacyPrevention() ClassOption {
	return func(c *Class) {
		c.legacyPrevention = false
	}
}

// NewClass creates a root event class from a descriptor table. The table
// is copied; later mutation of the argument does not affect the class.
func NewClass(name string, table Table, opts ...ClassOption) *Class {
	c := &Class{
		name:             name,
		table:            table.clone(),
		pool:             newPool(DefaultPoolCapacity),
		legacyPrevention: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Extend produces a derived class whose descriptor table is this class's
// table overlaid with the given one (derived entries shadow base entries
// with the same name). The derived class receives its own independent
// pool and inherits the base's settings unless options override them.
// Classes produced by Extend support further extension.
func (c *Class) Extend(name string, table Table, opts ...ClassOption) *Class {
	d := &Class{
		name:             name,
		table:            c.table.merged(table),
		pool:             newPool(c.pool.capacity),
		legacyPrevention: c.legacyPrevention,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// Table returns a copy of the class's effective descriptor table.
func (c *Class) Table() Table {
	return c.table.clone()
}

// PoolSize returns the number of instances currently in the free list.
func (c *Class) PoolSize() int {
	return c.pool.size()
}

// Acquire returns a constructed event instance, reusing the most
// recently released instance from the class's pool when one is
// available. A reused instance is observably identical to a fresh
// allocation: construction overwrites every field.
//
// nev may be nil when no platform event exists; declared fields then
// normalize to nil. nativeTarget is bound to the "target" field.
func (c *Class) Acquire(dispatchConfig, targetInst any, nev native.Event, nativeTarget any) *Event {
	c.acquired.Add(1)

	ev, ok := c.pool.get()
	if !ok {
		ev = &Event{}
	} else {
		c.reused.Add(1)
	}
	c.construct(ev, dispatchConfig, targetInst, nev, nativeTarget)
	return ev
}

// Release clears the instance and returns it to the class's pool if the
// pool is below capacity, dropping it otherwise. Releasing an instance
// that belongs to a different class fails with ErrClassMismatch; the
// instance is left untouched in that case.
//
// The caller must not read from the instance after a successful Release.
func (c *Class) Release(ev *Event) error {
	if ev == nil {
		return ErrNilEvent
	}
	if ev.class != c {
		eventClass := "(none)"
		if ev.class != nil {
			eventClass = ev.class.name
		}
		return &MismatchError{EventClass: eventClass, PoolClass: c.name}
	}

	ev.reset()
	c.released.Add(1)
	if !c.pool.put(ev) {
		c.dropped.Add(1)
	}
	return nil
}

// construct populates every field of ev from the class's descriptor
// table, per the table's declared entries only.
func (c *Class) construct(ev *Event, dispatchConfig, targetInst any, nev native.Event, nativeTarget any) {
	ev.class = c
	ev.DispatchConfig = dispatchConfig
	ev.TargetInst = targetInst
	ev.Native = nev

	if ev.fields == nil {
		ev.fields = make(map[string]any, len(c.table))
	}
	for name, rule := range c.table {
		switch {
		case rule != nil:
			ev.fields[name] = rule(nev)
		case name == FieldTarget:
			ev.fields[name] = nativeTarget
		case nev != nil:
			v, _ := nev.Field(name)
			ev.fields[name] = v
		default:
			ev.fields[name] = nil
		}
	}

	prevented := native.DefaultPreventedStrict(nev)
	if c.legacyPrevention {
		prevented = native.DefaultPrevented(nev)
	}
	if prevented {
		ev.isDefaultPrevented = alwaysTrue
	} else {
		ev.isDefaultPrevented = alwaysFalse
	}
	ev.isPropagationStopped = alwaysFalse
	ev.isPersistent = alwaysFalse
	ev.DispatchListeners = nil
	ev.DispatchInstances = nil
}

// Stats returns a snapshot of the class's pool counters.
func (c *Class) Stats() ClassStats {
	return ClassStats{
		Acquired: c.acquired.Load(),
		Reused:   c.reused.Load(),
		Released: c.released.Load(),
		Dropped:  c.dropped.Load(),
	}
}

// ClassStats contains pool counters for one event class.
type ClassStats struct {
	// Acquired is the total number of Acquire calls.
	Acquired uint64

	// Reused is the number of acquisitions served from the pool.
	Reused uint64

	// Released is the number of successful Release calls.
	Released uint64

	// Dropped is the number of releases that found the pool full.
	Dropped uint64
}
