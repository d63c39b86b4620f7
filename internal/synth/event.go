package synth

import (
	"github.com/dshills/termflux/internal/native"
)

// Listener is a callback invoked with a synthetic event during dispatch.
type Listener func(ev *Event)

// Event is a normalized, poolable wrapper around a native input event.
// Instances are obtained from a Class via Acquire and returned via
// Release; an instance must not be read after it has been released
// unless Persist was called first.
type Event struct {
	class *Class

	// DispatchConfig is opaque per-dispatch configuration, owned by the
	// dispatch collaborator.
	DispatchConfig any

	// TargetInst marks the logical dispatch target. It is an identity
	// reference, not an ownership relation.
	TargetInst any

	// Native is the borrowed platform event. It is nil for
	// synthetic-only events and must not be retained past the dispatch
	// that delivered it.
	Native native.Event

	fields map[string]any

	// Swappable zero-argument predicates. Mutators replace these rather
	// than flipping stored booleans, so a constructed-prevented event
	// and a mutated one are indistinguishable to callers.
	isDefaultPrevented   func() bool
	isPropagationStopped func() bool
	isPersistent         func() bool

	// DispatchListeners and DispatchInstances are filled by the dispatch
	// collaborator for the duration of one dispatch and cleared on
	// release.
	DispatchListeners []Listener
	DispatchInstances []any
}

func alwaysTrue() bool  { return true }
func alwaysFalse() bool { return false }

// Class returns the event class this instance belongs to.
func (e *Event) Class() *Class {
	return e.class
}

// Get returns the normalized field value, or nil when the class's
// descriptor table does not declare the field or the native event did
// not carry it.
func (e *Event) Get(name string) any {
	return e.fields[name]
}

// Lookup returns the normalized field value and whether the class's
// descriptor table declares the field.
func (e *Event) Lookup(name string) (any, bool) {
	v, ok := e.fields[name]
	return v, ok
}

// Target returns the normalized target field.
func (e *Event) Target() any {
	return e.fields[FieldTarget]
}

// IsDefaultPrevented reports whether the default action has been
// cancelled, either by the native event at construction or by a later
// PreventDefault call.
func (e *Event) IsDefaultPrevented() bool {
	return e.isDefaultPrevented()
}

// IsPropagationStopped reports whether StopPropagation has been called.
func (e *Event) IsPropagationStopped() bool {
	return e.isPropagationStopped()
}

// IsPersistent reports whether the instance is exempt from release
// after dispatch.
func (e *Event) IsPersistent() bool {
	return e.isPersistent()
}

// PreventDefault cancels the event's default action. It is idempotent
// and forwards the cancellation to the native event when one is
// attached: through the native shape's own mechanism if it has one,
// otherwise through the legacy returnValue field if the shape is
// mutable. Without a native event it only flips the predicate.
func (e *Event) PreventDefault() {
	e.isDefaultPrevented = alwaysTrue

	switch nev := e.Native.(type) {
	case nil:
	case native.DefaultPreventer:
		nev.PreventDefault()
	case native.FieldSetter:
		nev.SetField(native.FieldReturnValue, false)
	}
}

// StopPropagation stops further listener delivery for this event. It is
// idempotent and forwards to the native event the same way
// PreventDefault does, using the legacy cancelBubble field as the
// fallback.
func (e *Event) StopPropagation() {
	e.isPropagationStopped = alwaysTrue

	switch nev := e.Native.(type) {
	case nil:
	case native.PropagationStopper:
		nev.StopPropagation()
	case native.FieldSetter:
		nev.SetField(native.FieldCancelBubble, true)
	}
}

// Persist exempts the instance from release after dispatch. This is the
// only supported way to keep an instance alive past its normal release
// point.
func (e *Event) Persist() {
	e.isPersistent = alwaysTrue
}

// reset clears every reference-bearing field and restores the default
// predicates. Pooled instances are long-lived recyclable memory; a
// stale reference here would retain the native event or target graph
// past its dispatch.
func (e *Event) reset() {
	e.DispatchConfig = nil
	e.TargetInst = nil
	e.Native = nil
	clear(e.fields)
	e.isDefaultPrevented = alwaysFalse
	e.isPropagationStopped = alwaysFalse
	e.isPersistent = alwaysFalse
	e.DispatchListeners = nil
	e.DispatchInstances = nil
}
