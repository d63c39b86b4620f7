package native

// Well-known field names shared between native shapes and normalization
// rules. Shapes are free to carry additional fields; rules look them up
// by plain string name.
const (
	// FieldType is the event kind ("key", "mouse", "resize", ...).
	FieldType = "type"

	// FieldWhen is the time the platform reported the event.
	FieldWhen = "when"

	// FieldDefaultPrevented reports that the default action was cancelled.
	FieldDefaultPrevented = "defaultPrevented"

	// FieldReturnValue is the legacy cancellation field: a value of false
	// means the default action was cancelled.
	FieldReturnValue = "returnValue"

	// FieldCancelBubble is the legacy propagation-stop field.
	FieldCancelBubble = "cancelBubble"
)

// Event is the minimal surface a native event shape must provide.
// Field looks up a raw field by name; absent fields report ok=false
// rather than an error, so a lookup never fails.
type Event interface {
	Field(name string) (value any, ok bool)
}

// DefaultPreventer is implemented by native shapes that carry their own
// default-action cancellation mechanism.
type DefaultPreventer interface {
	PreventDefault()
}

// PropagationStopper is implemented by native shapes that carry their own
// propagation-stop mechanism.
type PropagationStopper interface {
	StopPropagation()
}

// FieldSetter is implemented by mutable native shapes. Shapes without a
// cancellation mechanism of their own receive the legacy fields
// (returnValue, cancelBubble) through SetField instead.
type FieldSetter interface {
	SetField(name string, value any)
}

// Map is a mutable, map-backed native event shape. It is the stand-in
// used when no platform event exists (replayed input, tests, events
// fabricated by plugins).
type Map map[string]any

// Field returns the named entry and whether it is present.
func (m Map) Field(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// SetField stores a field, creating it if absent.
func (m Map) SetField(name string, value any) {
	m[name] = value
}

// DefaultPrevented reports whether the shape records a cancelled default
// action, honoring the legacy returnValue fallback when the modern field
// is absent.
func DefaultPrevented(e Event) bool {
	return defaultPrevented(e, true)
}

// DefaultPreventedStrict is DefaultPrevented without the legacy
// returnValue fallback.
func DefaultPreventedStrict(e Event) bool {
	return defaultPrevented(e, false)
}

func defaultPrevented(e Event, legacy bool) bool {
	if e == nil {
		return false
	}
	if v, ok := e.Field(FieldDefaultPrevented); ok {
		b, isBool := v.(bool)
		return isBool && b
	}
	if !legacy {
		return false
	}
	if v, ok := e.Field(FieldReturnValue); ok {
		b, isBool := v.(bool)
		return isBool && !b
	}
	return false
}
