// Package native abstracts the heterogeneous shapes of platform input
// events behind a uniform field-lookup surface.
//
// Normalization rules (see internal/synth) read native events exclusively
// through the Event interface, which tolerates absent fields: a lookup of a
// field the underlying event does not carry reports presence false instead
// of failing. This is what lets a single descriptor table serve terminal
// events, replayed events, and synthetic-only stand-ins alike.
//
// Two shapes ship with the package:
//
//   - Map: a mutable map-backed event, used for synthetic-only events,
//     replay, and tests. It supports the legacy cancellation fields
//     (returnValue, cancelBubble) via SetField.
//   - the tcell adapter returned by FromTcell, which projects a
//     tcell.Event's data as named fields.
//
// Optional capability interfaces (DefaultPreventer, PropagationStopper)
// expose a shape's own cancellation mechanism when it has one; shapes
// without one may still accept the legacy fields through FieldSetter.
package native
