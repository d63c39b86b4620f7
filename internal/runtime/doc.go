// Package runtime wires the event core to a live terminal.
//
// A Runtime owns the host-side collaborators of the event core: a
// tcell screen as the native event source, the class catalog
// (internal/events), a batching coordinator with its restore queue, and
// per-class listener registrations. Its loop polls the screen, wraps
// each native event in a synthetic event, delivers it to listeners
// inside a batch, and recycles the instance afterward.
//
// The loop is the runtime's single logical dispatch thread; everything
// it touches in the event core relies on that.
package runtime
