package synth

import (
	"github.com/dshills/termflux/internal/native"
)

// FieldTarget is the reserved field name bound to the explicit
// native-event-target argument at acquisition, never copied from the
// native event.
const FieldTarget = "target"

// Rule derives one normalized field value from a native event. A nil
// Rule in a descriptor table means the same-named native field is copied
// verbatim, normalizing to nil when the native event does not carry it.
//
// Rules must be pure: they may read the native event but must not
// mutate it or retain it.
type Rule func(nev native.Event) any

// Table is a descriptor table: the declaration of how each normalized
// field of an event class is derived from the native event. Tables are
// plain map values; only the entries a table explicitly declares are
// ever applied during construction.
type Table map[string]Rule

// merged returns a new table containing this table's entries overlaid
// with the other table's entries; entries in other shadow entries here
// with the same name. Neither input is modified.
func (t Table) merged(other Table) Table {
	out := make(Table, len(t)+len(other))
	for name, rule := range t {
		out[name] = rule
	}
	for name, rule := range other {
		out[name] = rule
	}
	return out
}

// clone returns a shallow copy of the table.
func (t Table) clone() Table {
	out := make(Table, len(t))
	for name, rule := range t {
		out[name] = rule
	}
	return out
}

// CopyField is the explicit form of a nil rule: it copies the named
// native field verbatim. It exists for rules that copy a field under a
// different normalized name.
func CopyField(name string) Rule {
	return func(nev native.Event) any {
		if nev == nil {
			return nil
		}
		v, _ := nev.Field(name)
		return v
	}
}

// ConstField returns a rule that yields a fixed value regardless of the
// native event.
func ConstField(value any) Rule {
	return func(native.Event) any {
		return value
	}
}
