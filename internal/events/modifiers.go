package events

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termflux/internal/native"
)

// Modifiers is the normalized form of the keyboard modifiers attached
// to an input event.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
	Meta  bool
}

// None reports whether no modifier is active.
func (m Modifiers) None() bool {
	return !m.Shift && !m.Ctrl && !m.Alt && !m.Meta
}

// String returns a canonical "C-A-S-M" style representation, or "none".
func (m Modifiers) String() string {
	var parts []string
	if m.Ctrl {
		parts = append(parts, "C")
	}
	if m.Alt {
		parts = append(parts, "A")
	}
	if m.Shift {
		parts = append(parts, "S")
	}
	if m.Meta {
		parts = append(parts, "M")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "-")
}

// decodeModifiers normalizes the native "modifiers" field, tolerating
// both the raw tcell mask and an already-normalized value.
func decodeModifiers(nev native.Event) any {
	if nev == nil {
		return Modifiers{}
	}
	v, ok := nev.Field("modifiers")
	if !ok {
		return Modifiers{}
	}

	switch mods := v.(type) {
	case Modifiers:
		return mods
	case tcell.ModMask:
		return Modifiers{
			Shift: mods&tcell.ModShift != 0,
			Ctrl:  mods&tcell.ModCtrl != 0,
			Alt:   mods&tcell.ModAlt != 0,
			Meta:  mods&tcell.ModMeta != 0,
		}
	default:
		return Modifiers{}
	}
}
