package events

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termflux/internal/native"
	"github.com/dshills/termflux/internal/synth"
)

// Catalog holds the runtime's event classes. Every class is reachable
// through the extension chain from Base, and every class has its own
// pool.
type Catalog struct {
	// Base carries the fields shared by every event: target, type, when.
	Base *synth.Class

	// UI extends Base with decoded keyboard modifiers.
	UI *synth.Class

	// Key extends UI with the pressed key, rune, and key name.
	Key *synth.Class

	// Mouse extends UI with position and button state.
	Mouse *synth.Class

	// Scroll extends Mouse with wheel deltas.
	Scroll *synth.Class

	// Focus extends Base with the focus direction.
	Focus *synth.Class

	// Change extends Base with the controlled-input value.
	Change *synth.Class

	// Resize extends Base with the new screen dimensions.
	Resize *synth.Class

	// Paste extends Base with the bracketed-paste markers.
	Paste *synth.Class
}

// NewCatalog builds the class chain. Options apply to the base class
// and are inherited down the chain.
func NewCatalog(opts ...synth.ClassOption) *Catalog {
	base := synth.NewClass("event", synth.Table{
		synth.FieldTarget: nil,
		"type":            nil,
		"when":            nil,
	}, opts...)

	ui := base.Extend("ui", synth.Table{
		"modifiers": decodeModifiers,
	})

	return &Catalog{
		Base: base,
		UI:   ui,
		Key: ui.Extend("key", synth.Table{
			"key":  nil,
			"rune": nil,
			"name": nil,
		}),
		Mouse: ui.Extend("mouse", synth.Table{
			"x":       nil,
			"y":       nil,
			"buttons": nil,
		}),
		Scroll: ui.Extend("scroll", synth.Table{
			"buttons": nil,
			"dx":      scrollDelta(tcell.WheelLeft, tcell.WheelRight),
			"dy":      scrollDelta(tcell.WheelUp, tcell.WheelDown),
		}),
		Focus: base.Extend("focus", synth.Table{
			"focused": nil,
		}),
		Change: base.Extend("change", synth.Table{
			"value": nil,
		}),
		Resize: base.Extend("resize", synth.Table{
			"width":  nil,
			"height": nil,
		}),
		Paste: base.Extend("paste", synth.Table{
			"start": nil,
			"end":   nil,
		}),
	}
}

// ForNative selects the class for a native event by its "type" field.
// Wheel-only mouse events map to Scroll. Unrecognized shapes fall back
// to Base, which normalizes only the shared fields.
func (c *Catalog) ForNative(nev native.Event) *synth.Class {
	if nev == nil {
		return c.Base
	}
	v, ok := nev.Field(native.FieldType)
	if !ok {
		return c.Base
	}

	switch v {
	case native.TypeKey:
		return c.Key
	case native.TypeMouse:
		if isWheel(nev) {
			return c.Scroll
		}
		return c.Mouse
	case native.TypeResize:
		return c.Resize
	case native.TypePaste:
		return c.Paste
	case native.TypeFocus:
		return c.Focus
	default:
		return c.Base
	}
}

// scrollDelta builds a rule mapping a pair of wheel bits to -1/0/+1.
func scrollDelta(neg, pos tcell.ButtonMask) synth.Rule {
	return func(nev native.Event) any {
		buttons, ok := buttonMask(nev)
		if !ok {
			return 0
		}
		delta := 0
		if buttons&neg != 0 {
			delta--
		}
		if buttons&pos != 0 {
			delta++
		}
		return delta
	}
}

// isWheel reports whether the native mouse event carries only wheel
// bits.
func isWheel(nev native.Event) bool {
	buttons, ok := buttonMask(nev)
	if !ok {
		return false
	}
	const wheel = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight
	return buttons&wheel != 0 && buttons&^wheel == 0
}

func buttonMask(nev native.Event) (tcell.ButtonMask, bool) {
	if nev == nil {
		return 0, false
	}
	v, ok := nev.Field("buttons")
	if !ok {
		return 0, false
	}
	mask, isMask := v.(tcell.ButtonMask)
	return mask, isMask
}
