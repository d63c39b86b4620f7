package native

import (
	"github.com/gdamore/tcell/v2"
)

// Event kind values exposed through the "type" field by the tcell adapter.
const (
	TypeKey    = "key"
	TypeMouse  = "mouse"
	TypeResize = "resize"
	TypePaste  = "paste"
	TypeFocus  = "focus"
	TypeOther  = "other"
)

// tcellEvent projects a tcell.Event's data as named fields. tcell events
// carry no cancellation mechanism, so the adapter implements neither
// DefaultPreventer nor FieldSetter; synthetic-event mutators silently
// skip the native side for these events.
type tcellEvent struct {
	ev tcell.Event
}

// FromTcell wraps a tcell event in the Event field-lookup surface.
func FromTcell(ev tcell.Event) Event {
	return tcellEvent{ev: ev}
}

func (t tcellEvent) Field(name string) (any, bool) {
	if t.ev == nil {
		return nil, false
	}

	if name == FieldWhen {
		return t.ev.When(), true
	}

	switch ev := t.ev.(type) {
	case *tcell.EventKey:
		switch name {
		case FieldType:
			return TypeKey, true
		case "key":
			return ev.Key(), true
		case "rune":
			return ev.Rune(), true
		case "modifiers":
			return ev.Modifiers(), true
		case "name":
			return ev.Name(), true
		}

	case *tcell.EventMouse:
		switch name {
		case FieldType:
			return TypeMouse, true
		case "x":
			x, _ := ev.Position()
			return x, true
		case "y":
			_, y := ev.Position()
			return y, true
		case "buttons":
			return ev.Buttons(), true
		case "modifiers":
			return ev.Modifiers(), true
		}

	case *tcell.EventResize:
		switch name {
		case FieldType:
			return TypeResize, true
		case "width":
			w, _ := ev.Size()
			return w, true
		case "height":
			_, h := ev.Size()
			return h, true
		}

	case *tcell.EventPaste:
		switch name {
		case FieldType:
			return TypePaste, true
		case "start":
			return ev.Start(), true
		case "end":
			return ev.End(), true
		}

	case *tcell.EventFocus:
		switch name {
		case FieldType:
			return TypeFocus, true
		case "focused":
			return ev.Focused, true
		}

	default:
		if name == FieldType {
			return TypeOther, true
		}
	}

	return nil, false
}
