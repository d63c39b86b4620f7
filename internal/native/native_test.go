package native

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestMap_Field(t *testing.T) {
	m := Map{"x": 3, "buttons": nil}

	v, ok := m.Field("x")
	if !ok {
		t.Fatal("expected field x to be present")
	}
	if v != 3 {
		t.Errorf("Field(x) = %v, want 3", v)
	}

	// A nil value is still a present field.
	if _, ok := m.Field("buttons"); !ok {
		t.Error("expected field buttons to be present")
	}

	if _, ok := m.Field("missing"); ok {
		t.Error("expected field missing to be absent")
	}
}

func TestMap_SetField(t *testing.T) {
	m := Map{}
	m.SetField(FieldReturnValue, false)

	v, ok := m.Field(FieldReturnValue)
	if !ok || v != false {
		t.Errorf("Field(returnValue) = %v, %v, want false, true", v, ok)
	}
}

func TestDefaultPrevented(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want bool
	}{
		{"nil event", nil, false},
		{"empty map", Map{}, false},
		{"modern field true", Map{FieldDefaultPrevented: true}, true},
		{"modern field false", Map{FieldDefaultPrevented: false}, false},
		{"modern field wins over legacy", Map{FieldDefaultPrevented: false, FieldReturnValue: false}, false},
		{"legacy returnValue false", Map{FieldReturnValue: false}, true},
		{"legacy returnValue true", Map{FieldReturnValue: true}, false},
		{"non-bool modern field", Map{FieldDefaultPrevented: "yes"}, false},
		{"non-bool legacy field", Map{FieldReturnValue: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultPrevented(tt.ev); got != tt.want {
				t.Errorf("DefaultPrevented() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultPreventedStrict(t *testing.T) {
	// Strict detection ignores the legacy fallback.
	if DefaultPreventedStrict(Map{FieldReturnValue: false}) {
		t.Error("strict detection honored legacy returnValue")
	}
	if !DefaultPreventedStrict(Map{FieldDefaultPrevented: true}) {
		t.Error("strict detection missed modern field")
	}
}

func TestFromTcell_Key(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModCtrl)
	n := FromTcell(ev)

	if v, _ := n.Field(FieldType); v != TypeKey {
		t.Errorf("type = %v, want %q", v, TypeKey)
	}
	if v, _ := n.Field("rune"); v != 'a' {
		t.Errorf("rune = %v, want 'a'", v)
	}
	if v, _ := n.Field("key"); v != tcell.KeyRune {
		t.Errorf("key = %v, want KeyRune", v)
	}
	if v, _ := n.Field("modifiers"); v != tcell.ModCtrl {
		t.Errorf("modifiers = %v, want ModCtrl", v)
	}
	if _, ok := n.Field(FieldWhen); !ok {
		t.Error("expected when field")
	}

	// Fields that only other event kinds carry are absent, not errors.
	if _, ok := n.Field("x"); ok {
		t.Error("key event should not carry an x field")
	}
	if _, ok := n.Field(FieldDefaultPrevented); ok {
		t.Error("tcell events carry no defaultPrevented field")
	}
}

func TestFromTcell_Mouse(t *testing.T) {
	ev := tcell.NewEventMouse(4, 7, tcell.Button1, tcell.ModNone)
	n := FromTcell(ev)

	if v, _ := n.Field(FieldType); v != TypeMouse {
		t.Errorf("type = %v, want %q", v, TypeMouse)
	}
	if v, _ := n.Field("x"); v != 4 {
		t.Errorf("x = %v, want 4", v)
	}
	if v, _ := n.Field("y"); v != 7 {
		t.Errorf("y = %v, want 7", v)
	}
	if v, _ := n.Field("buttons"); v != tcell.Button1 {
		t.Errorf("buttons = %v, want Button1", v)
	}
}

func TestFromTcell_Resize(t *testing.T) {
	ev := tcell.NewEventResize(80, 24)
	n := FromTcell(ev)

	if v, _ := n.Field(FieldType); v != TypeResize {
		t.Errorf("type = %v, want %q", v, TypeResize)
	}
	if v, _ := n.Field("width"); v != 80 {
		t.Errorf("width = %v, want 80", v)
	}
	if v, _ := n.Field("height"); v != 24 {
		t.Errorf("height = %v, want 24", v)
	}
}

func TestFromTcell_When(t *testing.T) {
	before := time.Now()
	n := FromTcell(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	v, ok := n.Field(FieldWhen)
	if !ok {
		t.Fatal("expected when field")
	}
	when, isTime := v.(time.Time)
	if !isTime {
		t.Fatalf("when field has type %T, want time.Time", v)
	}
	if when.Before(before.Add(-time.Second)) {
		t.Errorf("when = %v, too far in the past", when)
	}
}
