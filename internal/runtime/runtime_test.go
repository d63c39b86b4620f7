package runtime

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termflux/internal/restore"
	"github.com/dshills/termflux/internal/synth"
)

func newTestRuntime(t *testing.T) *Runtime {
	t.Helper()
	rt, err := New(Options{Screen: tcell.NewSimulationScreen("UTF-8")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return rt
}

func TestRuntime_Dispatch_Key(t *testing.T) {
	rt := newTestRuntime(t)
	rt.SetTarget("editor-pane")

	var got *synth.Event
	var gotRune any
	rt.Listen(rt.Catalog().Key, func(ev *synth.Event) {
		got = ev
		gotRune = ev.Get("rune")
	})

	if err := rt.Dispatch(tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone)); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if got == nil {
		t.Fatal("key listener did not run")
	}
	if gotRune != 'k' {
		t.Errorf("rune = %v, want 'k'", gotRune)
	}

	// The instance was recycled after dispatch.
	if rt.Catalog().Key.PoolSize() != 1 {
		t.Errorf("key pool size = %d, want 1", rt.Catalog().Key.PoolSize())
	}
}

func TestRuntime_Dispatch_TargetBinding(t *testing.T) {
	rt := newTestRuntime(t)
	rt.SetTarget("widget-7")

	var target any
	rt.Listen(rt.Catalog().Key, func(ev *synth.Event) {
		target = ev.Target()
	})

	if err := rt.Dispatch(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if target != "widget-7" {
		t.Errorf("target = %v, want widget-7", target)
	}
}

func TestRuntime_Dispatch_ClassRouting(t *testing.T) {
	rt := newTestRuntime(t)

	var classes []string
	record := func(ev *synth.Event) {
		classes = append(classes, ev.Class().Name())
	}
	rt.Listen(rt.Catalog().Key, record)
	rt.Listen(rt.Catalog().Mouse, record)
	rt.Listen(rt.Catalog().Resize, record)

	inputs := []tcell.Event{
		tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone),
		tcell.NewEventMouse(1, 2, tcell.Button1, tcell.ModNone),
		tcell.NewEventResize(100, 40),
	}
	for _, tev := range inputs {
		if err := rt.Dispatch(tev); err != nil {
			t.Fatalf("Dispatch: %v", err)
		}
	}

	want := []string{"key", "mouse", "resize"}
	if len(classes) != len(want) {
		t.Fatalf("classes = %v, want %v", classes, want)
	}
	for i := range want {
		if classes[i] != want[i] {
			t.Errorf("classes[%d] = %s, want %s", i, classes[i], want[i])
		}
	}
}

func TestRuntime_Dispatch_RestoresAtBatchBoundary(t *testing.T) {
	rt := newTestRuntime(t)

	restoredDuringDispatch := true
	restored := false
	rt.Listen(rt.Catalog().Key, func(*synth.Event) {
		rt.Restores().Enqueue(restore.TargetFunc(func() { restored = true }))
	})
	rt.Listen(rt.Catalog().Key, func(*synth.Event) {
		// Still inside the batch: nothing restored yet.
		restoredDuringDispatch = restored
	})

	if err := rt.Dispatch(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if restoredDuringDispatch {
		t.Error("restoration ran before the batch boundary")
	}
	if !restored {
		t.Error("restoration did not run at the batch boundary")
	}
}

func TestRuntime_Dispatch_PersistedEventSurvives(t *testing.T) {
	rt := newTestRuntime(t)

	var held *synth.Event
	rt.Listen(rt.Catalog().Key, func(ev *synth.Event) {
		ev.Persist()
		held = ev
	})

	if err := rt.Dispatch(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if rt.Catalog().Key.PoolSize() != 0 {
		t.Error("persisted event was recycled")
	}
	if got := held.Get("rune"); got != 'p' {
		t.Errorf("persisted event rune = %v, want 'p'", got)
	}
}

func TestRuntime_Dispatch_InstanceReuse(t *testing.T) {
	rt := newTestRuntime(t)

	var seen []*synth.Event
	rt.Listen(rt.Catalog().Key, func(ev *synth.Event) {
		seen = append(seen, ev)
	})

	for _, r := range []rune{'a', 'b'} {
		if err := rt.Dispatch(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)); err != nil {
			t.Fatalf("Dispatch: %v", err)
		}
	}

	if len(seen) != 2 {
		t.Fatalf("listener ran %d times, want 2", len(seen))
	}
	if seen[0] != seen[1] {
		t.Error("second dispatch did not reuse the recycled instance")
	}
}

func TestRuntime_RunAndStop(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	rt, err := New(Options{Screen: sim})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	received := make(chan rune, 1)
	rt.Listen(rt.Catalog().Key, func(ev *synth.Event) {
		if r, ok := ev.Get("rune").(rune); ok {
			received <- r
		}
	})

	done := make(chan error, 1)
	go func() { done <- rt.Run() }()

	// Wait for the loop to come up before injecting.
	deadline := time.After(2 * time.Second)
	for !rt.running.Load() {
		select {
		case <-deadline:
			t.Fatal("event loop did not start")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	sim.InjectKey(tcell.KeyRune, 'z', tcell.ModNone)

	select {
	case r := <-received:
		if r != 'z' {
			t.Errorf("received rune %q, want 'z'", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not receive the injected key")
	}

	if err := rt.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestRuntime_Stop_NotRunning(t *testing.T) {
	rt := newTestRuntime(t)
	if err := rt.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Stop = %v, want ErrNotRunning", err)
	}
}

func TestRuntime_New_InvalidConfig(t *testing.T) {
	cfg := Options{}
	cfg.Config.LogLevel = "loud"
	cfg.Config.LegacyPrevention = true // keep the config non-zero
	if _, err := New(cfg); err == nil {
		t.Error("expected an error for an invalid config")
	}
}

func TestRuntime_Listen_NilArgs(t *testing.T) {
	rt := newTestRuntime(t)

	rt.Listen(nil, func(*synth.Event) {})
	rt.Listen(rt.Catalog().Key, nil)

	if err := rt.Dispatch(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)); err != nil {
		t.Fatalf("Dispatch with nil registrations: %v", err)
	}
}

func TestRuntime_CatalogUsesConfiguredCapacity(t *testing.T) {
	opts := Options{Screen: tcell.NewSimulationScreen("UTF-8")}
	opts.Config.PoolCapacity = 2
	opts.Config.LegacyPrevention = true
	opts.Config.LogLevel = "error"

	rt, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	key := rt.Catalog().Key
	evs := make([]*synth.Event, 0, 3)
	for i := 0; i < 3; i++ {
		evs = append(evs, key.Acquire(nil, nil, nil, nil))
	}
	for _, ev := range evs {
		if err := key.Release(ev); err != nil {
			t.Fatalf("Release: %v", err)
		}
	}
	if got := key.PoolSize(); got != 2 {
		t.Errorf("pool size = %d, want configured capacity 2", got)
	}
}
