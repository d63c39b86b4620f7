package runtime

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termflux/internal/batch"
	"github.com/dshills/termflux/internal/config"
	"github.com/dshills/termflux/internal/dispatch"
	"github.com/dshills/termflux/internal/events"
	"github.com/dshills/termflux/internal/native"
	"github.com/dshills/termflux/internal/restore"
	"github.com/dshills/termflux/internal/synth"
)

// ErrNotRunning is returned when Stop is called on a runtime whose loop
// has not started.
var ErrNotRunning = errors.New("runtime is not running")

// Options configures a Runtime.
type Options struct {
	// Config holds the runtime options. The zero value means defaults.
	Config config.Config

	// Screen is the terminal to poll. If nil, a real terminal screen is
	// created; tests pass a simulation screen.
	Screen tcell.Screen

	// Logger receives the runtime's log output. If nil, a logger at the
	// configured level writing to stderr is created.
	Logger *Logger
}

// Runtime owns the host-side collaborators of the event core and runs
// the dispatch loop.
type Runtime struct {
	screen    tcell.Screen
	ownScreen bool
	catalog   *events.Catalog
	coord     *batch.Coordinator
	restores  *restore.Queue
	listeners map[*synth.Class][]synth.Listener
	log       *Logger

	cfg     config.Config
	target  any
	running atomic.Bool
}

// New creates a runtime from options. The screen is initialized by Run,
// not here.
func New(opts Options) (*Runtime, error) {
	cfg := opts.Config
	if cfg == (config.Config{}) {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = NewLogger(ParseLogLevel(cfg.LogLevel), nil)
	}

	screen := opts.Screen
	ownScreen := false
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("create screen: %w", err)
		}
		ownScreen = true
	}

	restores := restore.NewQueue()
	return &Runtime{
		screen:    screen,
		ownScreen: ownScreen,
		catalog:   events.NewCatalog(cfg.ClassOptions()...),
		coord:     batch.New(batch.WithRestorer(restores)),
		restores:  restores,
		listeners: make(map[*synth.Class][]synth.Listener),
		log:       logger,
		cfg:       cfg,
	}, nil
}

// Screen returns the terminal the runtime polls. Hosts draw on it from
// listeners, which run on the dispatch thread.
func (r *Runtime) Screen() tcell.Screen {
	return r.screen
}

// Catalog returns the runtime's event classes for listener registration
// and synthetic-only acquisition.
func (r *Runtime) Catalog() *events.Catalog {
	return r.catalog
}

// Coordinator returns the batching coordinator, for hosts that wire
// their own strategy via Configure.
func (r *Runtime) Coordinator() *batch.Coordinator {
	return r.coord
}

// Restores returns the controlled-state restore queue.
func (r *Runtime) Restores() *restore.Queue {
	return r.restores
}

// Listen registers a listener for every event of the given class.
// Listeners run on the dispatch thread, in registration order.
func (r *Runtime) Listen(class *synth.Class, l synth.Listener) {
	if class == nil || l == nil {
		return
	}
	r.listeners[class] = append(r.listeners[class], l)
}

// SetTarget sets the logical target marker bound to subsequent events'
// target field. Hosts typically point this at the focused widget.
func (r *Runtime) SetTarget(target any) {
	r.target = target
}

// Run initializes the screen and polls it until Stop is called or the
// screen is finalized. It must be called from the goroutine that owns
// event dispatch.
func (r *Runtime) Run() error {
	if err := r.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer func() {
		if r.ownScreen {
			r.screen.Fini()
		}
	}()

	if r.cfg.Mouse {
		r.screen.EnableMouse()
	}
	if r.cfg.Paste {
		r.screen.EnablePaste()
	}

	r.running.Store(true)
	defer r.running.Store(false)

	r.log.Info("event loop started")
	for {
		tev := r.screen.PollEvent()
		if tev == nil {
			r.log.Info("event loop stopped: screen finalized")
			return nil
		}
		if _, ok := tev.(*tcell.EventInterrupt); ok {
			r.log.Info("event loop stopped")
			return nil
		}

		if err := r.Dispatch(tev); err != nil {
			r.log.Error("dispatch failed: %v", err)
			return err
		}
	}
}

// Stop makes Run return after the event it is currently dispatching.
func (r *Runtime) Stop() error {
	if !r.running.Load() {
		return ErrNotRunning
	}
	return r.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Dispatch delivers one native terminal event through the event core:
// select the class, acquire a synthetic event, run the registered
// listeners under a batch, and recycle the instance unless a listener
// persisted it. Controlled-state restoration fires at the batch
// boundary, after this method's listeners have all run.
func (r *Runtime) Dispatch(tev tcell.Event) error {
	nev := native.FromTcell(tev)
	class := r.catalog.ForNative(nev)
	bk := dispatch.NewBookkeeping(nev)

	_, err := r.coord.RunBatched(func(any) (any, error) {
		sev := class.Acquire(nil, r.target, nev, r.target)
		bk.Add(sev)
		for _, l := range r.listeners[class] {
			dispatch.Accumulate(sev, l, r.target)
		}
		return nil, dispatch.RunAndRelease(sev)
	}, bk)
	if err != nil {
		return fmt.Errorf("dispatch %s: %w", bk.ID, err)
	}

	r.log.Debug("dispatched %s event id=%s", class.Name(), bk.ID)
	return nil
}
