// Package main is a live inspector for the termflux event layer: it
// shows each terminal input normalized into its synthetic event class.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termflux/internal/config"
	"github.com/dshills/termflux/internal/events"
	"github.com/dshills/termflux/internal/runtime"
	"github.com/dshills/termflux/internal/synth"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	var logLevel string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "termflux - synthetic event inspector\n\n")
		fmt.Fprintf(os.Stderr, "Usage: termflux [options]\n\n")
		fmt.Fprintf(os.Stderr, "Press q or Esc to quit.\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("termflux %s (%s)\n", version, commit)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	rt, err := runtime.New(runtime.Options{Config: cfg})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	inspector := newInspector(rt)
	inspector.register()

	if err := rt.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// inspector renders a scrolling log of normalized events.
type inspector struct {
	rt    *runtime.Runtime
	lines []string
}

func newInspector(rt *runtime.Runtime) *inspector {
	return &inspector{rt: rt}
}

// register hooks the inspector into every event class.
func (in *inspector) register() {
	cat := in.rt.Catalog()

	in.rt.Listen(cat.Key, in.onKey)
	in.rt.Listen(cat.Mouse, func(ev *synth.Event) {
		in.show(fmt.Sprintf("mouse   x=%v y=%v buttons=%v mods=%v",
			ev.Get("x"), ev.Get("y"), ev.Get("buttons"), ev.Get("modifiers")))
	})
	in.rt.Listen(cat.Scroll, func(ev *synth.Event) {
		in.show(fmt.Sprintf("scroll  dx=%v dy=%v mods=%v",
			ev.Get("dx"), ev.Get("dy"), ev.Get("modifiers")))
	})
	in.rt.Listen(cat.Resize, func(ev *synth.Event) {
		in.show(fmt.Sprintf("resize  %vx%v", ev.Get("width"), ev.Get("height")))
	})
	in.rt.Listen(cat.Paste, func(ev *synth.Event) {
		in.show(fmt.Sprintf("paste   start=%v end=%v", ev.Get("start"), ev.Get("end")))
	})
	in.rt.Listen(cat.Focus, func(ev *synth.Event) {
		in.show(fmt.Sprintf("focus   focused=%v", ev.Get("focused")))
	})
}

func (in *inspector) onKey(ev *synth.Event) {
	mods, _ := ev.Get("modifiers").(events.Modifiers)

	if r, ok := ev.Get("rune").(rune); ok && mods.None() && r == 'q' {
		_ = in.rt.Stop()
		return
	}
	if k, ok := ev.Get("key").(tcell.Key); ok && k == tcell.KeyEscape {
		_ = in.rt.Stop()
		return
	}

	in.show(fmt.Sprintf("key     name=%v rune=%q mods=%v",
		ev.Get("name"), ev.Get("rune"), mods))
}

// show appends a line and redraws.
func (in *inspector) show(line string) {
	screen := in.rt.Screen()
	_, height := screen.Size()

	in.lines = append(in.lines, line)
	max := height - 2
	if max > 0 && len(in.lines) > max {
		in.lines = in.lines[len(in.lines)-max:]
	}

	screen.Clear()
	puts(screen, 0, 0, "termflux inspector (q or Esc to quit)", tcell.StyleDefault.Bold(true))
	for i, l := range in.lines {
		puts(screen, 0, i+1, l, tcell.StyleDefault)
	}
	screen.Show()
}

func puts(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
