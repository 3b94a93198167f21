// Command sandterm plays the falling-sand block game in a terminal. Each character cell
// shows two grains stacked with a half-block glyph.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/sandfall/sand"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	seed := flag.Uint64("seed", 0, "random seed (0 picks one)")
	logPath := flag.String("log", "", "write logs to this file")
	verbose := flag.Bool("v", false, "log piece locks")
	flag.Parse()

	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))

	cfg := sand.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = sand.LoadConfig(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
	}

	opts := []sand.Option{sand.WithLogger(log)}
	if *seed != 0 {
		opts = append(opts, sand.WithSeed(*seed))
	}
	engine, err := sand.NewEngine(cfg, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.HideCursor()

	run(screen, engine)
}

func run(screen tcell.Screen, engine *sand.Engine) {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := pollEvents(screen, done, 100)

	// intents collected between ticks
	pending := sand.NoIntent
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				pending |= keyIntent(ev)
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			if !engine.Step(pending) {
				return
			}
			pending = sand.NoIntent
			draw(screen, engine.Snapshot())
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done is closed.
// The returned channel is closed when the forwarding goroutine exits.
func pollEvents(screen tcell.Screen, done <-chan struct{}, size int) <-chan tcell.Event {
	events := make(chan tcell.Event, size)
	go func() {
		defer close(events)
		for {
			select {
			case <-done:
				return
			default:
			}

			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

// keyIntent maps a key event to intents. Terminals report held keys through their own
// auto-repeat, so every event counts as a press.
func keyIntent(ev *tcell.EventKey) sand.Intent {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return sand.Quit
	case tcell.KeyLeft:
		return sand.MoveLeft
	case tcell.KeyRight:
		return sand.MoveRight
	case tcell.KeyDown:
		return sand.SoftDrop
	case tcell.KeyUp:
		return sand.Rotate
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'h', 'a':
			return sand.MoveLeft
		case 'l', 'd':
			return sand.MoveRight
		case 'j', 's':
			return sand.SoftDrop
		case 'k', 'w', 'z':
			return sand.Rotate
		case ' ':
			return sand.HardDrop
		case 'r':
			return sand.Reset
		case 'q':
			return sand.Quit
		}
	}
	return sand.NoIntent
}
