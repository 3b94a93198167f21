// Command sandfall plays the falling-sand block game in an ebiten window.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/sandfall/ecs/debugui"
	debugui_ebiten "github.com/plus3/sandfall/ecs/debugui/ebiten"
	"github.com/plus3/sandfall/sand"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	seed := flag.Uint64("seed", 0, "random seed (0 picks one)")
	pixels := flag.Int("pixels", 5, "screen pixels per grain")
	debug := flag.Bool("debug", false, "show the ImGui debug overlay")
	verbose := flag.Bool("v", false, "log piece locks")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := sand.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = sand.LoadConfig(*configPath); err != nil {
			log.Error("config", slog.Any("err", err))
			os.Exit(1)
		}
	}

	opts := []sand.Option{sand.WithLogger(log)}
	if *seed != 0 {
		opts = append(opts, sand.WithSeed(*seed))
	}
	if *debug {
		opts = append(opts, sand.WithComponents(debugui.RegisterComponents))
	}

	engine, err := sand.NewEngine(cfg, opts...)
	if err != nil {
		log.Error("engine", slog.Any("err", err))
		os.Exit(1)
	}

	g := newGame(engine, *pixels)
	width, height := g.screenSize()

	if *debug {
		g.origin = debugPanelWidth
		g.imgui = debugui_ebiten.NewImguiBackend("sandfall (debug)", width+debugPanelWidth, max(height, 720))
		g.imguiInput = debugui.Install(engine.Storage(), engine.Scheduler())
		spawnSessionInspector(engine.Storage(), g)
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle("sandfall")
	}

	if err := ebiten.RunGame(g); err != nil {
		log.Error("run", slog.Any("err", err))
		os.Exit(1)
	}
}
