package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/plus3/sandfall/sand"
)

func main() {
	ticks := flag.Int("ticks", 100_000, "The number of engine ticks to run.")
	seed := flag.Uint64("seed", 1, "Seed for the engine and the bot.")
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty).")
	progress := flag.Bool("progress", true, "Show a progress bar.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting sand stress test...")

	cfg := sand.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = sand.LoadConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	engine, err := sand.NewEngine(cfg, sand.WithSeed(*seed))
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	bot := newBot(*seed)

	report := &Report{
		Ticks:          *ticks,
		Seed:           *seed,
		Width:          cfg.GrainWidth(),
		Height:         cfg.GrainHeight(),
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0, *ticks),
		},
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running %d ticks...\n", *ticks)
	bar := pb.StartNew(*ticks)
	if !*progress {
		bar.SetWriter(io.Discard)
	}

	startTime := time.Now()
	for range *ticks {
		in := bot.next(engine.Snapshot())

		updateStart := time.Now()
		engine.Step(in)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

		if engine.Phase() == sand.PhaseGameOver {
			report.record(engine.Session())
			engine.Reset()
		}
		bar.Increment()
	}
	bar.Finish()
	report.record(engine.Session())

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.Systems = engine.Scheduler().GetStats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
