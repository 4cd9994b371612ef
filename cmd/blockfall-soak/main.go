package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/tetris"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total wall time the soak should run for.")
	frames := flag.Int64("frames", 0, "Stop after this many frames (0 runs for the whole duration).")
	step := flag.Duration("step", time.Second/60, "Simulated time per frame.")
	seed := flag.Uint64("seed", 0, "Seed for pieces and inputs (0 uses BLOCKFALL_SEED or a random seed).")
	dropRate := flag.Float64("hard-drop-rate", 0.02, "Probability of a hard drop on any frame.")
	envFile := flag.String("env", ".env", "Optional .env file with BLOCKFALL_* settings.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}
	if *step <= 0 {
		log.Fatalf("Frame step must be positive, got %s", *step)
	}

	log.Printf("Starting blockfall soak (seed %d)...", cfg.Seed)

	session, err := tetris.NewSession(
		rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)),
		tetris.WithSettings(cfg.Settings),
	)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}
	input := newRandomInput(rand.New(rand.NewPCG(cfg.Seed, ^cfg.Seed)), *dropRate)

	report := &Report{
		Duration:       *duration,
		Frames:         *frames,
		Step:           *step,
		Seed:           cfg.Seed,
		Settings:       cfg.Settings,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running for %s...", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	runSoak(ctx, session, input, soakOptions{Frames: *frames, Step: step.Seconds()}, report)

	runtime.ReadMemStats(&report.MemStatsEnd)
	log.Printf("Soak finished after %d frames and %d games.", report.TotalUpdates, report.Games)

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
