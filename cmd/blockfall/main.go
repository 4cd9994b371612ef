package main

import (
	"flag"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/tetris/debugui"
	debugui_ebiten "github.com/plus3/blockfall/tetris/debugui/ebiten"
)

// debugBoardX keeps the board clear of the inspection windows.
const debugBoardX = 770

func main() {
	envFile := flag.String("env", ".env", "Optional .env file with BLOCKFALL_* settings.")
	seed := flag.Uint64("seed", 0, "Seed for the piece generator (0 uses BLOCKFALL_SEED or a random seed).")
	cellSize := flag.Int("cell", 0, "Cell size in pixels (0 uses BLOCKFALL_CELL_SIZE).")
	debug := flag.Bool("debug", false, "Show the Dear ImGui inspection overlay.")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *cellSize > 0 {
		cfg.CellSize = *cellSize
	}
	if *debug {
		cfg.DebugUI = true
	}

	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}
	log.Printf("Starting blockfall (seed %d)", cfg.Seed)

	session, err := tetris.NewSession(
		rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)),
		tetris.WithSettings(cfg.Settings),
		tetris.WithLogger(log.Default()),
	)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	game := NewGame(session, cfg.CellSize)
	width, height := game.ScreenSize()

	if cfg.DebugUI {
		overlay := debugui.NewOverlay()
		game.origin.X = debugBoardX
		debugui.AddSessionWindows(overlay, session, debugui.NewFrameTimer())
		game.imgui = debugui_ebiten.NewImguiBackend("Blockfall", 1280, 720, overlay)
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle("Blockfall")
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Game exited with error: %v", err)
	}
	log.Printf("Final score %d, lines %d", session.Score(), session.Lines())
}
