package ebiten_test

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/tetris/debugui"
	debugui_ebiten "github.com/plus3/blockfall/tetris/debugui/ebiten"
)

// Game implements ebiten.Game and drives a session with the ImGui overlay on top.
type Game struct {
	session *tetris.Session
	backend *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	// Build the ImGui frame first so input capture state is current
	g.backend.Update()

	if !g.backend.Overlay.InputState().WantCaptureKeyboard {
		g.session.Update(tetris.Input{}, 1.0/60.0)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw the playfield from g.session.View()
	// ...

	// Draw ImGui overlay on top
	g.backend.DrawOverlay(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	session, err := tetris.NewSession(nil)
	if err != nil {
		panic(err)
	}

	// Register the inspection windows
	overlay := debugui.NewOverlay()
	debugui.AddSessionWindows(overlay, session, debugui.NewFrameTimer())

	// Create Ebiten window and ImGui backend
	backend := debugui_ebiten.NewImguiBackend("Blockfall Debug", 1280, 720, overlay)

	game := &Game{
		session: session,
		backend: backend,
	}

	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
