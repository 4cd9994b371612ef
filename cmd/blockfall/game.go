package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/tetris"
	debugui_ebiten "github.com/plus3/blockfall/tetris/debugui/ebiten"
)

const (
	boardMargin = 50
	panelWidth  = 160
)

var (
	borderColor = color.RGBA{128, 128, 128, 255}
	ghostColor  = color.RGBA{255, 255, 255, 80}
	outline     = color.RGBA{0, 0, 0, 255}
)

// keyboard reads the arrow keys as held levels and rotate/hard drop as presses.
type keyboard struct{}

func (keyboard) Poll() tetris.Input {
	return tetris.Input{
		Left:     ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:    ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Down:     ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Rotate:   inpututil.IsKeyJustPressed(ebiten.KeyArrowUp),
		HardDrop: inpututil.IsKeyJustPressed(ebiten.KeySpace),
	}
}

// Game implements ebiten.Game around a single session.
type Game struct {
	session  *tetris.Session
	input    tetris.InputSource
	cellSize int
	origin   image.Point

	imgui *debugui_ebiten.ImguiBackend
}

func NewGame(session *tetris.Session, cellSize int) *Game {
	return &Game{
		session:  session,
		input:    keyboard{},
		cellSize: cellSize,
		origin:   image.Pt(boardMargin, boardMargin),
	}
}

// ScreenSize is the window size needed for the board and the side panel.
func (g *Game) ScreenSize() (int, int) {
	width := g.origin.X + tetris.Width*g.cellSize + panelWidth + boardMargin
	height := g.origin.Y + tetris.Height*g.cellSize + boardMargin
	return width, height
}

// cellRect is the screen rectangle of a grid cell.
func (g *Game) cellRect(col, row int) image.Rectangle {
	topLeft := g.origin.Add(image.Pt(col*g.cellSize, row*g.cellSize))
	return image.Rectangle{Min: topLeft, Max: topLeft.Add(image.Pt(g.cellSize, g.cellSize))}
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.imgui != nil {
		g.imgui.Update()
		if g.imgui.Overlay.InputState().WantCaptureKeyboard {
			return nil
		}
	}

	if g.session.Over() {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.session.Reset()
		}
		return nil
	}

	g.session.Update(g.input.Poll(), 1.0/float64(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	view := g.session.View()
	cell := float32(g.cellSize)

	vector.StrokeRect(screen,
		float32(g.origin.X-2), float32(g.origin.Y-2),
		float32(tetris.Width*g.cellSize+4), float32(tetris.Height*g.cellSize+4),
		2, borderColor, false)

	for row := range tetris.Height {
		for col := range tetris.Width {
			if c := view.Cells[row][col]; c.Filled {
				g.drawCell(screen, g.cellRect(col, row), c.Color, true)
			}
		}
	}

	if !view.Over {
		for _, p := range view.Ghost {
			r := g.cellRect(p.X, p.Y)
			vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), cell, cell, ghostColor, false)
		}
	}
	for _, p := range view.Active {
		if p.Y < 0 {
			continue
		}
		g.drawCell(screen, g.cellRect(p.X, p.Y), view.ActiveKind.Color(), true)
	}

	g.drawPanel(screen, view)

	if g.imgui != nil {
		g.imgui.DrawOverlay(screen)
	}
}

func (g *Game) drawCell(screen *ebiten.Image, r image.Rectangle, c color.RGBA, outlined bool) {
	x, y := float32(r.Min.X), float32(r.Min.Y)
	w, h := float32(r.Dx()), float32(r.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, c, false)
	if outlined {
		vector.StrokeRect(screen, x, y, w, h, 1, outline, false)
	}
}

func (g *Game) drawPanel(screen *ebiten.Image, view tetris.View) {
	textX := g.origin.X + tetris.Width*g.cellSize + 20
	textY := g.origin.Y

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE\n%d", view.Score), textX, textY)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("LINES\n%d", view.Lines), textX, textY+40)
	ebitenutil.DebugPrintAt(screen, "NEXT", textX, textY+80)

	previewCell := g.cellSize / 2
	for i, k := range view.Preview {
		base := image.Pt(textX, textY+100+i*3*previewCell)
		for _, p := range tetris.Shapes(k)[0] {
			topLeft := base.Add(image.Pt(p.X*previewCell, p.Y*previewCell))
			g.drawCell(screen, image.Rectangle{Min: topLeft, Max: topLeft.Add(image.Pt(previewCell, previewCell))}, k.Color(), false)
		}
	}

	if view.Over {
		midY := g.origin.Y + tetris.Height*g.cellSize/2
		ebitenutil.DebugPrintAt(screen, "GAME OVER", g.origin.X+20, midY-10)
		ebitenutil.DebugPrintAt(screen, "Press R to restart", g.origin.X+20, midY+10)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f", ebiten.ActualTPS()), textX, g.origin.Y+tetris.Height*g.cellSize-16)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.ScreenSize()
}
