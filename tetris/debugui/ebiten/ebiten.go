// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/tetris/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation and the
// overlay it draws.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
	Overlay *debugui.Overlay
}

// NewImguiBackend creates the backend window. The imgui.ini file is disabled so
// window layout always starts from the positions the windows ask for.
func NewImguiBackend(title string, width, height int, overlay *debugui.Overlay) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &ImguiBackend{
		EbitenBackend: backend,
		Overlay:       overlay,
	}
}

// Update renders one ImGui frame of the overlay. Call it from ebiten.Game.Update.
func (b *ImguiBackend) Update() {
	b.BeginFrame()
	b.Overlay.Render()
	b.EndFrame()
}

// DrawOverlay draws the last ImGui frame on top of screen.
func (b *ImguiBackend) DrawOverlay(screen *ebiten.Image) {
	b.Draw(screen)
}
