package debugui

import (
	"fmt"
	"image/color"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/tetris"
)

func kindColor(k tetris.Kind) imgui.Vec4 {
	c := k.Color()
	return rgba(c)
}

func rgba(c color.RGBA) imgui.Vec4 {
	return imgui.NewVec4(
		float32(c.R)/255.0,
		float32(c.G)/255.0,
		float32(c.B)/255.0,
		float32(c.A)/255.0,
	)
}

// SessionInspector returns a window showing the score, the falling piece and its
// timers, the preview queue and the tally, with a button to reset the session.
func SessionInspector(s *tetris.Session) func() {
	return func() {
		imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(320, 400), imgui.CondOnce)

		if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		if s.Over() {
			imgui.TextColored(imgui.NewVec4(1.0, 0.3, 0.3, 1.0), "GAME OVER")
		} else {
			imgui.TextColored(imgui.NewVec4(0.0, 1.0, 0.0, 1.0), "RUNNING")
		}
		imgui.Text(fmt.Sprintf("Score: %d", s.Score()))
		imgui.Text(fmt.Sprintf("Lines: %d", s.Lines()))

		imgui.Separator()
		current := s.Current()
		imgui.PushStyleColorVec4(imgui.ColText, kindColor(current.Kind))
		imgui.Text(fmt.Sprintf("■ Piece %s", current.Kind))
		imgui.PopStyleColor()
		imgui.Indent()
		imgui.Text(fmt.Sprintf("Position: (%d, %d)", current.X, current.Y))
		imgui.Text(fmt.Sprintf("Rotation: %d", current.Rotation))
		imgui.Unindent()

		if imgui.TreeNodeStr("Timers") {
			settings := s.Settings()
			timers := s.Timers()
			imgui.Text(fmt.Sprintf("Drop: %.3f / %.3fs", timers.Drop, settings.DropInterval.Seconds()))
			imgui.Text(fmt.Sprintf("Left: %.3fs", timers.Left))
			imgui.Text(fmt.Sprintf("Right: %.3fs", timers.Right))
			imgui.Text(fmt.Sprintf("Shift delay/interval: %s / %s", settings.ShiftDelay, settings.ShiftInterval))
			imgui.TreePop()
		}

		if imgui.TreeNodeStr("Next Pieces") {
			for i, k := range s.Preview() {
				imgui.PushStyleColorVec4(imgui.ColText, kindColor(k))
				imgui.BulletText(fmt.Sprintf("%d: %s", i+1, k))
				imgui.PopStyleColor()
			}
			imgui.TreePop()
		}

		if imgui.TreeNodeStr("Tally") {
			renderTally(s.Tally())
			imgui.TreePop()
		}

		imgui.Separator()
		if imgui.Button("Reset Session") {
			s.Reset()
		}

		imgui.End()
	}
}

func renderTally(tally *tetris.Tally) {
	imgui.Text(fmt.Sprintf("Pieces locked: %d", tally.TotalPieces()))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("TallyPieces", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Locked")
		imgui.TableHeadersRow()

		for _, k := range tetris.Kinds {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.TextColored(kindColor(k), k.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", tally.Pieces(k)))
		}
		imgui.EndTable()
	}

	if imgui.BeginTableV("TallyClears", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Lines")
		imgui.TableSetupColumn("Clears")
		imgui.TableHeadersRow()

		for lines := 1; lines <= tetris.MaxLinesPerClear; lines++ {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", lines))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", tally.Clears(lines)))
		}
		imgui.EndTable()
	}
}
