// Package debugui provides Dear ImGui windows for inspecting a running blockfall
// session. Windows are registered on an Overlay and drawn once per frame between the
// backend's BeginFrame and EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/tetris"
)

// Item is one ImGui render function drawn every frame.
type Item struct {
	Render func()
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Hosts should not forward keys to the session while WantCaptureKeyboard is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay owns the registered windows and the input capture state.
type Overlay struct {
	items []Item
	input InputState
}

func NewOverlay() *Overlay {
	return &Overlay{}
}

// Add registers a render function. Items draw in registration order.
func (o *Overlay) Add(render func()) {
	o.items = append(o.items, Item{Render: render})
}

func (o *Overlay) Len() int {
	return len(o.items)
}

// Render refreshes the input capture state and draws every item.
func (o *Overlay) Render() {
	io := imgui.CurrentIO()
	o.input.WantCaptureMouse = io.WantCaptureMouse()
	o.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range o.items {
		item.Render()
	}
}

func (o *Overlay) InputState() InputState {
	return o.input
}

// AddSessionWindows registers the standard inspection windows for s.
func AddSessionWindows(o *Overlay, s *tetris.Session, timer *FrameTimer) *PerformanceStats {
	perf := NewPerformanceStats(DefaultHistoryFrames)
	o.Add(SessionInspector(s))
	o.Add(SchedulerWindow(s))
	o.Add(perf.Window(s, timer.DeltaTime))
	return perf
}
