package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/tetris"
)

const DefaultHistoryFrames = 120

// PerformanceStats keeps a ring of recent frame times in milliseconds.
type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	recorded      int
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	if historyFrames < 1 {
		historyFrames = DefaultHistoryFrames
	}
	return &PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record adds one frame time given in seconds.
func (ps *PerformanceStats) Record(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
	if ps.recorded < ps.historyFrames {
		ps.recorded++
	}
}

// AverageFrameTime returns the mean of the recorded frame times in milliseconds.
func (ps *PerformanceStats) AverageFrameTime() float32 {
	if ps.recorded == 0 {
		return 0
	}
	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	return total / float32(ps.recorded)
}

// History returns the recorded frame times oldest first.
func (ps *PerformanceStats) History() []float32 {
	if ps.recorded < ps.historyFrames {
		return append([]float32(nil), ps.frameHistory[:ps.recorded]...)
	}
	ordered := make([]float32, ps.historyFrames)
	copy(ordered, ps.frameHistory[ps.frameIndex:])
	copy(ordered[ps.historyFrames-ps.frameIndex:], ps.frameHistory[:ps.frameIndex])
	return ordered
}

// Window returns a render function that records deltaTime() each frame and plots
// the history next to the scheduler counters.
func (ps *PerformanceStats) Window(s *tetris.Session, deltaTime func() float32) func() {
	return func() {
		ps.Record(deltaTime())

		imgui.SetNextWindowPosV(imgui.NewVec2(10, 420), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(320, 200), imgui.CondOnce)

		if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		stats := s.SchedulerStats()
		imgui.Text(fmt.Sprintf("Frames: %d (%d halted)", stats.Frames, stats.HaltedFrames))
		imgui.Text(fmt.Sprintf("System Executions: %d", stats.TotalExecutions))

		avg := ps.AverageFrameTime()
		if avg > 0 {
			imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
		} else {
			imgui.Text("Avg Frame Time: -")
		}

		imgui.Separator()
		imgui.Text("Frame Time Graph (ms)")
		history := ps.History()
		if len(history) > 0 {
			imgui.PlotLinesFloatPtr("##frametime", &history[0], int32(len(history)))
		}

		imgui.End()
	}
}

// FrameTimer measures wall time between calls.
type FrameTimer struct {
	lastFrameTime time.Time
	now           func() time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
		now:           time.Now,
	}
}

// DeltaTime returns the seconds elapsed since the previous call.
func (ft *FrameTimer) DeltaTime() float32 {
	now := ft.now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
