package tetris_test

import (
	"testing"

	"github.com/plus3/blockfall/tetris"
)

type recordingSystem struct {
	name  string
	log   *[]string
	halt  bool
	seen  tetris.Input
	delta float64
}

func (s *recordingSystem) Execute(frame *tetris.Frame) {
	*s.log = append(*s.log, s.name)
	s.seen = frame.Input
	s.delta = frame.DeltaTime
	if s.halt {
		frame.Halt()
	}
}

type CountingSystem struct {
	ExecuteCount int
}

func (s *CountingSystem) Execute(frame *tetris.Frame) {
	s.ExecuteCount++
}

func runFrame(s *tetris.Scheduler, in tetris.Input, dt float64) *tetris.Frame {
	frame := &tetris.Frame{Input: in, DeltaTime: dt}
	s.Once(frame)
	return frame
}

func TestScheduler(t *testing.T) {
	t.Run("systems run in registration order", func(t *testing.T) {
		var order []string
		scheduler := tetris.NewScheduler()
		first := &recordingSystem{name: "first", log: &order}
		second := &recordingSystem{name: "second", log: &order}
		scheduler.Register(first)
		scheduler.Register(second)

		runFrame(scheduler, tetris.Input{Left: true}, 0.25)

		if len(order) != 2 || order[0] != "first" || order[1] != "second" {
			t.Errorf("expected [first second], got %v", order)
		}
		if !second.seen.Left || second.delta != 0.25 {
			t.Errorf("expected frame input and delta to reach systems, got %+v %v", second.seen, second.delta)
		}
	})

	t.Run("halt skips later systems", func(t *testing.T) {
		var order []string
		scheduler := tetris.NewScheduler()
		scheduler.Register(&recordingSystem{name: "first", log: &order, halt: true})
		scheduler.Register(&recordingSystem{name: "second", log: &order})

		frame := runFrame(scheduler, tetris.Input{}, 0.1)

		if !frame.Halted() {
			t.Error("expected frame to be halted")
		}
		if len(order) != 1 {
			t.Errorf("expected only the halting system to run, got %v", order)
		}

		stats := scheduler.Stats()
		if stats.HaltedFrames != 1 || stats.Frames != 1 {
			t.Errorf("expected 1 halted frame of 1, got %d of %d", stats.HaltedFrames, stats.Frames)
		}
	})

	t.Run("stats", func(t *testing.T) {
		scheduler := tetris.NewScheduler()
		counting := &CountingSystem{}
		idle := &CountingSystem{}
		scheduler.Register(counting)

		for range 3 {
			runFrame(scheduler, tetris.Input{}, 0.1)
		}
		scheduler.Register(idle)

		stats := scheduler.Stats()
		if stats.SystemCount != 2 {
			t.Errorf("expected 2 systems, got %d", stats.SystemCount)
		}
		if stats.TotalExecutions != 3 {
			t.Errorf("expected 3 executions, got %d", stats.TotalExecutions)
		}
		if stats.Systems[0].Name != "CountingSystem" {
			t.Errorf("expected system name CountingSystem, got %q", stats.Systems[0].Name)
		}
		if stats.Systems[0].ExecutionCount != 3 || counting.ExecuteCount != 3 {
			t.Errorf("expected CountingSystem to execute 3 times, got %d", stats.Systems[0].ExecutionCount)
		}
		if stats.Systems[0].MinDuration > stats.Systems[0].MaxDuration {
			t.Errorf("min duration %s exceeds max %s", stats.Systems[0].MinDuration, stats.Systems[0].MaxDuration)
		}
		if stats.Systems[1].ExecutionCount != 0 || stats.Systems[1].MinDuration != 0 {
			t.Errorf("expected an idle system to report zeroes, got %+v", stats.Systems[1])
		}
	})
}
