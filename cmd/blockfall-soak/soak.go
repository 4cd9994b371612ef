package main

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/plus3/blockfall/tetris"
)

// randomInput holds each direction for a random stretch of frames and taps rotate
// and hard drop occasionally.
type randomInput struct {
	rng      *rand.Rand
	held     tetris.Input
	holdLeft int
	dropRate float64
}

func newRandomInput(rng *rand.Rand, dropRate float64) *randomInput {
	return &randomInput{rng: rng, dropRate: dropRate}
}

func (r *randomInput) Poll() tetris.Input {
	if r.holdLeft <= 0 {
		r.held = tetris.Input{}
		switch r.rng.IntN(4) {
		case 0:
			r.held.Left = true
		case 1:
			r.held.Right = true
		case 2:
			r.held.Down = true
		}
		r.holdLeft = 1 + r.rng.IntN(30)
	}
	r.holdLeft--

	in := r.held
	in.Rotate = r.rng.IntN(20) == 0
	in.HardDrop = r.rng.Float64() < r.dropRate
	return in
}

type soakOptions struct {
	// Frames stops the run after this many updates when positive.
	Frames int64
	// Step is the simulated frame time in seconds.
	Step   float64
}

// runSoak drives session with src until ctx is done or the frame budget is spent,
// resetting after every game over.
func runSoak(ctx context.Context, session *tetris.Session, src tetris.InputSource, opts soakOptions, report *Report) {
	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			if opts.Frames > 0 && report.TotalUpdates >= opts.Frames {
				break Loop
			}
			if session.Over() {
				report.recordGame(session, true)
				session.Reset()
			}

			in := src.Poll()
			updateStart := time.Now()
			session.Update(in, opts.Step)
			report.UpdateTime.Add(time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.recordGame(session, session.Over())
	report.TotalTime = time.Since(startTime)
	report.SimulatedTime = time.Duration(float64(report.TotalUpdates) * opts.Step * float64(time.Second))
	report.Scheduler = *session.SchedulerStats()
}
