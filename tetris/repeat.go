package tetris

// Repeater turns a held key into moves: one on the press frame, then one more each
// time Interval elapses after the initial Delay. After each repeat the timer is
// pinned back to Delay, so repeats never compound and at most one fires per frame.
type Repeater struct {
	Delay    float64
	Interval float64

	held    bool
	elapsed float64
}

// NewRepeater creates a repeater from delay and interval in seconds.
func NewRepeater(delay, interval float64) Repeater {
	return Repeater{Delay: delay, Interval: interval}
}

// Step advances the timer by dt seconds and returns how many moves to attempt.
func (r *Repeater) Step(held bool, dt float64) int {
	if !held {
		r.Release()
		return 0
	}

	moves := 0
	if !r.held {
		r.held = true
		r.elapsed = 0
		moves++
	}

	r.elapsed += dt
	if r.elapsed >= r.Delay && r.elapsed-r.Delay >= r.Interval {
		moves++
		r.elapsed = r.Delay
	}
	return moves
}

// Release clears the held state and timer.
func (r *Repeater) Release() {
	r.held = false
	r.elapsed = 0
}

// Held reports whether the key was held on the last step.
func (r *Repeater) Held() bool {
	return r.held
}

// Elapsed returns the accumulated hold time in seconds.
func (r *Repeater) Elapsed() float64 {
	return r.elapsed
}
