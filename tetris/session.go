// Package tetris implements the game-state engine of a falling-block puzzle: the
// playfield, piece movement and rotation rules, line clears, the bag randomizer and
// the frame-based timing of gravity and key auto-repeat.
package tetris

import (
	"context"
	"io"
	"log"
	"math/rand/v2"
	"time"
)

// Option configures a Session.
type Option func(*Session)

// WithSettings replaces the default timing settings.
func WithSettings(settings Settings) Option {
	return func(s *Session) {
		s.settings = settings
	}
}

// WithLogger sets the logger used for game-over and reset notices.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Timers exposes the session's timing state in seconds.
type Timers struct {
	Drop  float64
	Left  float64
	Right float64
}

// Session is one game: the playfield, the falling piece, the supply queue, the
// timers and the score. It is driven one frame at a time by Update and is not safe
// for concurrent use.
type Session struct {
	settings Settings
	rng      *rand.Rand
	logger   *log.Logger

	field   *Playfield
	queue   *SupplyQueue
	current Piece
	tally   *Tally

	score int
	lines int
	over  bool

	dropTimer   float64
	left, right Repeater

	scheduler *Scheduler
}

// NewSession creates a session drawing all randomness from rng. A nil rng gets a
// randomly seeded generator.
func NewSession(rng *rand.Rand, opts ...Option) (*Session, error) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	s := &Session{
		settings: DefaultSettings(),
		rng:      rng,
		logger:   log.New(io.Discard, "", 0),
		field:    NewPlayfield(),
		tally:    newTally(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.settings.Validate(); err != nil {
		return nil, err
	}

	delay := s.settings.ShiftDelay.Seconds()
	interval := s.settings.ShiftInterval.Seconds()
	s.left = NewRepeater(delay, interval)
	s.right = NewRepeater(delay, interval)
	s.queue = NewSupplyQueue(rng, s.settings.Lookahead)
	s.current = NewRandomPiece(rng)

	s.scheduler = NewScheduler()
	s.scheduler.Register(&HardDropSystem{})
	s.scheduler.Register(&ShiftSystem{})
	s.scheduler.Register(&RotateSystem{})
	s.scheduler.Register(&SoftDropSystem{})
	s.scheduler.Register(&GravitySystem{})

	return s, nil
}

// Update advances the session by one frame of dt seconds. It does nothing once the
// game is over.
func (s *Session) Update(in Input, dt float64) {
	if s.over {
		return
	}
	s.scheduler.Once(newFrame(dt, in, s))
}

// Run updates the session every interval until ctx is cancelled, polling src for
// input before each frame.
func (s *Session) Run(ctx context.Context, interval time.Duration, src InputSource) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Update(src.Poll(), dt)
		}
	}
}

// Reset starts a new game with the same settings and generator.
func (s *Session) Reset() {
	s.field.Reset()
	s.queue.Reset()
	s.tally.reset()
	s.score = 0
	s.lines = 0
	s.over = false
	s.dropTimer = 0
	s.left.Release()
	s.right.Release()
	s.current = NewRandomPiece(s.rng)
	s.logger.Println("session reset")
}

// try commits candidate as the active piece if it fits.
func (s *Session) try(candidate Piece) bool {
	if !s.field.CanPlace(candidate) {
		return false
	}
	s.current = candidate
	return true
}

// lockCurrent fixes the active piece into the playfield, scores cleared rows and
// brings in the next queued piece.
func (s *Session) lockCurrent() {
	kind := s.current.Kind
	s.field.Lock(s.current, kind.Color())

	lines := s.field.ClearFullLines()
	s.score += lines * LineClearPoints
	s.lines += lines
	s.tally.record(kind, lines)

	s.spawn(s.queue.Pop())
}

func (s *Session) spawn(k Kind) {
	s.current = SpawnPiece(k)
	s.dropTimer = 0
	if !s.field.CanPlace(s.current) {
		s.over = true
		s.logger.Printf("game over: %s blocked at spawn (score %d, lines %d)", k, s.score, s.lines)
	}
}

// Score returns the points earned so far.
func (s *Session) Score() int { return s.score }

// Lines returns the number of rows cleared so far.
func (s *Session) Lines() int { return s.lines }

// Over reports whether a spawned piece has been blocked.
func (s *Session) Over() bool { return s.over }

func (s *Session) Current() Piece { return s.current }

func (s *Session) Preview() []Kind { return s.queue.Preview() }

func (s *Session) Tally() *Tally { return s.tally }

func (s *Session) Settings() Settings { return s.settings }

// Timers returns the drop and shift timers.
func (s *Session) Timers() Timers {
	return Timers{
		Drop:  s.dropTimer,
		Left:  s.left.Elapsed(),
		Right: s.right.Elapsed(),
	}
}

// SchedulerStats returns per-system execution statistics.
func (s *Session) SchedulerStats() *SchedulerStats {
	return s.scheduler.Stats()
}
