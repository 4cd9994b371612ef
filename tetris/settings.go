package tetris

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultShiftDelay    = 150 * time.Millisecond
	DefaultShiftInterval = 120 * time.Millisecond
	DefaultDropInterval  = 500 * time.Millisecond

	// LineClearPoints is awarded per cleared row.
	LineClearPoints = 100
	// HardDropPoints is awarded per row fallen during a hard drop.
	HardDropPoints = 2
)

var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds the timing constants of a session.
type Settings struct {
	// ShiftDelay is how long a direction must be held before it auto-repeats (DAS).
	ShiftDelay time.Duration
	// ShiftInterval is the time between auto-repeated moves (ARR).
	ShiftInterval time.Duration
	// DropInterval is the gravity period.
	DropInterval time.Duration
	// Lookahead is how many upcoming kinds the supply queue keeps.
	Lookahead int
}

// DefaultSettings returns the reference timing: 150ms DAS, 120ms ARR, 500ms gravity
// and five previews.
func DefaultSettings() Settings {
	return Settings{
		ShiftDelay:    DefaultShiftDelay,
		ShiftInterval: DefaultShiftInterval,
		DropInterval:  DefaultDropInterval,
		Lookahead:     DefaultLookahead,
	}
}

func (s Settings) Validate() error {
	switch {
	case s.ShiftDelay < 0:
		return fmt.Errorf("%w: shift delay %s is negative", ErrInvalidSettings, s.ShiftDelay)
	case s.ShiftInterval <= 0:
		return fmt.Errorf("%w: shift interval %s must be positive", ErrInvalidSettings, s.ShiftInterval)
	case s.DropInterval <= 0:
		return fmt.Errorf("%w: drop interval %s must be positive", ErrInvalidSettings, s.DropInterval)
	case s.Lookahead < 1:
		return fmt.Errorf("%w: lookahead %d must be at least 1", ErrInvalidSettings, s.Lookahead)
	}
	return nil
}
