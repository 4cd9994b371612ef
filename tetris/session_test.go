package tetris

import (
	"bytes"
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Binary-friendly timing so accumulated frame times compare exactly.
var testSettings = Settings{
	ShiftDelay:    250 * time.Millisecond,
	ShiftInterval: 125 * time.Millisecond,
	DropInterval:  500 * time.Millisecond,
	Lookahead:     DefaultLookahead,
}

const frame = 1.0 / 64.0

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithSettings(testSettings)}, opts...)
	s, err := NewSession(rand.New(rand.NewPCG(1, 2)), opts...)
	require.NoError(t, err)
	return s
}

func TestNewSessionInvalidSettings(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"negative shift delay", func(s *Settings) { s.ShiftDelay = -time.Millisecond }},
		{"zero shift interval", func(s *Settings) { s.ShiftInterval = 0 }},
		{"zero drop interval", func(s *Settings) { s.DropInterval = 0 }},
		{"no lookahead", func(s *Settings) { s.Lookahead = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.modify(&settings)

			s, err := NewSession(nil, WithSettings(settings))
			assert.Nil(t, s)
			assert.True(t, errors.Is(err, ErrInvalidSettings), "got %v", err)
		})
	}
}

func TestNewSession(t *testing.T) {
	s, err := NewSession(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultSettings(), s.Settings())
	assert.Len(t, s.Preview(), DefaultLookahead)
	assert.Equal(t, SpawnPiece(s.Current().Kind), s.Current())
	assert.Zero(t, s.Score())
	assert.False(t, s.Over())
}

func TestShiftMovesOncePerPress(t *testing.T) {
	s := newTestSession(t)
	s.current = SpawnPiece(O)

	s.Update(Input{Left: true}, frame)
	assert.Equal(t, 2, s.Current().X, "a new press moves exactly one column")

	for range 5 {
		s.Update(Input{Left: true}, frame)
	}
	assert.Equal(t, 2, s.Current().X, "holding below the delay must not move")

	s.Update(Input{}, frame)
	s.Update(Input{Right: true}, frame)
	assert.Equal(t, 3, s.Current().X)
}

func TestShiftAutoRepeat(t *testing.T) {
	s := newTestSession(t)
	s.current = SpawnPiece(O)

	for range 6 {
		s.Update(Input{Left: true}, 0.0625)
	}
	assert.Equal(t, 1, s.Current().X, "press plus one repeat after delay and interval")
	assert.Equal(t, 0, s.Current().Y, "gravity has not fired yet")
}

func TestShiftStopsAtWall(t *testing.T) {
	s := newTestSession(t)
	s.current = SpawnPiece(O)

	for range 8 {
		s.Update(Input{Left: true}, 0.125)
	}
	assert.Equal(t, -1, s.Current().X)
	for _, c := range s.Current().Cells() {
		assert.GreaterOrEqual(t, c.X, 0)
	}
	assert.Equal(t, 2, s.Current().Y, "gravity fired twice in one second")
}

func TestRotate(t *testing.T) {
	s := newTestSession(t)
	s.current = Piece{Kind: T, X: 3, Y: 5}

	s.Update(Input{Rotate: true}, frame)
	assert.Equal(t, 1, s.Current().Rotation)

	s.Update(Input{}, frame)
	assert.Equal(t, 1, s.Current().Rotation, "rotation is edge triggered")
}

func TestRotateAgainstWall(t *testing.T) {
	s := newTestSession(t)
	s.current = Piece{Kind: I, Rotation: 1, X: -2, Y: 5}
	require.True(t, s.field.CanPlace(s.current))

	s.Update(Input{Rotate: true}, frame)
	assert.Equal(t, 1, s.Current().Rotation, "a rotation that leaves the grid is discarded")
	assert.Equal(t, -2, s.Current().X, "no wall kick")
}

func TestSoftDropAndGravitySameFrame(t *testing.T) {
	s := newTestSession(t)
	s.current = SpawnPiece(T)

	s.Update(Input{Down: true}, 0.5)
	assert.Equal(t, 2, s.Current().Y)
	assert.Zero(t, s.Timers().Drop)
}

func TestGravity(t *testing.T) {
	s := newTestSession(t)
	s.current = SpawnPiece(S)

	s.Update(Input{}, 0.25)
	assert.Equal(t, 0, s.Current().Y)
	assert.Equal(t, 0.25, s.Timers().Drop)

	s.Update(Input{}, 0.25)
	assert.Equal(t, 1, s.Current().Y)
	assert.Zero(t, s.Timers().Drop)
}

func TestGravityLocks(t *testing.T) {
	s := newTestSession(t)
	s.current = Piece{Kind: O, X: 3, Y: 18}
	next := s.Preview()[0]

	s.Update(Input{}, 0.5)

	assert.Equal(t, 4, s.field.Occupied())
	for _, c := range (Piece{Kind: O, X: 3, Y: 18}).Cells() {
		cell, _ := s.field.Cell(c.X, c.Y)
		assert.Equal(t, Cell{Filled: true, Color: O.Color()}, cell)
	}
	assert.Equal(t, SpawnPiece(next), s.Current())
	assert.Len(t, s.Preview(), DefaultLookahead)
	assert.Equal(t, 1, s.Tally().Pieces(O))
	assert.Zero(t, s.Score())
}

func TestGravityLockClearsLines(t *testing.T) {
	s := newTestSession(t)
	fillRow(s.field, 19, testGray, 4, 5)
	s.current = Piece{Kind: O, X: 3, Y: 18}

	s.Update(Input{}, 0.5)

	assert.Equal(t, LineClearPoints, s.Score())
	assert.Equal(t, 1, s.Lines())
	assert.Equal(t, 1, s.Tally().Clears(1))

	var want Grid
	want[19][4] = Cell{Filled: true, Color: O.Color()}
	want[19][5] = Cell{Filled: true, Color: O.Color()}
	if diff := cmp.Diff(want, s.field.Cells()); diff != "" {
		t.Errorf("unexpected grid (-want +got):\n%s", diff)
	}
}

func TestHardDropEmptyBoard(t *testing.T) {
	s := newTestSession(t)
	s.current = SpawnPiece(O)
	next := s.Preview()[0]

	s.Update(Input{HardDrop: true}, frame)

	assert.Equal(t, 18*HardDropPoints, s.Score())
	for _, c := range (Piece{Kind: O, X: 3, Y: 18}).Cells() {
		cell, ok := s.field.Cell(c.X, c.Y)
		require.True(t, ok)
		assert.True(t, cell.Filled)
	}
	assert.Equal(t, SpawnPiece(next), s.Current())
	assert.Len(t, s.Preview(), DefaultLookahead)
}

func TestHardDropClearsLines(t *testing.T) {
	s := newTestSession(t)
	fillRow(s.field, 18, testGray, 4, 5)
	fillRow(s.field, 19, testGray, 4, 5)
	s.current = SpawnPiece(O)

	s.Update(Input{HardDrop: true}, frame)

	assert.Equal(t, 18*HardDropPoints+2*LineClearPoints, s.Score())
	assert.Equal(t, 2, s.Lines())
	assert.Equal(t, 0, s.field.Occupied())
	assert.Equal(t, 1, s.Tally().Clears(2))
}

func TestHardDropHaltsFrame(t *testing.T) {
	s := newTestSession(t)
	s.current = SpawnPiece(O)
	next := s.Preview()[0]

	s.Update(Input{HardDrop: true, Left: true, Down: true, Rotate: true}, 0.5)

	assert.Equal(t, SpawnPiece(next), s.Current(), "nothing else may act on the new piece")
	assert.Zero(t, s.Timers().Drop)
	assert.Zero(t, s.Timers().Left)

	stats := s.SchedulerStats()
	assert.Equal(t, int64(1), stats.Frames)
	assert.Equal(t, int64(1), stats.HaltedFrames)
	for _, sys := range stats.Systems {
		if sys.Name == "HardDropSystem" {
			assert.Equal(t, int64(1), sys.ExecutionCount)
		} else {
			assert.Zero(t, sys.ExecutionCount, sys.Name)
		}
	}
}

// blockSpawn fills the spawn area without completing any row.
func blockSpawn(f *Playfield) {
	for row := 0; row < 2; row++ {
		for col := 3; col <= 6; col++ {
			f.cells[row][col] = Cell{Filled: true, Color: testGray}
		}
	}
}

func TestGameOver(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSession(t, WithLogger(log.New(&buf, "", 0)))
	blockSpawn(s.field)
	s.current = Piece{Kind: O, X: -1, Y: 10}

	s.Update(Input{HardDrop: true}, frame)

	require.True(t, s.Over())
	assert.Contains(t, buf.String(), "game over")

	before := s.View()
	s.Update(Input{HardDrop: true, Left: true}, 1.0)
	assert.Equal(t, before, s.View(), "a finished session ignores updates")
}

func TestReset(t *testing.T) {
	s := newTestSession(t)
	blockSpawn(s.field)
	s.current = Piece{Kind: O, X: -1, Y: 10}
	s.Update(Input{HardDrop: true}, frame)
	require.True(t, s.Over())

	s.Reset()

	assert.False(t, s.Over())
	assert.Zero(t, s.Score())
	assert.Zero(t, s.Lines())
	assert.Zero(t, s.field.Occupied())
	assert.Zero(t, s.Tally().TotalPieces())
	assert.Len(t, s.Preview(), DefaultLookahead)
	assert.Equal(t, SpawnPiece(s.Current().Kind), s.Current())
}

func TestView(t *testing.T) {
	s := newTestSession(t)
	s.current = SpawnPiece(O)

	v := s.View()
	assert.Equal(t, s.Current().Cells(), v.Active)
	assert.Equal(t, O, v.ActiveKind)
	assert.Equal(t, SpawnPiece(O).Shifted(0, 18).Cells(), v.Ghost)
	assert.Equal(t, s.Preview(), v.Preview)
	assert.False(t, v.Over)

	v.Preview[0] = Kind(99)
	assert.NotEqual(t, Kind(99), s.Preview()[0])
}

func TestTallyCountsLocks(t *testing.T) {
	s := newTestSession(t)

	var dropped []Kind
	for range 6 {
		dropped = append(dropped, s.Current().Kind)
		s.Update(Input{HardDrop: true}, frame)
		require.False(t, s.Over())
	}

	assert.Equal(t, 6, s.Tally().TotalPieces())
	for _, k := range Kinds {
		want := 0
		for _, d := range dropped {
			if d == k {
				want++
			}
		}
		assert.Equal(t, want, s.Tally().Pieces(k), "kind %s", k)
	}
}

func TestRun(t *testing.T) {
	s := newTestSession(t)
	ctx, cancel := context.WithCancel(context.Background())

	polls := 0
	done := make(chan error)
	go func() {
		done <- s.Run(ctx, time.Millisecond, InputFunc(func() Input {
			polls++
			return Input{}
		}))
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Run did not stop after context cancellation")
	}

	assert.Positive(t, polls)
	assert.Equal(t, int64(polls), s.SchedulerStats().Frames)
}
