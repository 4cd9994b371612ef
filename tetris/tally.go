package tetris

import "github.com/kamstrup/intmap"

// MaxLinesPerClear is the most rows a single tetromino can complete.
const MaxLinesPerClear = 4

// Tally counts locked pieces per kind and line clears per size.
type Tally struct {
	pieces *intmap.Map[Kind, int]
	clears *intmap.Map[int, int]
}

func newTally() *Tally {
	return &Tally{
		pieces: intmap.New[Kind, int](KindCount),
		clears: intmap.New[int, int](MaxLinesPerClear),
	}
}

func (t *Tally) record(k Kind, lines int) {
	n, _ := t.pieces.Get(k)
	t.pieces.Put(k, n+1)

	if lines > 0 {
		c, _ := t.clears.Get(lines)
		t.clears.Put(lines, c+1)
	}
}

// Pieces returns how many pieces of a kind have locked.
func (t *Tally) Pieces(k Kind) int {
	n, _ := t.pieces.Get(k)
	return n
}

// TotalPieces returns how many pieces have locked.
func (t *Tally) TotalPieces() int {
	total := 0
	for _, k := range Kinds {
		total += t.Pieces(k)
	}
	return total
}

// Clears returns how many locks cleared exactly lines rows at once.
func (t *Tally) Clears(lines int) int {
	n, _ := t.clears.Get(lines)
	return n
}

func (t *Tally) reset() {
	t.pieces.Clear()
	t.clears.Clear()
}
