package tetris

import "image/color"

const (
	Width  = 10
	Height = 20
)

// Cell is one square of the playfield. The zero value is empty.
type Cell struct {
	Filled bool
	Color  color.RGBA
}

// Grid is the fixed-size cell matrix, indexed [row][column].
type Grid [Height][Width]Cell

// Playfield holds the cells of every locked piece.
type Playfield struct {
	cells Grid
}

// NewPlayfield creates an empty playfield.
func NewPlayfield() *Playfield {
	return &Playfield{}
}

// Cell returns the cell at the given column and row. ok is false outside the grid.
func (f *Playfield) Cell(col, row int) (cell Cell, ok bool) {
	if !inBounds(col, row) {
		return Cell{}, false
	}
	return f.cells[row][col], true
}

// Cells returns a copy of the grid.
func (f *Playfield) Cells() Grid {
	return f.cells
}

// CanPlace reports whether every cell of p lies inside the grid on an empty square.
func (f *Playfield) CanPlace(p Piece) bool {
	for _, c := range p.Cells() {
		if !inBounds(c.X, c.Y) {
			return false
		}
		if f.cells[c.Y][c.X].Filled {
			return false
		}
	}
	return true
}

// Lock writes the cells of p into the grid. Cells outside the grid are ignored.
func (f *Playfield) Lock(p Piece, c color.RGBA) {
	for _, pt := range p.Cells() {
		if inBounds(pt.X, pt.Y) {
			f.cells[pt.Y][pt.X] = Cell{Filled: true, Color: c}
		}
	}
}

// RowFull reports whether every cell of a row is filled.
func (f *Playfield) RowFull(row int) bool {
	if row < 0 || row >= Height {
		return false
	}
	for _, cell := range f.cells[row] {
		if !cell.Filled {
			return false
		}
	}
	return true
}

// ClearFullLines removes every full row and lets the rows above fall into the gap.
// Fullness is judged on the grid as it was before the call. Returns the number of
// rows removed.
func (f *Playfield) ClearFullLines() int {
	var next Grid
	write := Height - 1
	cleared := 0

	for read := Height - 1; read >= 0; read-- {
		if f.RowFull(read) {
			cleared++
			continue
		}
		next[write] = f.cells[read]
		write--
	}

	if cleared > 0 {
		f.cells = next
	}
	return cleared
}

// DropDistance returns how many rows p can fall before it would collide.
// A piece that does not fit where it is cannot fall at all.
func (f *Playfield) DropDistance(p Piece) int {
	if !f.CanPlace(p) {
		return 0
	}
	n := 0
	for f.CanPlace(p.Shifted(0, n+1)) {
		n++
	}
	return n
}

// Occupied counts filled cells.
func (f *Playfield) Occupied() int {
	n := 0
	for row := range f.cells {
		for _, cell := range f.cells[row] {
			if cell.Filled {
				n++
			}
		}
	}
	return n
}

// Reset empties the grid.
func (f *Playfield) Reset() {
	f.cells = Grid{}
}

func inBounds(col, row int) bool {
	return col >= 0 && col < Width && row >= 0 && row < Height
}
