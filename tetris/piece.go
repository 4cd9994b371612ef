package tetris

import (
	"image"
	"image/color"
	"math/rand/v2"
)

// Kind identifies one of the seven tetrominoes.
type Kind uint8

const (
	I Kind = iota
	O
	T
	S
	Z
	J
	L
)

// KindCount is the number of distinct piece kinds.
const KindCount = 7

// Kinds lists every piece kind in catalog order.
var Kinds = [KindCount]Kind{I, O, T, S, Z, J, L}

func (k Kind) String() string {
	if int(k) >= KindCount {
		return "?"
	}
	return "IOTSZJL"[k : k+1]
}

// Point is a grid coordinate; X is the column and Y the row, growing downward.
type Point struct {
	X, Y int
}

// Shape is one rotation state: four cell offsets relative to the piece origin.
type Shape [4]Point

var shapes = [KindCount][4]Shape{
	I: {
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
	},
	O: {
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
	},
	T: {
		{{1, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {1, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	S: {
		{{1, 0}, {2, 0}, {0, 1}, {1, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 1}, {2, 1}, {0, 2}, {1, 2}},
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	Z: {
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		{{2, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {0, 2}},
	},
	J: {
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {1, 1}, {0, 2}, {1, 2}},
	},
	L: {
		{{2, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {0, 2}},
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	},
}

var kindColors = [KindCount]color.RGBA{
	I: {0, 255, 255, 255},
	O: {255, 255, 0, 255},
	T: {128, 0, 128, 255},
	S: {0, 255, 0, 255},
	Z: {255, 0, 0, 255},
	J: {0, 0, 255, 255},
	L: {255, 165, 0, 255},
}

// Shapes returns the four rotation states of a kind.
func Shapes(k Kind) [4]Shape {
	return shapes[k]
}

// Color returns the fixed display colour of a kind.
func (k Kind) Color() color.RGBA {
	return kindColors[k]
}

// Piece is a tetromino placed on the grid. It is a value type: movement and
// rotation produce new pieces that are validated before being committed.
type Piece struct {
	Kind     Kind
	Rotation int
	X, Y     int
}

// SpawnPiece places a kind at the spawn position: rotation 0, roughly centred, top row.
func SpawnPiece(k Kind) Piece {
	return Piece{Kind: k, X: Width/2 - 2}
}

// NewRandomPiece spawns a uniformly chosen kind.
func NewRandomPiece(rng *rand.Rand) Piece {
	return SpawnPiece(Kinds[rng.IntN(KindCount)])
}

// Shape returns the rotation state currently in effect.
func (p Piece) Shape() Shape {
	r := p.Rotation % 4
	if r < 0 {
		r += 4
	}
	return shapes[p.Kind][r]
}

// Cells returns the absolute grid cells covered by the piece.
func (p Piece) Cells() [4]Point {
	var cells [4]Point
	for i, off := range p.Shape() {
		cells[i] = Point{X: p.X + off.X, Y: p.Y + off.Y}
	}
	return cells
}

// Blocks returns the pixel rectangles covered by the piece for a given cell size.
func (p Piece) Blocks(cellSize int) [4]image.Rectangle {
	var rects [4]image.Rectangle
	for i, c := range p.Cells() {
		rects[i] = image.Rect(c.X*cellSize, c.Y*cellSize, (c.X+1)*cellSize, (c.Y+1)*cellSize)
	}
	return rects
}

// Shifted returns a copy moved by dx columns and dy rows.
func (p Piece) Shifted(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Rotated returns a copy advanced one rotation state clockwise.
func (p Piece) Rotated() Piece {
	p.Rotation = (p.Rotation + 1) % 4
	return p
}
