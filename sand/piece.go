package sand

// Shape identifies one of the seven canonical pieces.
type Shape uint8

const (
	ShapeI Shape = iota
	ShapeO
	ShapeT
	ShapeS
	ShapeZ
	ShapeJ
	ShapeL

	shapeCount = 7
)

var shapeNames = [shapeCount]string{"I", "O", "T", "S", "Z", "J", "L"}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "?"
}

// Shapes lists every shape in declaration order.
var Shapes = [shapeCount]Shape{ShapeI, ShapeO, ShapeT, ShapeS, ShapeZ, ShapeJ, ShapeL}

var shapeMatrices = [shapeCount][][]bool{
	ShapeI: {{true, true, true, true}},
	ShapeO: {{true, true}, {true, true}},
	ShapeT: {{true, true, true}, {false, true, false}},
	ShapeS: {{false, true, true}, {true, true, false}},
	ShapeZ: {{true, true, false}, {false, true, true}},
	ShapeJ: {{true, true, true}, {false, false, true}},
	ShapeL: {{true, true, true}, {true, false, false}},
}

// ShapeMatrix returns a fresh copy of the spawn orientation of s.
func ShapeMatrix(s Shape) [][]bool {
	return cloneMatrix(shapeMatrices[s])
}

// Piece is the falling shape, positioned in block coordinates.
type Piece struct {
	Shape Shape
	Cells [][]bool
	X, Y  int
	Color RGB
}

// NewPiece spawns s horizontally centered on a field blocksWide blocks wide, at row 0.
func NewPiece(s Shape, c RGB, blocksWide int) Piece {
	cells := ShapeMatrix(s)
	return Piece{
		Shape: s,
		Cells: cells,
		X:     blocksWide/2 - len(cells[0])/2,
		Y:     0,
		Color: c,
	}
}

// Width is the matrix width in blocks.
func (p Piece) Width() int { return len(p.Cells[0]) }

// Height is the matrix height in blocks.
func (p Piece) Height() int { return len(p.Cells) }

// Blocks returns the occupied cells in block coordinates, offset by (dx, dy).
func (p Piece) Blocks(dx, dy int) []Point {
	blocks := make([]Point, 0, 4)
	for row, line := range p.Cells {
		for col, filled := range line {
			if filled {
				blocks = append(blocks, Point{X: p.X + col + dx, Y: p.Y + row + dy})
			}
		}
	}
	return blocks
}

// BlockCount returns the number of occupied cells.
func (p Piece) BlockCount() int {
	n := 0
	for _, line := range p.Cells {
		for _, filled := range line {
			if filled {
				n++
			}
		}
	}
	return n
}

// Rotated returns p turned 90° clockwise at the same anchor.
func (p Piece) Rotated() Piece {
	p.Cells = rotateMatrix(p.Cells)
	return p
}

// Clone returns a copy of p that shares no memory with it.
func (p Piece) Clone() Piece {
	p.Cells = cloneMatrix(p.Cells)
	return p
}

// rotateMatrix transposes m and reverses every row of the result.
func rotateMatrix(m [][]bool) [][]bool {
	rows, cols := len(m), len(m[0])
	out := make([][]bool, cols)
	for i := range out {
		out[i] = make([]bool, rows)
		for j := range rows {
			out[i][rows-1-j] = m[j][i]
		}
	}
	return out
}

func cloneMatrix(m [][]bool) [][]bool {
	out := make([][]bool, len(m))
	for i, row := range m {
		out[i] = append([]bool(nil), row...)
	}
	return out
}
