package sand

import (
	"fmt"
	"iter"
)

// Point is a cell coordinate, in grains unless stated otherwise.
type Point struct {
	X, Y int
}

// Grain is one simulated cell of sand. Base drives every connectivity decision;
// Display is cosmetic and fixed at creation.
type Grain struct {
	X, Y    int
	Base    RGB
	Display RGB
}

// Cell is either empty or holds exactly one grain by value.
type Cell struct {
	grain    Grain
	occupied bool
}

// Grain returns the cell's grain and whether there is one.
func (c Cell) Grain() (Grain, bool) {
	return c.grain, c.occupied
}

// Grid is dense row-major grain storage. Out-of-range access is a programming error
// and panics.
type Grid struct {
	width  int
	height int
	cells  []Cell
	count  int
}

// NewGrid creates an empty width×height grid.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("sand: invalid grid size %dx%d", width, height))
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Count returns the number of occupied cells.
func (g *Grid) Count() int { return g.count }

// InBounds reports whether (x, y) is a valid cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("sand: cell (%d,%d) outside %dx%d grid", x, y, g.width, g.height))
	}
	return y*g.width + x
}

// Occupied reports whether (x, y) holds a grain.
func (g *Grid) Occupied(x, y int) bool {
	return g.cells[g.index(x, y)].occupied
}

// At returns the grain at (x, y).
func (g *Grid) At(x, y int) (Grain, bool) {
	return g.cells[g.index(x, y)].Grain()
}

// ColorAt returns the base color of the grain at (x, y).
func (g *Grid) ColorAt(x, y int) (RGB, bool) {
	c := g.cells[g.index(x, y)]
	return c.grain.Base, c.occupied
}

// Place stores a grain at (x, y) and returns it. The cell must be empty.
func (g *Grid) Place(x, y int, base, display RGB) Grain {
	i := g.index(x, y)
	if g.cells[i].occupied {
		panic(fmt.Sprintf("sand: cell (%d,%d) already occupied", x, y))
	}
	grain := Grain{X: x, Y: y, Base: base, Display: display}
	g.cells[i] = Cell{grain: grain, occupied: true}
	g.count++
	return grain
}

// Remove empties (x, y) and returns the grain that was there, if any.
func (g *Grid) Remove(x, y int) (Grain, bool) {
	i := g.index(x, y)
	c := g.cells[i]
	if !c.occupied {
		return Grain{}, false
	}
	g.cells[i] = Cell{}
	g.count--
	return c.grain, true
}

// Move relocates the grain at from into the empty cell to, updating the grain's
// stored coordinates.
func (g *Grid) Move(from, to Point) {
	src, dst := g.index(from.X, from.Y), g.index(to.X, to.Y)
	if !g.cells[src].occupied {
		panic(fmt.Sprintf("sand: move from empty cell (%d,%d)", from.X, from.Y))
	}
	if g.cells[dst].occupied {
		panic(fmt.Sprintf("sand: move into occupied cell (%d,%d)", to.X, to.Y))
	}
	grain := g.cells[src].grain
	grain.X, grain.Y = to.X, to.Y
	g.cells[dst] = Cell{grain: grain, occupied: true}
	g.cells[src] = Cell{}
}

// All yields every grain in row-major order.
func (g *Grid) All() iter.Seq[Grain] {
	return func(yield func(Grain) bool) {
		for _, c := range g.cells {
			if !c.occupied {
				continue
			}
			if !yield(c.grain) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	out := *g
	out.cells = make([]Cell, len(g.cells))
	copy(out.cells, g.cells)
	return &out
}
