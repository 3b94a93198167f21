package sand

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	red  = RGB{200, 0, 0}
	blue = RGB{0, 0, 200}
)

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	s := NewSession(cfg, newTestRand(7))
	return &s
}

// fillRow places grains of c across row y.
func fillRow(g *Grid, y int, c RGB) {
	for x := 0; x < g.Width(); x++ {
		g.Place(x, y, c, c)
	}
}

// fillStripes fills g with one-column stripes that alternate between red and blue, so no
// region reaches the right wall.
func fillStripes(g *Grid) {
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := red
			if x%2 == 1 {
				c = blue
			}
			g.Place(x, y, c, c)
		}
	}
}

func pieceFromRows(shape Shape, rows ...string) Piece {
	cells := make([][]bool, len(rows))
	for i, row := range rows {
		cells[i] = make([]bool, len(row))
		for j, ch := range row {
			cells[i][j] = ch == '#'
		}
	}
	return Piece{Shape: shape, Cells: cells, Color: red}
}
