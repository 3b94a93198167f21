package sand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollisionOracle(t *testing.T) {
	g := NewGrid(40, 80)
	oracle := CollisionOracle{Grid: g, Scale: 4}
	assert.Equal(t, 10, oracle.BlocksWide())
	assert.Equal(t, 20, oracle.BlocksHigh())

	o := NewPiece(ShapeO, red, 10)

	t.Run("walls and floor", func(t *testing.T) {
		assert.False(t, oracle.Test(o, 0, 0))
		assert.True(t, oracle.Test(o, -5, 0))
		assert.False(t, oracle.Test(o, -4, 0))
		assert.True(t, oracle.Test(o, 5, 0))
		assert.False(t, oracle.Test(o, 4, 0))
		assert.False(t, oracle.Test(o, 0, 18))
		assert.True(t, oracle.Test(o, 0, 19))
	})

	t.Run("above the top is free", func(t *testing.T) {
		assert.False(t, oracle.Test(o, 0, -3))
	})

	t.Run("a single grain blocks its whole block", func(t *testing.T) {
		g.Place(4*4+3, 10*4+3, red, red)
		defer g.Remove(4*4+3, 10*4+3)

		assert.True(t, oracle.Test(o, 0, 9))
		assert.True(t, oracle.Test(o, 0, 10))
		assert.False(t, oracle.Test(o, 0, 8))
		assert.False(t, oracle.Test(o, 2, 9))
		assert.Equal(t, 8, oracle.GhostRow(o))
	})

	t.Run("ghost row on an empty field", func(t *testing.T) {
		assert.Equal(t, 18, oracle.GhostRow(o))
		i := NewPiece(ShapeI, red, 10)
		assert.Equal(t, 19, oracle.GhostRow(i))
	})
}

func TestGhostRowIsPure(t *testing.T) {
	s := newTestSession(t)
	s.Grid.Place(20, 79, red, red)
	grid := s.Grid.Clone()
	active := s.Active.Clone()

	first := s.GhostRow()
	assert.Equal(t, first, s.GhostRow())
	assert.Equal(t, active, s.Active)
	assert.Equal(t, grid, s.Grid)
}
