package sand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRotateAtRightEdge(t *testing.T) {
	tests := []struct {
		name    string
		piece   Piece
		rotates bool
		x       int
	}{
		{"vertical I against the wall has no room", pieceFromRows(ShapeI, "#", "#", "#", "#"), false, 9},
		{"first kick resolves", NewPiece(ShapeT, red, 10).Rotated(), true, 7},
		{"needs two columns", pieceFromRows(ShapeI, "#", "#", "#", "#"), true, 6},
	}
	starts := []int{9, 8, 8}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			tt.piece.X, tt.piece.Y = starts[i], 2
			s.Active = tt.piece
			before := tt.piece.Clone()

			assert.Equal(t, tt.rotates, s.Rotate())
			assert.Equal(t, tt.x, s.Active.X)
			assert.Equal(t, 2, s.Active.Y)
			if tt.rotates {
				assert.Equal(t, before.Rotated().Cells, s.Active.Cells)
			} else {
				assert.Equal(t, before, s.Active)
			}
		})
	}
}

func TestSessionRotateInOpenField(t *testing.T) {
	s := newTestSession(t)
	s.Active = NewPiece(ShapeL, red, 10)
	s.Active.Y = 5
	x := s.Active.X

	require.True(t, s.Rotate())
	assert.Equal(t, x, s.Active.X)
}

func TestSessionShift(t *testing.T) {
	s := newTestSession(t)
	s.Active = NewPiece(ShapeO, red, 10)

	for s.Shift(-1) {
	}
	assert.Equal(t, 0, s.Active.X)

	for s.Shift(1) {
	}
	assert.Equal(t, 8, s.Active.X)
}

func TestSessionLock(t *testing.T) {
	t.Run("expands every block into K×K grains", func(t *testing.T) {
		s := newTestSession(t)
		piece := s.Active
		next := s.Next
		k := s.Config.GrainsPerBlock

		rows, ok := s.HardDrop()
		require.True(t, ok)
		assert.Equal(t, s.Config.BlocksHigh-piece.Height(), rows)

		assert.Equal(t, piece.BlockCount()*k*k, s.Grid.Count())
		for grain := range s.Grid.All() {
			assert.Equal(t, piece.Color, grain.Base)
		}
		for _, b := range piece.Blocks(0, rows) {
			for y := b.Y * k; y < (b.Y+1)*k; y++ {
				for x := b.X * k; x < (b.X+1)*k; x++ {
					assert.True(t, s.Grid.Occupied(x, y))
				}
			}
		}

		assert.Equal(t, 1, s.Locks)
		assert.Equal(t, next, s.Active)
		assert.Equal(t, PhaseActive, s.Phase())
	})

	t.Run("a block above the field ends the game", func(t *testing.T) {
		s := newTestSession(t)
		s.Active = NewPiece(ShapeO, red, 10)
		s.Active.Y = -1

		s.Lock()
		assert.True(t, s.GameOver())
		assert.Equal(t, 0, s.Grid.Count())
		assert.Equal(t, 0, s.Locks)
	})

	t.Run("a blocked spawn ends the game", func(t *testing.T) {
		s := newTestSession(t)
		fillStripes(s.Grid)
		before := s.Grid.Count()

		_, ok := s.HardDrop()
		require.True(t, ok)
		assert.True(t, s.GameOver())
		assert.Equal(t, before, s.Grid.Count())

		assert.False(t, s.Shift(-1))
		assert.False(t, s.Rotate())
		assert.False(t, s.SoftDrop())
		_, ok = s.HardDrop()
		assert.False(t, ok)
		assert.False(t, s.Fall())
	})
}

func TestSessionFall(t *testing.T) {
	s := newTestSession(t)
	interval := s.Clear.DropInterval

	for range interval - 1 {
		assert.False(t, s.Fall())
	}
	assert.Equal(t, 0, s.Active.Y)
	assert.False(t, s.Fall())
	assert.Equal(t, 1, s.Active.Y)

	require.True(t, s.SoftDrop())
	assert.Equal(t, 2, s.Active.Y)
	assert.Equal(t, 0, s.DropTimer)

	s.Active.Y = s.GhostRow()
	assert.False(t, s.SoftDrop())
	for range interval - 1 {
		s.Fall()
	}
	assert.True(t, s.Fall())
	assert.Equal(t, 1, s.Locks)
}

func TestSessionFrozenWhileClearing(t *testing.T) {
	s := newTestSession(t)
	s.Clear.Phase = PhaseClearing
	s.Active = NewPiece(ShapeO, red, 10)

	assert.False(t, s.SoftDrop())
	_, ok := s.HardDrop()
	assert.False(t, ok)
	for range 100 {
		assert.False(t, s.Fall())
	}
	assert.Equal(t, 0, s.Active.Y)

	assert.True(t, s.Shift(1))
	assert.True(t, s.Rotate())
}

func TestNewSessionIsDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	a := NewSession(cfg, newTestRand(21))
	b := NewSession(cfg, newTestRand(21))
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, a.Active, b.Active)
	assert.Equal(t, a.Next, b.Next)

	c := NewSession(cfg, newTestRand(22))
	assert.NotEqual(t, a.ID, c.ID)
}
