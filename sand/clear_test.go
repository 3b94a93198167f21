package sand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearCoordinator(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("removes exactly the region after the flash", func(t *testing.T) {
		g := NewGrid(8, 4)
		fillRow(g, 3, red)
		for x := 0; x < 4; x++ {
			g.Place(x, 2, blue, blue)
		}
		g.Place(7, 0, red, red)
		before := g.Count()

		region, ok := PathFinder{Tolerance: cfg.ColorTolerance}.Detect(g)
		require.True(t, ok)
		require.Len(t, region.Cells, 8)

		c := NewClearCoordinator(cfg)
		require.True(t, c.Begin(region))
		assert.Equal(t, PhaseClearing, c.Phase)
		assert.Equal(t, region.Cells[len(region.Cells)-1], c.Queue[0])
		assert.Equal(t, region.Cells[0], c.Queue[len(c.Queue)-1])

		for i := 1; i < cfg.FlashFrames; i++ {
			assert.True(t, c.Flashing())
			removed, finished := c.Advance(g)
			require.False(t, finished, "frame %d", i)
			assert.Nil(t, removed)
			assert.Equal(t, before, g.Count())
		}

		removed, finished := c.Advance(g)
		require.True(t, finished)
		assert.Len(t, removed, 8)
		assert.Equal(t, before-8, g.Count())
		for _, p := range region.Cells {
			assert.False(t, g.Occupied(p.X, p.Y))
		}
		for x := 0; x < 4; x++ {
			assert.True(t, g.Occupied(x, 2))
		}
		assert.True(t, g.Occupied(7, 0))

		assert.Equal(t, PhaseActive, c.Phase)
		assert.Empty(t, c.Queue)
		assert.Equal(t, 1, c.Clears)
		assert.Equal(t, 8, c.GrainsCleared)
	})

	t.Run("begin requires an active phase and a spanning region", func(t *testing.T) {
		c := NewClearCoordinator(cfg)
		assert.False(t, c.Begin(PathRegion{Cells: []Point{{0, 0}}}))
		assert.False(t, c.Begin(PathRegion{Spanning: true}))

		c.End()
		assert.False(t, c.Begin(PathRegion{Cells: []Point{{0, 0}}, Spanning: true}))
		assert.Equal(t, PhaseGameOver, c.Phase)

		removed, finished := c.Advance(NewGrid(2, 2))
		assert.Nil(t, removed)
		assert.False(t, finished)
	})

	t.Run("drop interval speeds up down to the floor", func(t *testing.T) {
		c := NewClearCoordinator(cfg)
		g := NewGrid(4, 1)
		expected := map[int]int{4: 30, 5: 28, 10: 26, 49: 12, 50: 10, 100: 10}

		for clears := 1; clears <= 100; clears++ {
			fillRow(g, 0, red)
			require.True(t, c.Begin(PathFinder{Tolerance: 24}.Search(g, 0, 0)))
			for {
				if _, finished := c.Advance(g); finished {
					break
				}
			}
			if want, ok := expected[clears]; ok {
				assert.Equal(t, want, c.DropInterval, "after %d clears", clears)
			}
			assert.GreaterOrEqual(t, c.DropInterval, cfg.DropFloor)
		}
		assert.Equal(t, 100, c.Clears)
	})
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "active", PhaseActive.String())
	assert.Equal(t, "clearing", PhaseClearing.String())
	assert.Equal(t, "game over", PhaseGameOver.String())
}
