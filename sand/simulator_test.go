package sand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func colorCounts(g *Grid) map[RGB]int {
	counts := make(map[RGB]int)
	for grain := range g.All() {
		counts[grain.Base]++
	}
	return counts
}

func TestSandSimulator(t *testing.T) {
	t.Run("grain falls to the floor", func(t *testing.T) {
		g := NewGrid(3, 5)
		g.Place(1, 0, red, red)
		sim := NewSandSimulator(newTestRand(1))

		passes := sim.Settle(g, 100)
		assert.Equal(t, 4, passes)
		assert.True(t, g.Occupied(1, 4))
		assert.False(t, sim.Step(g))
	})

	t.Run("slides off a grain toward the free side", func(t *testing.T) {
		g := NewGrid(3, 2)
		g.Place(0, 1, red, red)
		g.Place(0, 0, blue, blue)

		assert.True(t, NewSandSimulator(newTestRand(1)).Step(g))
		assert.False(t, g.Occupied(0, 0))
		c, ok := g.ColorAt(1, 1)
		require.True(t, ok)
		assert.Equal(t, blue, c)
	})

	t.Run("a supported grain stays", func(t *testing.T) {
		g := NewGrid(3, 2)
		fillRow(g, 1, red)
		g.Place(1, 0, blue, blue)

		assert.False(t, NewSandSimulator(newTestRand(1)).Step(g))
		assert.True(t, g.Occupied(1, 0))
	})

	t.Run("conserves grains and terminates", func(t *testing.T) {
		rng := newTestRand(99)
		g := NewGrid(40, 80)
		for y := 0; y < 60; y++ {
			for x := 0; x < g.Width(); x++ {
				if rng.IntN(3) == 0 {
					c := DefaultPalette[rng.IntN(len(DefaultPalette))]
					g.Place(x, y, c, c)
				}
			}
		}
		count := g.Count()
		colors := colorCounts(g)

		sim := NewSandSimulator(rng)
		const limit = 10_000
		passes := 0
		for passes < limit && sim.Step(g) {
			passes++
			require.Equal(t, count, g.Count(), "pass %d", passes)
		}

		assert.Less(t, passes, limit)
		assert.Equal(t, colors, colorCounts(g))
		assert.False(t, sim.Step(g))

		for grain := range g.All() {
			if grain.Y < g.Height()-1 {
				assert.True(t, g.Occupied(grain.X, grain.Y+1), "grain at %d,%d floats", grain.X, grain.Y)
			}
		}
	})
}

func BenchmarkSandStep(b *testing.B) {
	rng := newTestRand(1)
	g := NewGrid(40, 80)
	for y := 0; y < 40; y++ {
		for x := 0; x < g.Width(); x++ {
			if rng.IntN(2) == 0 {
				g.Place(x, y, red, red)
			}
		}
	}
	sim := NewSandSimulator(rng)

	for b.Loop() {
		sim.Step(g.Clone())
	}
}
