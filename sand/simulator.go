package sand

import "math/rand/v2"

// SandSimulator advances grains one gravity step per Step call.
type SandSimulator struct {
	rng *rand.Rand
}

// NewSandSimulator returns a simulator drawing diagonal tie-breaks from rng.
func NewSandSimulator(rng *rand.Rand) *SandSimulator {
	return &SandSimulator{rng: rng}
}

// Step makes one pass over g, bottom row first and left to right within a row. Each
// grain falls straight down if it can, otherwise slides diagonally down, picking a side
// at random when both are free. Grains that land in an already visited row are not
// moved again in the same pass. Step reports whether any grain moved.
func (s *SandSimulator) Step(g *Grid) bool {
	moved := false
	w, h := g.Width(), g.Height()

	for y := h - 2; y >= 0; y-- {
		below := y + 1
		for x := 0; x < w; x++ {
			if !g.Occupied(x, y) {
				continue
			}

			if !g.Occupied(x, below) {
				g.Move(Point{x, y}, Point{x, below})
				moved = true
				continue
			}

			canLeft := x > 0 && !g.Occupied(x-1, below)
			canRight := x < w-1 && !g.Occupied(x+1, below)

			var dx int
			switch {
			case canLeft && canRight:
				dx = 1
				if s.rng.IntN(2) == 0 {
					dx = -1
				}
			case canLeft:
				dx = -1
			case canRight:
				dx = 1
			default:
				continue
			}

			g.Move(Point{x, y}, Point{x + dx, below})
			moved = true
		}
	}

	return moved
}

// Settle steps g until a pass moves nothing or maxPasses is reached and returns the
// number of passes that moved grains.
func (s *SandSimulator) Settle(g *Grid, maxPasses int) int {
	passes := 0
	for passes < maxPasses && s.Step(g) {
		passes++
	}
	return passes
}
