package sand

import "math/rand/v2"

// Particle is a cosmetic spark thrown off by a cleared grain. Positions and velocities
// are in grain units per tick. Particles live in the ECS storage and never touch the grid.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Color   RGB
	Life    int
	MaxLife int
	Size    float64
}

// newParticle launches a particle from the center of grain's cell.
func newParticle(grain Grain, cfg Config, rng *rand.Rand) Particle {
	// velocities are tuned for a block 20 units across
	unit := float64(cfg.GrainsPerBlock) / 20
	return Particle{
		X:       float64(grain.X) + 0.5,
		Y:       float64(grain.Y) + 0.5,
		VX:      (rng.Float64()*8 - 4) * unit,
		VY:      (rng.Float64()*4 - 6) * unit,
		Color:   grain.Display,
		Life:    cfg.ParticleLife,
		MaxLife: cfg.ParticleLife,
		Size:    float64(cfg.GrainsPerBlock) / 4 * (1 + rng.Float64()),
	}
}

// Update applies one ballistic step and reports whether the particle is still alive.
func (p *Particle) Update(gravity float64) bool {
	p.X += p.VX
	p.Y += p.VY
	p.VY += gravity
	p.Life--
	return p.Life > 0
}

// Alpha is the remaining life as a fraction in [0, 1].
func (p Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.MaxLife)
}
