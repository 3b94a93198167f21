package sand

import "math/rand/v2"

// Bag deals shapes in shuffled runs of seven: every shape once per run.
type Bag struct {
	rng   *rand.Rand
	queue []Shape
}

// NewBag returns an empty bag; the first Next shuffles a fresh run.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{rng: rng}
}

// Next removes and returns the next shape, refilling when the run is exhausted.
func (b *Bag) Next() Shape {
	if len(b.queue) == 0 {
		b.queue = append(b.queue[:0], Shapes[:]...)
		b.rng.Shuffle(len(b.queue), func(i, j int) {
			b.queue[i], b.queue[j] = b.queue[j], b.queue[i]
		})
	}
	s := b.queue[0]
	b.queue = b.queue[1:]
	return s
}

// Remaining returns how many shapes are left in the current run.
func (b *Bag) Remaining() int {
	return len(b.queue)
}
