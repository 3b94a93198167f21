package main

import (
	"math/rand/v2"

	"github.com/plus3/sandfall/sand"
)

// bot plays by picking a target column for each piece, steering toward it with some
// random rotation, and hard dropping once it is there.
type bot struct {
	rng    *rand.Rand
	locks  int
	target int
}

func newBot(seed uint64) *bot {
	return &bot{rng: rand.New(rand.NewPCG(seed, ^seed)), locks: -1}
}

func (b *bot) next(snap sand.Snapshot) sand.Intent {
	if snap.GameOver || snap.Clearing {
		return sand.NoIntent
	}

	blocksWide := snap.Width / snap.Scale
	if snap.Locks != b.locks {
		b.locks = snap.Locks
		b.target = b.rng.IntN(blocksWide)
	}

	left := blocksWide
	for _, p := range snap.Active.Blocks {
		left = min(left, p.X)
	}

	switch {
	case b.rng.IntN(20) == 0:
		return sand.Rotate
	case left > b.target:
		return sand.MoveLeft
	case left < b.target && b.rng.IntN(2) == 0:
		return sand.MoveRight
	case b.rng.IntN(8) == 0:
		return sand.HardDrop
	}
	return sand.NoIntent
}
