package input_test

import (
	"testing"

	"github.com/plus3/sandfall/input"
	"github.com/plus3/sandfall/sand"
	"github.com/stretchr/testify/assert"
)

// firing returns the 1-based frames on which held produced a lateral move.
func firing(r *input.Repeater, held input.State, frames int) []int {
	var out []int
	for frame := 1; frame <= frames; frame++ {
		in := r.Update(held)
		if in.Has(sand.MoveLeft) || in.Has(sand.MoveRight) {
			out = append(out, frame)
		}
	}
	return out
}

func TestRepeater(t *testing.T) {
	t.Run("press then delay then rate", func(t *testing.T) {
		r := input.NewRepeater()
		assert.Equal(t, []int{1, 17, 23, 29, 35}, firing(r, input.State{Left: true}, 40))
	})

	t.Run("release restarts the delay", func(t *testing.T) {
		r := input.NewRepeater()
		assert.Equal(t, []int{1}, firing(r, input.State{Right: true}, 10))
		r.Update(input.State{})
		assert.Equal(t, []int{1, 17}, firing(r, input.State{Right: true}, 20))
	})

	t.Run("direction follows the held key", func(t *testing.T) {
		r := input.NewRepeater()
		assert.Equal(t, sand.MoveLeft, r.Update(input.State{Left: true}))
		r = input.NewRepeater()
		assert.Equal(t, sand.MoveRight, r.Update(input.State{Right: true}))
	})

	t.Run("both directions cancel", func(t *testing.T) {
		r := input.NewRepeater()
		assert.Empty(t, firing(r, input.State{Left: true, Right: true}, 40))
	})

	t.Run("custom timing", func(t *testing.T) {
		r := &input.Repeater{Delay: 3, Rate: 1}
		assert.Equal(t, []int{1, 4, 5, 6}, firing(r, input.State{Left: true}, 6))
	})

	t.Run("presses pass straight through", func(t *testing.T) {
		r := input.NewRepeater()
		in := r.Update(input.State{Down: true, Rotate: true, HardDrop: true})
		assert.Equal(t, sand.SoftDrop|sand.Rotate|sand.HardDrop, in)
		assert.Equal(t, sand.SoftDrop, r.Update(input.State{Down: true}))
		assert.Equal(t, sand.Reset|sand.Quit, r.Update(input.State{Reset: true, Quit: true}))
		assert.Equal(t, sand.NoIntent, r.Update(input.State{}))
	})
}
