// Package input turns sampled key state into per-tick intents.
package input

import "github.com/plus3/sandfall/sand"

const (
	DefaultDelay = 16
	DefaultRate  = 6
)

// State is the keyboard sampled for one frame. Left, Right and Down are held keys; the
// rest are presses that happened this frame.
type State struct {
	Left, Right, Down bool

	Rotate   bool
	HardDrop bool
	Reset    bool
	Quit     bool
}

// Repeater emits lateral moves with key repeat: one move on press, the next after Delay
// frames, then one every Rate frames while a direction stays held. Holding both
// directions moves neither. Soft drop fires on every frame it is held.
type Repeater struct {
	Delay int
	Rate  int

	timer   int
	holding bool
}

// NewRepeater returns a Repeater with the default timings.
func NewRepeater() *Repeater {
	return &Repeater{Delay: DefaultDelay, Rate: DefaultRate}
}

// Update consumes one frame of key state and returns the intents for that tick.
func (r *Repeater) Update(s State) sand.Intent {
	in := sand.NoIntent

	if !s.Left && !s.Right {
		r.holding = false
		r.timer = 0
	}
	if s.Left != s.Right && r.timer <= 0 {
		if s.Left {
			in |= sand.MoveLeft
		} else {
			in |= sand.MoveRight
		}
		if r.holding {
			r.timer = r.Rate
		} else {
			r.timer = r.Delay
		}
		r.holding = true
	}
	if r.timer > 0 {
		r.timer--
	}

	if s.Down {
		in |= sand.SoftDrop
	}
	if s.Rotate {
		in |= sand.Rotate
	}
	if s.HardDrop {
		in |= sand.HardDrop
	}
	if s.Reset {
		in |= sand.Reset
	}
	if s.Quit {
		in |= sand.Quit
	}
	return in
}
