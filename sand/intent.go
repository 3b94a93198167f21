package sand

import "strings"

// Intent is a set of discrete player actions for one tick.
type Intent uint8

const (
	MoveLeft Intent = 1 << iota
	MoveRight
	SoftDrop
	Rotate
	HardDrop
	Reset
	Quit

	NoIntent Intent = 0
)

var intentNames = []struct {
	bit  Intent
	name string
}{
	{MoveLeft, "left"},
	{MoveRight, "right"},
	{SoftDrop, "soft-drop"},
	{Rotate, "rotate"},
	{HardDrop, "hard-drop"},
	{Reset, "reset"},
	{Quit, "quit"},
}

// Has reports whether every bit of other is set.
func (i Intent) Has(other Intent) bool {
	return other != 0 && i&other == other
}

func (i Intent) String() string {
	if i == NoIntent {
		return "none"
	}
	var parts []string
	for _, n := range intentNames {
		if i.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
