package sand

// Phase is the top-level state of a session.
type Phase uint8

const (
	// PhaseActive: pieces fall, grains settle, clears are detected.
	PhaseActive Phase = iota
	// PhaseClearing: a spanning region is flashing and will be removed.
	PhaseClearing
	// PhaseGameOver is terminal until the session is reset.
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseClearing:
		return "clearing"
	case PhaseGameOver:
		return "game over"
	}
	return "unknown"
}

// ClearCoordinator owns the clear state machine and the fall speed it feeds back.
type ClearCoordinator struct {
	Phase Phase
	// Queue holds the cells to remove, last-discovered first.
	Queue []Point
	// Frames counts ticks spent in the current clear.
	Frames int

	Clears        int
	GrainsCleared int
	DropInterval  int

	flashFrames  int
	dropFloor    int
	speedupEvery int
	speedupStep  int
}

// NewClearCoordinator starts in PhaseActive at the configured drop interval.
func NewClearCoordinator(cfg Config) ClearCoordinator {
	return ClearCoordinator{
		Phase:        PhaseActive,
		DropInterval: cfg.DropInterval,
		flashFrames:  cfg.FlashFrames,
		dropFloor:    cfg.DropFloor,
		speedupEvery: cfg.SpeedupEvery,
		speedupStep:  cfg.SpeedupStep,
	}
}

// Begin queues region for removal and enters PhaseClearing. The queue is the BFS order
// reversed so the sweep runs from the far wall back to the seed. It returns false and
// does nothing unless the coordinator is active and region spans the field.
func (c *ClearCoordinator) Begin(region PathRegion) bool {
	if c.Phase != PhaseActive || !region.Spanning || len(region.Cells) == 0 {
		return false
	}
	c.Queue = make([]Point, len(region.Cells))
	for i, p := range region.Cells {
		c.Queue[len(region.Cells)-1-i] = p
	}
	c.Frames = 0
	c.Phase = PhaseClearing
	return true
}

// Flashing reports whether a clear is in its telegraph phase.
func (c *ClearCoordinator) Flashing() bool {
	return c.Phase == PhaseClearing && c.Frames < c.flashFrames
}

// Advance moves a clear forward by one tick. Once the flash has lasted flashFrames ticks
// every queued cell is removed from g in one go; the removed grains are returned and the
// coordinator goes back to PhaseActive. Outside PhaseClearing it does nothing.
func (c *ClearCoordinator) Advance(g *Grid) (removed []Grain, finished bool) {
	if c.Phase != PhaseClearing {
		return nil, false
	}

	c.Frames++
	if c.Frames < c.flashFrames {
		return nil, false
	}

	removed = make([]Grain, 0, len(c.Queue))
	for _, p := range c.Queue {
		if grain, ok := g.Remove(p.X, p.Y); ok {
			removed = append(removed, grain)
		}
	}

	c.Queue = nil
	c.Frames = 0
	c.Phase = PhaseActive
	c.GrainsCleared += len(removed)
	c.Clears++
	if c.speedupEvery > 0 && c.Clears%c.speedupEvery == 0 {
		c.DropInterval = max(c.DropInterval-c.speedupStep, c.dropFloor)
	}

	return removed, true
}

// End enters the terminal phase and drops any pending clear.
func (c *ClearCoordinator) End() {
	c.Phase = PhaseGameOver
	c.Queue = nil
	c.Frames = 0
}
