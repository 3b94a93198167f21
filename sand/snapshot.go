package sand

import "github.com/google/uuid"

// GrainView is a grain as a renderer sees it.
type GrainView struct {
	X, Y  int
	Color RGB
}

// PieceView describes a piece for drawing. Blocks are absolute block coordinates.
type PieceView struct {
	Shape  Shape
	Cells  [][]bool
	Blocks []Point
	Color  RGB
}

// ParticleView is a live particle in grain units.
type ParticleView struct {
	X, Y  float64
	Size  float64
	Color RGB
	Alpha float64
}

// Snapshot is a self-contained copy of everything a front end draws. Mutating it has no
// effect on the engine.
type Snapshot struct {
	SessionID uuid.UUID
	Tick      uint64

	Width, Height int
	Scale         int
	Grains        []GrainView

	Active   PieceView
	Next     PieceView
	GhostRow int
	// Ghost holds the active piece's blocks moved down to GhostRow.
	Ghost []Point

	Phase         Phase
	GameOver      bool
	Clearing      bool
	Flashing      bool
	FlashProgress float64
	ClearQueue    []Point

	Particles []ParticleView

	Clears        int
	GrainsCleared int
	DropInterval  int
	Locks         int
}

func pieceView(p Piece) PieceView {
	return PieceView{
		Shape:  p.Shape,
		Cells:  cloneMatrix(p.Cells),
		Blocks: p.Blocks(0, 0),
		Color:  p.Color,
	}
}

// Snapshot copies the current frame.
func (e *Engine) Snapshot() Snapshot {
	s := e.session.Get()
	snap := Snapshot{
		SessionID:     s.ID,
		Tick:          s.Tick,
		Width:         s.Grid.Width(),
		Height:        s.Grid.Height(),
		Scale:         s.Config.GrainsPerBlock,
		Grains:        make([]GrainView, 0, s.Grid.Count()),
		Active:        pieceView(s.Active),
		Next:          pieceView(s.Next),
		GhostRow:      s.GhostRow(),
		Ghost:         s.Active.Blocks(0, s.GhostRow()-s.Active.Y),
		Phase:         s.Phase(),
		GameOver:      s.GameOver(),
		Clearing:      s.Phase() == PhaseClearing,
		Flashing:      s.Clear.Flashing(),
		ClearQueue:    append([]Point(nil), s.Clear.Queue...),
		Clears:        s.Clear.Clears,
		GrainsCleared: s.Clear.GrainsCleared,
		DropInterval:  s.Clear.DropInterval,
		Locks:         s.Locks,
	}
	if snap.Clearing && s.Config.FlashFrames > 0 {
		snap.FlashProgress = min(float64(s.Clear.Frames)/float64(s.Config.FlashFrames), 1)
	}

	for grain := range s.Grid.All() {
		snap.Grains = append(snap.Grains, GrainView{X: grain.X, Y: grain.Y, Color: grain.Display})
	}
	for item := range e.particles.Values() {
		p := item.Particle
		snap.Particles = append(snap.Particles, ParticleView{
			X:     p.X,
			Y:     p.Y,
			Size:  p.Size,
			Color: p.Color,
			Alpha: p.Alpha(),
		})
	}
	return snap
}

// Phase returns the current session phase.
func (e *Engine) Phase() Phase {
	return e.session.Get().Phase()
}
