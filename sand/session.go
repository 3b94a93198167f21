package sand

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

// wallKicks are the column offsets tried, in order, when a rotation collides.
var wallKicks = [4]int{-1, 1, -2, 2}

// Session is the whole state of one game: every component reads and writes it through
// the ECS singleton owned by the Engine. A reset replaces it wholesale.
type Session struct {
	ID     uuid.UUID
	Config Config

	Grid   *Grid
	Active Piece
	Next   Piece
	Bag    *Bag
	Clear  ClearCoordinator

	Oracle CollisionOracle
	Sand   *SandSimulator
	Paths  PathFinder

	DropTimer int
	SandTimer int
	// Settled is true only on a tick whose sand pass moved nothing.
	Settled bool

	Tick  uint64
	Locks int

	rng *rand.Rand
}

// NewSession builds a fresh session: empty grid, new bag, active and next pieces drawn.
// cfg must be valid.
func NewSession(cfg Config, rng *rand.Rand) Session {
	grid := NewGrid(cfg.GrainWidth(), cfg.GrainHeight())
	s := Session{
		ID:     newSessionID(rng),
		Config: cfg,
		Grid:   grid,
		Bag:    NewBag(rng),
		Clear:  NewClearCoordinator(cfg),
		Oracle: CollisionOracle{Grid: grid, Scale: cfg.GrainsPerBlock},
		Sand:   NewSandSimulator(rng),
		Paths:  PathFinder{Tolerance: cfg.ColorTolerance},
		rng:    rng,
	}
	s.Active = s.draw()
	s.Next = s.draw()
	return s
}

type rngReader struct {
	rng *rand.Rand
}

func (r rngReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Uint32())
	}
	return len(p), nil
}

func newSessionID(rng *rand.Rand) uuid.UUID {
	id, err := uuid.NewRandomFromReader(rngReader{rng})
	if err != nil {
		return uuid.Nil
	}
	return id
}

// Phase returns the clear coordinator's phase.
func (s *Session) Phase() Phase {
	return s.Clear.Phase
}

// GameOver reports whether the session has ended.
func (s *Session) GameOver() bool {
	return s.Clear.Phase == PhaseGameOver
}

func (s *Session) draw() Piece {
	shape := s.Bag.Next()
	color := s.Config.Palette[s.rng.IntN(len(s.Config.Palette))]
	return NewPiece(shape, color, s.Config.BlocksWide)
}

// Shift moves the active piece dx columns if nothing blocks it.
func (s *Session) Shift(dx int) bool {
	if s.GameOver() || s.Oracle.Test(s.Active, dx, 0) {
		return false
	}
	s.Active.X += dx
	return true
}

// Rotate turns the active piece clockwise, trying the wall kicks in order when the
// rotated shape collides. If no kick fits the piece is left untouched.
func (s *Session) Rotate() bool {
	if s.GameOver() {
		return false
	}
	rotated := s.Active.Rotated()
	if !s.Oracle.Test(rotated, 0, 0) {
		s.Active = rotated
		return true
	}
	for _, dx := range wallKicks {
		if !s.Oracle.Test(rotated, dx, 0) {
			rotated.X += dx
			s.Active = rotated
			return true
		}
	}
	return false
}

// SoftDrop moves the active piece down one row and restarts the drop timer. A blocked
// soft drop does not lock.
func (s *Session) SoftDrop() bool {
	if s.Phase() != PhaseActive || s.Oracle.Test(s.Active, 0, 1) {
		return false
	}
	s.Active.Y++
	s.DropTimer = 0
	return true
}

// HardDrop drops the active piece to its landing row and locks it. It returns the number
// of rows dropped.
func (s *Session) HardDrop() (int, bool) {
	if s.Phase() != PhaseActive {
		return 0, false
	}
	rows := s.GhostRow() - s.Active.Y
	s.Active.Y += rows
	s.DropTimer = 0
	s.Lock()
	return rows, true
}

// Fall advances the drop timer and, when it expires, moves the active piece down one
// row or locks it if it cannot move. It reports whether the piece locked.
func (s *Session) Fall() bool {
	if s.Phase() != PhaseActive {
		return false
	}
	s.DropTimer++
	if s.DropTimer < s.Clear.DropInterval {
		return false
	}
	s.DropTimer = 0
	if !s.Oracle.Test(s.Active, 0, 1) {
		s.Active.Y++
		return false
	}
	s.Lock()
	return true
}

// GhostRow is the row the active piece would land on.
func (s *Session) GhostRow() int {
	return s.Oracle.GhostRow(s.Active)
}

// Lock turns the active piece into grains and promotes the next piece. A piece with any
// block above the field ends the session instead, as does a promoted piece that
// collides where it spawns. Footprint cells already taken by a grain are left as they
// are.
func (s *Session) Lock() {
	blocks := s.Active.Blocks(0, 0)
	for _, b := range blocks {
		if b.Y < 0 {
			s.Clear.End()
			return
		}
	}

	k := s.Config.GrainsPerBlock
	for _, b := range blocks {
		for y := b.Y * k; y < (b.Y+1)*k; y++ {
			for x := b.X * k; x < (b.X+1)*k; x++ {
				if s.Grid.Occupied(x, y) {
					continue
				}
				s.Grid.Place(x, y, s.Active.Color, tint(s.Active.Color, s.Config.TintJitter, s.rng))
			}
		}
	}
	s.Locks++

	s.Active = s.Next
	s.Next = s.draw()
	if s.Oracle.Test(s.Active, 0, 0) {
		s.Clear.End()
	}
}
