package sand

import (
	"log/slog"

	"github.com/plus3/sandfall/ecs"
)

// TickInput carries the intents for the tick being executed.
type TickInput struct {
	Intent Intent
}

// InputSystem applies the tick's movement intents to the active piece.
type InputSystem struct {
	Session ecs.Singleton[Session]
	Input   ecs.Singleton[TickInput]

	log *slog.Logger
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	in := s.Input.Get().Intent
	if session.GameOver() || in == NoIntent {
		return
	}

	// opposing directions cancel
	switch {
	case in.Has(MoveLeft) && !in.Has(MoveRight):
		session.Shift(-1)
	case in.Has(MoveRight) && !in.Has(MoveLeft):
		session.Shift(1)
	}
	if in.Has(Rotate) {
		session.Rotate()
	}
	if in.Has(SoftDrop) {
		session.SoftDrop()
	}
	if in.Has(HardDrop) {
		piece := session.Active
		if rows, ok := session.HardDrop(); ok {
			logLock(s.log, session, piece, rows)
		}
	}
}

// GravitySystem drops the active piece on the drop interval and locks it when grounded.
type GravitySystem struct {
	Session ecs.Singleton[Session]

	log *slog.Logger
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	piece := session.Active
	if session.Fall() {
		logLock(s.log, session, piece, 0)
	}
}

func logLock(log *slog.Logger, session *Session, piece Piece, dropped int) {
	log.Debug("piece locked",
		slog.String("shape", piece.Shape.String()),
		slog.Int("x", piece.X),
		slog.Int("y", piece.Y+dropped),
		slog.Int("grains", session.Grid.Count()),
	)
	if session.GameOver() {
		log.Info("game over",
			slog.String("session", session.ID.String()),
			slog.Uint64("tick", session.Tick),
			slog.Int("clears", session.Clear.Clears),
			slog.Int("locks", session.Locks),
		)
	}
}

// SandSystem runs one settling pass every SandEvery ticks while the session is active.
type SandSystem struct {
	Session ecs.Singleton[Session]
}

func (s *SandSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	session.Settled = false
	if session.Phase() != PhaseActive {
		return
	}

	session.SandTimer++
	if session.SandTimer < session.Config.SandEvery {
		return
	}
	session.SandTimer = 0
	session.Settled = !session.Sand.Step(session.Grid)
}

// ClearSystem detects spanning regions on a settled grid and drives running clears.
type ClearSystem struct {
	Session ecs.Singleton[Session]

	log *slog.Logger
}

func (s *ClearSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()

	switch session.Phase() {
	case PhaseClearing:
		removed, finished := session.Clear.Advance(session.Grid)
		if !finished {
			return
		}
		for _, grain := range removed {
			if session.rng.Float64() < session.Config.ParticleChance {
				frame.Commands.Spawn(newParticle(grain, session.Config, session.rng))
			}
		}
		s.log.Info("clear finished",
			slog.Int("grains", len(removed)),
			slog.Int("clears", session.Clear.Clears),
			slog.Int("drop_interval", session.Clear.DropInterval),
		)

	case PhaseActive:
		if !session.Settled {
			return
		}
		region, ok := session.Paths.Detect(session.Grid)
		if !ok {
			return
		}
		session.Clear.Begin(region)
		s.log.Info("clear started",
			slog.Int("cells", len(region.Cells)),
			slog.Any("color", region.Color),
		)
	}
}

// ParticleSystem moves particles and deletes the expired ones.
type ParticleSystem struct {
	Session   ecs.Singleton[Session]
	Particles ecs.Query[struct {
		ecs.EntityId
		*Particle
	}]
}

func (s *ParticleSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if session.GameOver() {
		return
	}
	for id, item := range s.Particles.Iter() {
		if !item.Particle.Update(session.Config.ParticleGravity) {
			frame.Commands.Delete(id)
		}
	}
}
