package sand

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/plus3/sandfall/ecs"
)

// Engine runs sessions tick by tick. It is not safe for concurrent use; callers drive it
// from a single goroutine.
type Engine struct {
	cfg Config
	rng *rand.Rand
	log *slog.Logger

	registry  *ecs.ComponentRegistry
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	session   *ecs.Singleton[Session]
	input     *ecs.Singleton[TickInput]
	particles *ecs.View[struct{ *Particle }]

	extraComponents []func(*ecs.ComponentRegistry)
	quit            bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed seeds a PCG random source; equal seeds replay identically.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRand injects the random source used for bags, colors, tints, slides and particles.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithLogger sets the logger for session events. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithComponents registers additional component types, for systems added with Register.
func WithComponents(register func(*ecs.ComponentRegistry)) Option {
	return func(e *Engine) {
		e.extraComponents = append(e.extraComponents, register)
	}
}

// NewEngine validates cfg and starts the first session.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg: cfg,
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	e.registry = ecs.NewComponentRegistry()
	ecs.RegisterComponent[Particle](e.registry)
	for _, register := range e.extraComponents {
		register(e.registry)
	}
	e.storage = ecs.NewStorage(e.registry)

	e.session = ecs.NewSingleton[Session](e.storage, NewSession(cfg, e.rng))
	e.input = ecs.NewSingleton[TickInput](e.storage)
	e.particles = ecs.NewView[struct{ *Particle }](e.storage)

	e.scheduler = ecs.NewScheduler(e.storage)
	e.scheduler.Register(&InputSystem{log: e.log})
	e.scheduler.Register(&GravitySystem{log: e.log})
	e.scheduler.Register(&SandSystem{})
	e.scheduler.Register(&ClearSystem{log: e.log})
	e.scheduler.Register(&ParticleSystem{})

	e.logStart("session started")
	return e, nil
}

// MustNewEngine is NewEngine for configs known to be valid.
func MustNewEngine(cfg Config, opts ...Option) *Engine {
	e, err := NewEngine(cfg, opts...)
	if err != nil {
		panic(fmt.Sprintf("sand: %v", err))
	}
	return e
}

func (e *Engine) logStart(msg string) {
	s := e.session.Get()
	e.log.Info(msg,
		slog.String("session", s.ID.String()),
		slog.Int("width", s.Grid.Width()),
		slog.Int("height", s.Grid.Height()),
		slog.String("active", s.Active.Shape.String()),
		slog.String("next", s.Next.Shape.String()),
	)
}

// Step runs one tick with the given intents. Quit stops the engine and Reset starts a
// fresh session; both take effect between ticks and nothing else happens on that call.
// Step returns false once the engine has been told to quit.
func (e *Engine) Step(in Intent) bool {
	if e.quit {
		return false
	}
	if in.Has(Quit) {
		e.quit = true
		e.log.Info("quit", slog.String("session", e.session.Get().ID.String()))
		return false
	}
	if in.Has(Reset) {
		e.Reset()
		return true
	}

	session := e.session.Get()
	if !session.GameOver() {
		session.Tick++
	}
	e.input.Get().Intent = in
	e.scheduler.Once(1.0 / 60)
	e.input.Get().Intent = NoIntent
	return true
}

// Reset discards the current session and every particle and starts over. Entities
// spawned by other systems are left alone.
func (e *Engine) Reset() {
	var expired []ecs.EntityId
	for id := range e.particles.Iter() {
		expired = append(expired, id)
	}
	for _, id := range expired {
		e.storage.Delete(id)
	}
	e.session.Set(NewSession(e.cfg, e.rng))
	e.logStart("session reset")
}

// Session exposes the live session. Front ends must treat it as read-only; use
// Snapshot for rendering.
func (e *Engine) Session() *Session {
	return e.session.Get()
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Storage returns the ECS storage backing the engine.
func (e *Engine) Storage() *ecs.Storage {
	return e.storage
}

// Scheduler returns the engine's scheduler, mainly for its stats.
func (e *Engine) Scheduler() *ecs.Scheduler {
	return e.scheduler
}

// Register appends a system that runs after the simulation systems on every tick,
// including ticks during game over.
func (e *Engine) Register(system ecs.System) {
	e.scheduler.Register(system)
}

// Quitting reports whether Quit has been received.
func (e *Engine) Quitting() bool {
	return e.quit
}
