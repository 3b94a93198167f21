package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/sandfall/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Values() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type orderRecorder struct {
	Label string
	Log   *[]string
}

func (s *orderRecorder) Execute(frame *ecs.UpdateFrame) {
	*s.Log = append(*s.Log, s.Label)
}

type spawnOnceSystem struct {
	done bool
}

func (s *spawnOnceSystem) Execute(frame *ecs.UpdateFrame) {
	if s.done {
		return
	}
	s.done = true
	frame.Commands.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 1, DY: 1})
}

type counterSystem struct {
	Counter ecs.Singleton[Score]
}

func (s *counterSystem) Execute(frame *ecs.UpdateFrame) {
	*s.Counter.Get() += Score(frame.Tick)
}

func TestScheduler(t *testing.T) {
	t.Run("systems run in registration order", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)

		var log []string
		for _, label := range []string{"input", "gravity", "sand", "clear"} {
			scheduler.Register(&orderRecorder{Label: label, Log: &log})
		}

		scheduler.Once(1.0 / 60)
		scheduler.Once(1.0 / 60)

		assert.Equal(t, []string{"input", "gravity", "sand", "clear", "input", "gravity", "sand", "clear"}, log)
		assert.Equal(t, uint64(2), scheduler.Ticks())
	})

	t.Run("queries are executed before each system", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)

		storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 10, DY: 20})

		movement := &MovementSystem{}
		scheduler.Register(movement)
		scheduler.Once(0.5)

		assert.Equal(t, 1, movement.ExecuteCount)
		for item := range movement.Entities.Values() {
			assert.Equal(t, float32(5), item.Position.X)
			assert.Equal(t, float32(10), item.Position.Y)
		}
	})

	t.Run("commands are flushed after the tick", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)

		movement := &MovementSystem{}
		scheduler.Register(&spawnOnceSystem{})
		scheduler.Register(movement)

		scheduler.Once(1.0)
		assert.Equal(t, 0, movement.Entities.Len())

		scheduler.Once(1.0)
		assert.Equal(t, 1, movement.Entities.Len())
	})

	t.Run("singleton fields are wired", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		ecs.NewSingleton[Score](storage, 0)

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&counterSystem{})
		scheduler.Once(0)
		scheduler.Once(0)
		scheduler.Once(0)

		assert.Equal(t, Score(6), *ecs.NewSingleton[Score](storage).Get())
	})

	t.Run("stats", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&MovementSystem{})
		scheduler.Register(&spawnOnceSystem{})

		for range 5 {
			scheduler.Once(0)
		}

		stats := scheduler.GetStats()
		require.Equal(t, 2, stats.SystemCount)
		assert.Equal(t, int64(10), stats.TotalExecutions)
		assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
		assert.Equal(t, "spawnOnceSystem", stats.Systems[1].Name)
		assert.Equal(t, int64(5), stats.Systems[0].ExecutionCount)
		assert.LessOrEqual(t, stats.Systems[0].MinDuration, stats.Systems[0].MaxDuration)
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)

		movement := &MovementSystem{}
		scheduler.Register(movement)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			scheduler.Run(ctx, time.Millisecond)
			close(done)
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		assert.NotZero(t, movement.ExecuteCount)
	})
}
