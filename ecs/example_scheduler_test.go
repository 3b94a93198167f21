package ecs_test

import (
	"fmt"

	"github.com/plus3/sandfall/ecs"
)

type fallSystem struct {
	Falling ecs.Query[struct{ *Position }]
}

func (s *fallSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Falling.Values() {
		item.Position.Y++
	}
}

// ExampleScheduler registers one system and runs a few ticks.
func ExampleScheduler() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	storage := ecs.NewStorage(registry)

	id := storage.Spawn(Position{X: 2, Y: 0})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&fallSystem{})
	for range 3 {
		scheduler.Once(1.0 / 60)
	}

	fmt.Println(ecs.ReadComponent[Position](storage, id).Y)

	// Output:
	// 3
}
