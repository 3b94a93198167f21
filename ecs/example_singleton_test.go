package ecs_test

import (
	"fmt"

	"github.com/plus3/sandfall/ecs"
)

type GameConfig struct {
	Width  int
	Height int
}

type GameScore struct {
	Clears int
}

// ExampleNewSingleton demonstrates creating and accessing singleton components.
func ExampleNewSingleton() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	config := ecs.NewSingleton[GameConfig](storage, GameConfig{Width: 40, Height: 80})
	fmt.Printf("Config: %dx%d\n", config.Get().Width, config.Get().Height)

	config.Get().Height = 60

	same := ecs.NewSingleton[GameConfig](storage)
	fmt.Printf("Same config: %dx%d\n", same.Get().Width, same.Get().Height)

	// Output:
	// Config: 40x80
	// Same config: 40x60
}

// ExampleSingleton_Set shows that replacing a singleton is visible through every accessor.
func ExampleSingleton_Set() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	first := ecs.NewSingleton[GameScore](storage, GameScore{Clears: 4})
	second := ecs.NewSingleton[GameScore](storage)

	first.Set(GameScore{})
	fmt.Println("after reset:", second.Get().Clears)

	// Output:
	// after reset: 0
}
