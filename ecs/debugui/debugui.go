// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// Render functions live on entities as ImguiItem components and are drawn after the
// systems of a tick have run.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sandfall/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Front ends check it before treating key presses as game input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queries all ImguiItem components and defers their render functions.
// It also updates the ImguiInputState singleton with current input capture state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// RegisterComponents registers the component types used by this package.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// Install registers the ImguiSystem, creates the input state singleton and spawns the
// performance window. The registry of storage must include RegisterComponents.
func Install(storage *ecs.Storage, scheduler *ecs.Scheduler) *ecs.Singleton[ImguiInputState] {
	input := ecs.NewSingleton[ImguiInputState](storage)

	perf := NewPerformanceStats(120)
	storage.Spawn(ImguiItem{
		Render: func() {
			perf.Render(storage, scheduler)
		},
	})

	scheduler.Register(&ImguiSystem{})
	return input
}
