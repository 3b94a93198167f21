package ecs

// UpdateFrame is handed to every system during a single Scheduler.Once call.
type UpdateFrame struct {
	// Tick counts Once calls on the owning scheduler, starting at 1.
	Tick      uint64
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(tick uint64, dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		Tick:      tick,
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
