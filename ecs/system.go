package ecs

// System is one step of a tick. Systems run in the order they were registered with a
// Scheduler, so ordering between systems is part of the program's semantics.
// Query and Singleton fields on a system struct are wired automatically on Register;
// any other fields persist between ticks.
type System interface {
	Execute(frame *UpdateFrame)
}
