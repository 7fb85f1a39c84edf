package scheduler

import "github.com/lixenwraith/driftwood/ecs"

// Command is a deferred closure with full world access, the escape hatch
// described in spec §4.9: a system iterating mutably over component A can
// schedule a command that also mutates A without conflict, because the
// command runs between stages rather than during the iteration.
type Command func(w *ecs.World)

// CommandQueue buffers commands enqueued during the stage currently
// running and drains them once that stage finishes. Commands enqueued
// while draining are deferred to the *next* drain (spec §4.9: "A command
// may enqueue further commands; these run in the next drain"), and within
// one drain commands run in enqueue order (spec §5 "Command drain:
// enqueue order").
type CommandQueue struct {
	pending []Command
	next    []Command
}

// NewCommandQueue creates an empty queue.
func NewCommandQueue() *CommandQueue {
	return &CommandQueue{}
}

// Enqueue defers cmd to run at the next Drain call.
func (q *CommandQueue) Enqueue(cmd Command) {
	q.next = append(q.next, cmd)
}

// Drain runs every command enqueued since the last Drain, in enqueue
// order. Commands enqueued by those commands land in q.next and run at
// the *following* Drain, not this one.
func (q *CommandQueue) Drain(w *ecs.World) {
	q.pending, q.next = q.next, q.pending[:0]
	for _, cmd := range q.pending {
		cmd(w)
	}
}
