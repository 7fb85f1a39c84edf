package playerstate

import (
	"github.com/lixenwraith/driftwood/component"
	"github.com/lixenwraith/driftwood/core"
	"github.com/lixenwraith/driftwood/ecs"
	"github.com/lixenwraith/driftwood/input"
	"github.com/lixenwraith/driftwood/physics"
	"github.com/lixenwraith/driftwood/scheduler"
)

// InstallDefault registers the six baseline states from spec §4.7: idle,
// walk, midair, crouch, incapacitated, dead. Each transition reads only
// shared components (body flags, input, timers); each handler is the only
// place state-specific world mutation happens.
func InstallDefault(m *Machine, walkSpeed, crouchSpeedScale float64) {
	m.Register(component.StateIdle, idleTransition(walkSpeed), idleHandler())
	m.Register(component.StateWalk, walkTransition(walkSpeed), walkHandler(walkSpeed))
	m.Register(component.StateMidair, midairTransition(), midairHandler(walkSpeed))
	m.Register(component.StateCrouch, crouchTransition(), crouchHandler(crouchSpeedScale))
	m.Register(component.StateIncapacitated, incapacitatedTransition(), incapacitatedHandler())
	m.Register(component.StateDead, deadTransition(), deadHandler())
}

func control(w *ecs.World, e core.Entity) (input.Control, bool) {
	players, ok := ecs.GetResource[input.Players](w.Resources)
	if !ok {
		return input.Control{}, false
	}
	idx := ecs.Components[component.PlayerIdx](w.Components)
	pidx, ok := idx.Get(int(e.Index))
	if !ok || int(pidx.Index) >= len(players.Slots) {
		return input.Control{}, false
	}
	return players.Slots[pidx.Index].Control, true
}

func body(w *ecs.World, e core.Entity) (*component.KinematicBody, bool) {
	bodies := ecs.Components[component.KinematicBody](w.Components)
	return bodies.Get(int(e.Index))
}

// --- idle ---

func idleTransition(walkSpeed float64) Transition {
	return func(w *ecs.World, e core.Entity, state component.PlayerState) component.PlayerStateID {
		b, ok := body(w, e)
		if !ok {
			return ""
		}
		if !b.OnGround {
			return component.StateMidair
		}
		ctrl, _ := control(w, e)
		if ctrl.Slide {
			return component.StateCrouch
		}
		if ctrl.Moving && ctrl.MoveDirection.X != 0 {
			return component.StateWalk
		}
		if b.IsDeactivated {
			return component.StateIncapacitated
		}
		return ""
	}
}

func idleHandler() Handler {
	return func(w *ecs.World, e core.Entity, cmds *scheduler.CommandQueue) {
		if b, ok := body(w, e); ok {
			b.Velocity.X = 0
		}
	}
}

// --- walk ---

func walkTransition(walkSpeed float64) Transition {
	return func(w *ecs.World, e core.Entity, state component.PlayerState) component.PlayerStateID {
		b, ok := body(w, e)
		if !ok {
			return ""
		}
		if !b.OnGround {
			return component.StateMidair
		}
		ctrl, _ := control(w, e)
		if ctrl.Slide {
			return component.StateCrouch
		}
		if !ctrl.Moving || ctrl.MoveDirection.X == 0 {
			return component.StateIdle
		}
		return ""
	}
}

func walkHandler(walkSpeed float64) Handler {
	return func(w *ecs.World, e core.Entity, cmds *scheduler.CommandQueue) {
		b, ok := body(w, e)
		if !ok {
			return
		}
		ctrl, _ := control(w, e)
		if ctrl.MoveDirection.X > 0 {
			b.Velocity.X = walkSpeed
		} else if ctrl.MoveDirection.X < 0 {
			b.Velocity.X = -walkSpeed
		}
	}
}

// --- midair ---

func midairTransition() Transition {
	return func(w *ecs.World, e core.Entity, state component.PlayerState) component.PlayerStateID {
		b, ok := body(w, e)
		if !ok {
			return ""
		}
		if b.OnGround {
			ctrl, _ := control(w, e)
			if ctrl.Moving && ctrl.MoveDirection.X != 0 {
				return component.StateWalk
			}
			return component.StateIdle
		}
		return ""
	}
}

func midairHandler(airControlSpeed float64) Handler {
	return func(w *ecs.World, e core.Entity, cmds *scheduler.CommandQueue) {
		b, ok := body(w, e)
		if !ok {
			return
		}
		ctrl, _ := control(w, e)
		if ctrl.Moving {
			b.Velocity.X = ctrl.MoveDirection.X * airControlSpeed
		}
		if ctrl.JumpJustPressed && b.OnPlatform {
			b.OnPlatform = false
		}
	}
}

// --- crouch ---

func crouchTransition() Transition {
	return func(w *ecs.World, e core.Entity, state component.PlayerState) component.PlayerStateID {
		b, ok := body(w, e)
		if !ok {
			return ""
		}
		if !b.OnGround {
			return component.StateMidair
		}
		ctrl, _ := control(w, e)
		if !ctrl.Slide {
			return component.StateIdle
		}
		return ""
	}
}

func crouchHandler(speedScale float64) Handler {
	return func(w *ecs.World, e core.Entity, cmds *scheduler.CommandQueue) {
		b, ok := body(w, e)
		if !ok {
			return
		}
		ctrl, _ := control(w, e)
		if ctrl.JumpPressed {
			// Crouch + jump requests a platform drop-through rather than a
			// jump, the supplemented Descend() entry point (spec §8
			// property 7, SPEC_FULL's "explicit Descend() command").
			cmds.Enqueue(func(w *ecs.World) {
				handles := ecs.Components[physics.BodyHandle](w.Components)
				if h, ok := handles.Get(int(e.Index)); ok {
					if cw, ok := ecs.GetResource[*physics.World](w.Resources); ok {
						cw.Descend(h.Actor)
					}
				}
			})
			return
		}
		if ctrl.Moving {
			b.Velocity.X = ctrl.MoveDirection.X * speedScale
		} else {
			b.Velocity.X = 0
		}
	}
}

// --- incapacitated ---

func incapacitatedTransition() Transition {
	return func(w *ecs.World, e core.Entity, state component.PlayerState) component.PlayerStateID {
		b, ok := body(w, e)
		if !ok {
			return ""
		}
		if b.IsDeactivated {
			if state.TimeInState > incapacitationDuration {
				return component.StateDead
			}
			return ""
		}
		return component.StateIdle
	}
}

const incapacitationDuration = 3.0

func incapacitatedHandler() Handler {
	return func(w *ecs.World, e core.Entity, cmds *scheduler.CommandQueue) {
		if b, ok := body(w, e); ok {
			b.Velocity.X = 0
		}
	}
}

// --- dead ---

func deadTransition() Transition {
	return func(w *ecs.World, e core.Entity, state component.PlayerState) component.PlayerStateID {
		return ""
	}
}

func deadHandler() Handler {
	return func(w *ecs.World, e core.Entity, cmds *scheduler.CommandQueue) {
		// Respawn is driven by the spawner: killing the entity here removes
		// its PlayerIdx, and the spawner's update system re-creates a fresh
		// entity for the now-unoccupied slot next tick (spec §4.7 "Dead
		// players trigger respawn via the player spawner").
		cmds.Enqueue(func(w *ecs.World) {
			w.Entities.Kill(e)
		})
	}
}
