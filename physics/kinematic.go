package physics

import (
	"github.com/lixenwraith/driftwood/component"
	"github.com/lixenwraith/driftwood/core"
	"github.com/lixenwraith/driftwood/ecs"
	"github.com/lixenwraith/driftwood/param"
	"github.com/lixenwraith/driftwood/scheduler"
)

// BodyHandle links an entity's component.KinematicBody to its actor slot in
// a World, the join key every physics system uses to go from ECS entity to
// collision-world collider.
type BodyHandle struct {
	Actor Actor
}

// World resource registration: the collision World is process-owned state
// shared across the whole match, stored as a resource like any other
// (spec §3 "Concurrency & resource model" treats the physics world as
// ordinary shared mutable state behind the same single-threaded tick).
// CloneResource deep-copies every actor/solid/layer slice so rollback
// snapshots never alias collider state between World.Clone() calls.
func (w *World) CloneResource() any {
	clone := &World{
		tileLayers: append([]TileLayer(nil), w.tileLayers...),
		solids:     make([]collider, len(w.solids)),
		actors:     make([]collider, len(w.actors)),
	}
	for i, l := range w.tileLayers {
		clone.tileLayers[i].Tiles = append([]ColliderKind(nil), l.Tiles...)
	}
	for i, c := range w.solids {
		clone.solids[i] = cloneCollider(c)
	}
	for i, c := range w.actors {
		clone.actors[i] = cloneCollider(c)
	}
	return clone
}

func cloneCollider(c collider) collider {
	sb := make(map[int]struct{}, len(c.squishedBy))
	for k := range c.squishedBy {
		sb[k] = struct{}{}
	}
	c.squishedBy = sb
	return c
}

// IntegrateSystem runs the per-tick kinematic integration pipeline from
// spec §4.4: gravity, friction, rotation, movement, contact-flag update,
// spawn-protection release -- in that fixed order, for every entity
// carrying both a component.KinematicBody and a BodyHandle.
func IntegrateSystem() scheduler.System {
	return scheduler.NewFunc("physics.integrate", func(w *ecs.World, cmds *scheduler.CommandQueue) {
		world, ok := ecs.GetResource[*World](w.Resources)
		if !ok {
			return
		}

		bodies := ecs.Components[component.KinematicBody](w.Components)
		handles := ecs.Components[BodyHandle](w.Components)
		transforms := ecs.Components[core.Transform](w.Components)

		mask := ecs.With(w.Capacity(), bodies.Bitset(), handles.Bitset(), transforms.Bitset())
		ecs.EachIndex(mask, func(index int) {
			body, _ := bodies.Get(index)
			handle, _ := handles.Get(index)
			xform, _ := transforms.Get(index)

			if body.IsDeactivated {
				return
			}

			integrateOne(world, body, handle, xform)
		})
	})
}

// DeactivatePlayerSquishSystem reads World.IsSquished for every player's
// actor and marks its KinematicBody deactivated once squished, the physics-
// to-state-machine handoff spec §7 describes for the "squished into an
// unreachable position" edge case ("the body is marked is_squished; the
// player state machine is responsible for translating that into dead"). The
// player state machine's incapacitated state owns turning IsDeactivated
// into StateDead after its grace period; this system only owns the
// physics-side half of that handoff.
func DeactivatePlayerSquishSystem() scheduler.System {
	return scheduler.NewFunc("physics.deactivate_player_squish", func(w *ecs.World, cmds *scheduler.CommandQueue) {
		world, ok := ecs.GetResource[*World](w.Resources)
		if !ok {
			return
		}

		bodies := ecs.Components[component.KinematicBody](w.Components)
		handles := ecs.Components[BodyHandle](w.Components)
		playerIdx := ecs.Components[component.PlayerIdx](w.Components)

		mask := ecs.With(w.Capacity(), bodies.Bitset(), handles.Bitset(), playerIdx.Bitset())
		ecs.EachIndex(mask, func(index int) {
			body, _ := bodies.Get(index)
			handle, _ := handles.Get(index)
			if world.IsSquished(handle.Actor) {
				body.IsDeactivated = true
			}
		})
	})
}

func integrateOne(world *World, body *component.KinematicBody, handle *BodyHandle, xform *core.Transform) {
	// 1. Gravity, clamped to terminal velocity.
	body.Velocity.Y += param.DefaultGravity * body.GravityScale
	if body.Velocity.Y > param.DefaultTerminalVelocity {
		body.Velocity.Y = param.DefaultTerminalVelocity
	}

	// 2. Ground friction: horizontal velocity decays toward zero, snapping
	// to exactly zero once within the stop epsilon.
	if body.HasFriction && body.OnGround {
		body.Velocity.X *= param.DefaultGroundFriction
		if body.Velocity.X < param.DefaultFrictionStopEps && body.Velocity.X > -param.DefaultFrictionStopEps {
			body.Velocity.X = 0
		}
	}

	// 3. Rotation.
	if body.CanRotate && body.AngularVelocity != 0 {
		*xform = xform.RotateZ(body.AngularVelocity)
	}

	// 4. Move and refresh contact flags. The collision world owns the
	// authoritative actor position between ticks (sub-pixel residual lives
	// there); the transform is a mirror written back after the move, not an
	// input to it -- only actor creation and explicit teleports set
	// position directly via SetActorPosition.
	movedX := world.MoveActorX(handle.Actor, body.Velocity.X)
	movedY := world.MoveActorY(handle.Actor, body.Velocity.Y)

	newPos := world.ActorPosition(handle.Actor)
	xform.Translation = core.Vec3FromXY(newPos, xform.Translation.Z)

	body.OnWall = !movedX
	body.OnPlatform = world.IsDescending(handle.Actor)
	body.OnGround = !movedY && body.Velocity.Y >= 0

	if !body.OnGround {
		// Landing resets vertical velocity; falling through space leaves it
		// unchanged so gravity keeps accumulating.
	} else {
		body.Velocity.Y = 0
	}
	if body.OnWall {
		body.Velocity.X = 0
	}

	// 5. Spawn protection releases once the body clears every solid it may
	// have spawned overlapping.
	if body.IsSpawning {
		if world.CollideSolidsAt(newPos, body.Size) == Empty {
			body.IsSpawning = false
		}
	}
}
