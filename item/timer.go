// Package item implements the generic, tick-based item mechanisms spec §9
// describes as the canonical pattern for coroutine-like per-item behavior:
// "a timer component plus a tick-based system". It owns only the countdown
// mechanism -- a Lifetime's kill-on-expiry and a FuseTimer's tick-and-fire --
// never specific game content, matching the spec's Non-goal excluding named
// weapons/items. What a fuse's expiry actually does (spawn an explosion,
// apply splash damage) is left to a host-supplied callback.
package item

import (
	"github.com/lixenwraith/driftwood/component"
	"github.com/lixenwraith/driftwood/core"
	"github.com/lixenwraith/driftwood/ecs"
	"github.com/lixenwraith/driftwood/scheduler"
)

// FuseExpiredFunc is invoked, via a deferred command, the tick a FuseTimer
// crosses zero. fuse is a snapshot of the timer at the instant it expired.
// The gameplay layer supplies this to turn expiry into whatever effect it
// wants; this package only owns the countdown (spec §9 "reads
// LitGrenade.fuse_time, ticks it, and either does nothing or emits the
// explosion command").
type FuseExpiredFunc func(w *ecs.World, cmds *scheduler.CommandQueue, e core.Entity, fuse component.FuseTimer)

// LifetimeSystem ticks every entity's Lifetime by dtPerTick and kills it the
// tick its timer expires -- the generic "kill this entity after N seconds"
// mechanism used for transient effect entities (explosion sprites, damage
// regions) spawned with a Lifetime component.
func LifetimeSystem(dtPerTick float64) scheduler.System {
	return scheduler.NewFunc("item.lifetime", func(w *ecs.World, cmds *scheduler.CommandQueue) {
		lifetimes := ecs.Components[component.Lifetime](w.Components)
		mask := ecs.With(w.Capacity(), lifetimes.Bitset())
		ecs.EachEntity(w.Entities, mask, func(e core.Entity) {
			lt, _ := lifetimes.Get(int(e.Index))
			if lt.Tick(dtPerTick) {
				cmds.Enqueue(func(w *ecs.World) {
					w.Entities.Kill(e)
				})
			}
		})
	})
}

// FuseSystem ticks every entity's FuseTimer by dtPerTick and, the tick it
// expires, enqueues onExpire as a deferred command so it runs with full
// world access rather than mid-iteration. onExpire may be nil, in which
// case expiry is a silent no-op beyond the timer reaching zero -- the spec's
// "either does nothing or emits the explosion command".
func FuseSystem(dtPerTick float64, onExpire FuseExpiredFunc) scheduler.System {
	return scheduler.NewFunc("item.fuse", func(w *ecs.World, cmds *scheduler.CommandQueue) {
		fuses := ecs.Components[component.FuseTimer](w.Components)
		mask := ecs.With(w.Capacity(), fuses.Bitset())
		ecs.EachEntity(w.Entities, mask, func(e core.Entity) {
			fuse, _ := fuses.Get(int(e.Index))
			if fuse.Tick(dtPerTick) && onExpire != nil {
				expired := *fuse
				cmds.Enqueue(func(w *ecs.World) {
					onExpire(w, cmds, e, expired)
				})
			}
		})
	})
}
