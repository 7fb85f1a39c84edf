package item

import (
	"testing"

	"github.com/lixenwraith/driftwood/component"
	"github.com/lixenwraith/driftwood/core"
	"github.com/lixenwraith/driftwood/ecs"
	"github.com/lixenwraith/driftwood/scheduler"
)

func runOnce(w *ecs.World, sys scheduler.System) {
	cmds := scheduler.NewCommandQueue()
	sys.Run(w, cmds)
	cmds.Drain(w)
}

func TestLifetimeSystemKillsOnExpiry(t *testing.T) {
	w := ecs.NewWorld(4)
	e, _ := w.Entities.Create()
	lifetimes := ecs.Components[component.Lifetime](w.Components)
	lifetimes.Insert(int(e.Index), component.Lifetime{Timer: component.Timer{Remaining: 0.01, Duration: 0.01}})

	runOnce(w, LifetimeSystem(0.02))

	if w.Entities.IsAlive(e) {
		t.Fatalf("expected the expired-lifetime entity to be killed")
	}
}

func TestLifetimeSystemLeavesUnexpiredEntityAlive(t *testing.T) {
	w := ecs.NewWorld(4)
	e, _ := w.Entities.Create()
	lifetimes := ecs.Components[component.Lifetime](w.Components)
	lifetimes.Insert(int(e.Index), component.Lifetime{Timer: component.Timer{Remaining: 1, Duration: 1}})

	runOnce(w, LifetimeSystem(0.02))

	if !w.Entities.IsAlive(e) {
		t.Fatalf("expected the not-yet-expired entity to stay alive")
	}
}

func TestFuseSystemFiresOnExpiryOnce(t *testing.T) {
	w := ecs.NewWorld(4)
	e, _ := w.Entities.Create()
	fuses := ecs.Components[component.FuseTimer](w.Components)
	fuses.Insert(int(e.Index), component.FuseTimer{
		Timer:             component.Timer{Remaining: 0.01, Duration: 0.01},
		ExplosionLifetime: 2,
	})

	fired := 0
	onExpire := func(w *ecs.World, cmds *scheduler.CommandQueue, ent core.Entity, fuse component.FuseTimer) {
		fired++
		if ent != e {
			t.Fatalf("onExpire called with wrong entity: got %+v, want %+v", ent, e)
		}
		if fuse.ExplosionLifetime != 2 {
			t.Fatalf("expected the expired fuse snapshot to carry ExplosionLifetime=2, got %v", fuse.ExplosionLifetime)
		}
	}

	runOnce(w, FuseSystem(0.02, onExpire))
	runOnce(w, FuseSystem(0.02, onExpire))

	if fired != 1 {
		t.Fatalf("expected onExpire to fire exactly once across two ticks, fired %d times", fired)
	}
}

func TestFuseSystemWithNilCallbackDoesNotPanic(t *testing.T) {
	w := ecs.NewWorld(4)
	e, _ := w.Entities.Create()
	fuses := ecs.Components[component.FuseTimer](w.Components)
	fuses.Insert(int(e.Index), component.FuseTimer{Timer: component.Timer{Remaining: 0.01, Duration: 0.01}})

	runOnce(w, FuseSystem(0.02, nil))
}
