package ecs

import (
	"testing"

	"github.com/lixenwraith/driftwood/core"
)

type pos struct{ X, Y float64 }

type tag struct{}

func TestCreateKillGenerationBump(t *testing.T) {
	w := NewWorld(4)
	e, err := w.Entities.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !w.Entities.IsAlive(e) {
		t.Fatalf("freshly created entity must be alive")
	}
	w.Entities.Kill(e)
	if w.Entities.IsAlive(e) {
		t.Fatalf("killed entity must not be alive")
	}

	again, err := w.Entities.Create()
	if err != nil {
		t.Fatalf("Create after kill: %v", err)
	}
	if again.Index != e.Index {
		t.Fatalf("expected the freed index %d to be reused, got %d", e.Index, again.Index)
	}
	if again.Generation == e.Generation {
		t.Fatalf("reused index must carry a bumped generation")
	}
	if w.Entities.IsAlive(e) {
		t.Fatalf("the stale pre-kill Entity value must never read as alive again")
	}
}

func TestCreateExceedsCapacity(t *testing.T) {
	w := NewWorld(2)
	if _, err := w.Entities.Create(); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := w.Entities.Create(); err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if _, err := w.Entities.Create(); err != ErrExceededCapacity {
		t.Fatalf("expected ErrExceededCapacity, got %v", err)
	}
}

func TestKillIsIdempotent(t *testing.T) {
	w := NewWorld(4)
	e, _ := w.Entities.Create()
	w.Entities.Kill(e)
	w.Entities.Kill(e) // must not panic or double-append to the killed list
	if len(w.Entities.Killed()) != 1 {
		t.Fatalf("expected exactly one killed-list entry, got %d", len(w.Entities.Killed()))
	}
}

func TestMaintainDropsComponentsForKilled(t *testing.T) {
	w := NewWorld(4)
	e, _ := w.Entities.Create()
	positions := Components[pos](w.Components)
	positions.Insert(int(e.Index), pos{X: 1, Y: 2})

	w.Entities.Kill(e)
	w.Maintain()

	if positions.Has(int(e.Index)) {
		t.Fatalf("Maintain must drop the component slot of a killed entity")
	}
	if len(w.Entities.Killed()) != 0 {
		t.Fatalf("Maintain must clear the killed-list")
	}
}

func TestJoinAscendingOrder(t *testing.T) {
	w := NewWorld(16)
	positions := Components[pos](w.Components)
	tags := Components[tag](w.Components)

	var withTag []core.Entity
	for i := 0; i < 10; i++ {
		e, _ := w.Entities.Create()
		positions.Insert(int(e.Index), pos{X: float64(i)})
		if i%3 == 0 {
			tags.Insert(int(e.Index), tag{})
			withTag = append(withTag, e)
		}
	}

	mask := With(w.Capacity(), positions.Bitset(), tags.Bitset())
	var got []core.Entity
	EachEntity(w.Entities, mask, func(e core.Entity) {
		got = append(got, e)
	})

	if len(got) != len(withTag) {
		t.Fatalf("expected %d joined entities, got %d", len(withTag), len(got))
	}
	last := -1
	for i, e := range got {
		if int(e.Index) <= last {
			t.Fatalf("join iteration must be ascending by index")
		}
		last = int(e.Index)
		if e != withTag[i] {
			t.Fatalf("joined entity %d mismatch: got %+v want %+v", i, e, withTag[i])
		}
	}
}

func TestWithoutExcludesMask(t *testing.T) {
	w := NewWorld(8)
	positions := Components[pos](w.Components)
	tags := Components[tag](w.Components)

	e1, _ := w.Entities.Create()
	e2, _ := w.Entities.Create()
	positions.Insert(int(e1.Index), pos{})
	positions.Insert(int(e2.Index), pos{})
	tags.Insert(int(e1.Index), tag{})

	mask := With(w.Capacity(), positions.Bitset())
	mask = Without(mask, tags.Bitset())

	var got []core.Entity
	EachEntity(w.Entities, mask, func(e core.Entity) { got = append(got, e) })
	if len(got) != 1 || got[0] != e2 {
		t.Fatalf("expected only e2 (untagged) to survive Without, got %+v", got)
	}
}

func TestResourceCloneIsIndependent(t *testing.T) {
	w := NewWorld(4)
	SetResource(w.Resources, pos{X: 1, Y: 2})

	clone := w.Clone()
	p, ok := GetResource[pos](clone.Resources)
	if !ok || p != (pos{X: 1, Y: 2}) {
		t.Fatalf("clone must carry over the resource value, got %+v, %v", p, ok)
	}

	SetResource(clone.Resources, pos{X: 99, Y: 99})
	original, _ := GetResource[pos](w.Resources)
	if original.X == 99 {
		t.Fatalf("mutating the clone's resource must not affect the original")
	}
}

func TestComponentStoreCloneIsIndependent(t *testing.T) {
	w := NewWorld(4)
	e, _ := w.Entities.Create()
	Components[pos](w.Components).Insert(int(e.Index), pos{X: 1})

	clone := w.Clone()
	Components[pos](clone.Components).Insert(int(e.Index), pos{X: 42})

	original, _ := Components[pos](w.Components).Get(int(e.Index))
	if original.X != 1 {
		t.Fatalf("mutating a clone's component store must not affect the original, got %+v", original)
	}
}

func TestDistinctPointerResourceTypesDoNotCollide(t *testing.T) {
	// Pointer types are unnamed in reflect (Name()/PkgPath() both report
	// "" for *posResource and *tagResource alike); typeKey must still
	// distinguish them, or the second SetResource silently clobbers the
	// first under the same map key.
	w := NewWorld(4)
	a := &posResource{X: 1, Y: 2}
	b := &tagResource{Label: "spawner"}

	SetResource(w.Resources, a)
	SetResource(w.Resources, b)

	gotA, ok := GetResource[*posResource](w.Resources)
	if !ok || gotA != a || gotA.X != 1 {
		t.Fatalf("expected *posResource untouched by storing *tagResource, got %+v, %v", gotA, ok)
	}
	gotB, ok := GetResource[*tagResource](w.Resources)
	if !ok || gotB != b || gotB.Label != "spawner" {
		t.Fatalf("expected *tagResource untouched by storing *posResource, got %+v, %v", gotB, ok)
	}
}

type posResource struct{ X, Y float64 }
type tagResource struct{ Label string }

func TestWorldCloneEntitiesAreIndependent(t *testing.T) {
	w := NewWorld(4)
	e, _ := w.Entities.Create()

	clone := w.Clone()
	clone.Entities.Kill(e)

	if !w.Entities.IsAlive(e) {
		t.Fatalf("killing an entity in a clone must not affect the original world")
	}
	if clone.Entities.IsAlive(e) {
		t.Fatalf("clone's entity should be dead after Kill")
	}
}
