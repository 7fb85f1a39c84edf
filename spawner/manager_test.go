package spawner

import (
	"testing"

	"github.com/lixenwraith/driftwood/core"
)

func ent(index, gen uint32) core.Entity {
	return core.Entity{Index: index, Generation: gen}
}

func TestInsertOwnedAndOwnerOf(t *testing.T) {
	m := NewManager()
	spawnerEnt := ent(1, 0)
	m.CreateSpawner(spawnerEnt)

	owned := ent(2, 0)
	m.InsertOwned(spawnerEnt, owned)

	owner, ok := m.OwnerOf(owned)
	if !ok || owner != spawnerEnt {
		t.Fatalf("expected owner %+v, got %+v, %v", spawnerEnt, owner, ok)
	}

	list := m.Owned(spawnerEnt)
	if len(list) != 1 || list[0] != owned {
		t.Fatalf("expected owned list [%+v], got %v", owned, list)
	}
}

func TestRemoveSpawnerCascadesOwnedButNotGrouped(t *testing.T) {
	m := NewManager()
	spawnerEnt := ent(1, 0)
	owned1 := ent(2, 0)
	owned2 := ent(3, 0)
	m.CreateSpawner(spawnerEnt)
	m.InsertOwned(spawnerEnt, owned1)
	m.InsertOwned(spawnerEnt, owned2)

	removed := m.RemoveSpawner(spawnerEnt)
	if len(removed) != 2 {
		t.Fatalf("expected 2 cascaded owned entities, got %d", len(removed))
	}
	if _, ok := m.OwnerOf(owned1); ok {
		t.Fatalf("owned1 must no longer have an owner after spawner removal")
	}
	if len(m.Owned(spawnerEnt)) != 0 {
		t.Fatalf("spawner's owned list must be empty after removal")
	}
}

func TestGroupedSpawnerRemovalDoesNotClearGroup(t *testing.T) {
	m := NewManager()
	group := ent(10, 0)
	m.CreateGroupedSpawner(group, nil)

	player := ent(20, 0)
	m.InsertOwned(group, player)

	// Removing the grouped spawner "entity" (e.g. the pool marker) must not
	// cascade-kill the group's members, unlike a plain spawner.
	removed := m.RemoveSpawner(group)
	if removed != nil {
		t.Fatalf("removing a grouped spawner must not report cascaded owned entities, got %v", removed)
	}
	if owner, ok := m.OwnerOf(player); !ok || owner != group {
		t.Fatalf("grouped membership must survive removing the group spawner itself, got %+v, %v", owner, ok)
	}
}

func TestRemoveOwnedDoesNotRemoveSpawner(t *testing.T) {
	m := NewManager()
	spawnerEnt := ent(1, 0)
	owned := ent(2, 0)
	m.CreateSpawner(spawnerEnt)
	m.InsertOwned(spawnerEnt, owned)

	m.RemoveOwned(owned)

	if _, ok := m.OwnerOf(owned); ok {
		t.Fatalf("owned entity must have no owner after RemoveOwned")
	}
	if list := m.Owned(spawnerEnt); len(list) != 0 {
		t.Fatalf("spawner's owned list must drop the removed entity, got %v", list)
	}
}

func TestRemoveOwnedOnUntrackedEntityIsNoop(t *testing.T) {
	m := NewManager()
	// Must not panic when asked to forget an entity that was never tracked.
	m.RemoveOwned(ent(99, 0))
}

func TestManagerCloneResourceIsIndependent(t *testing.T) {
	m := NewManager()
	spawnerEnt := ent(1, 0)
	owned := ent(2, 0)
	m.CreateSpawner(spawnerEnt)
	m.InsertOwned(spawnerEnt, owned)

	clonedAny := m.CloneResource()
	clone, ok := clonedAny.(*Manager)
	if !ok {
		t.Fatalf("CloneResource must return a *Manager, got %T", clonedAny)
	}

	// Mutating the clone must not affect the original.
	clone.RemoveOwned(owned)
	if _, ok := m.OwnerOf(owned); !ok {
		t.Fatalf("mutating the clone's ownership table must not affect the original")
	}

	newOwned := ent(3, 0)
	clone.InsertOwned(spawnerEnt, newOwned)
	if len(m.Owned(spawnerEnt)) != 1 {
		t.Fatalf("inserting into the clone must not grow the original's owned list")
	}
}

func TestEntityKeyDistinguishesGeneration(t *testing.T) {
	a := ent(5, 0)
	b := ent(5, 1)
	if entityKey(a) == entityKey(b) {
		t.Fatalf("entityKey must differ across generations of the same index")
	}
}
