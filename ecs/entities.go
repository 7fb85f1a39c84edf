// Package ecs implements the archetypal entity-component store described in
// spec §3–§4: generational entity ids, byte-level type-erased component
// storage with a presence bitset, a typed Store[T] façade, a resource
// registry, and the World that owns all three and is snapshot-cloneable.
//
// The package is grounded two ways at once: the bitset/generation/killed-
// list mechanics come from board-ecs (original_source/crates/board-ecs),
// while the typed generic façade over a store registry (Store[T],
// ComponentStore, ResourceStore, EntityBuilder, QueryBuilder) is adapted
// from the teacher's engine package, replacing its mutex-guarded maps with
// bitset-indexed byte storage since the simulation core is single-threaded
// within a tick (spec §5).
package ecs

import (
	"errors"

	"github.com/lixenwraith/driftwood/bitset"
	"github.com/lixenwraith/driftwood/core"
)

// ErrExceededCapacity is returned when entity creation would exceed the
// fixed bitset capacity (spec §4.1 "Fail with ExceededCapacity").
var ErrExceededCapacity = errors.New("ecs: exceeded entity capacity")

// Entities holds the alive-set bitset, per-index generation counters, the
// pending killed-list, and the allocation cursor described in spec §3.
type Entities struct {
	capacity    int
	alive       *bitset.Bitset
	generation  []uint32
	killed      []core.Entity
	nextFree    int
	hasDeleted  bool
}

// NewEntities creates an Entities table with the given fixed capacity.
func NewEntities(capacity int) *Entities {
	e := &Entities{
		capacity:   capacity,
		alive:      bitset.New(capacity),
		generation: make([]uint32, capacity),
	}
	// Generations start at 1 so no created entity ever equals core.Nil.
	for i := range e.generation {
		e.generation[i] = 1
	}
	return e
}

// Create reserves a new entity, returning ErrExceededCapacity if no index is
// available. Allocation policy (spec §4.1): bump-allocate at nextFree while
// nothing has been killed; otherwise scan the alive bitset word-by-word for
// the first clear bit.
func (e *Entities) Create() (core.Entity, error) {
	if !e.hasDeleted {
		if e.nextFree >= e.capacity {
			return core.Nil, ErrExceededCapacity
		}
		i := e.nextFree
		e.nextFree++
		e.alive.Set(i)
		return core.Entity{Index: uint32(i), Generation: e.generation[i]}, nil
	}

	i, ok := e.alive.FirstClear()
	if !ok {
		return core.Nil, ErrExceededCapacity
	}
	e.alive.Set(i)
	if i >= e.nextFree {
		e.nextFree = i + 1
	}
	// Re-scan whether any clear bit remains; if not, resume bump allocation.
	if _, stillHas := e.alive.FirstClear(); !stillHas {
		e.hasDeleted = false
	}
	return core.Entity{Index: uint32(i), Generation: e.generation[i]}, nil
}

// IsAlive reports whether e refers to a currently live entity at the
// expected generation (spec §8 property 3: stale Entity values are
// rejected after kill+create reuses the index).
func (e *Entities) IsAlive(ent core.Entity) bool {
	i := int(ent.Index)
	if i < 0 || i >= e.capacity {
		return false
	}
	return e.alive.Test(i) && e.generation[i] == ent.Generation
}

// Kill marks an entity dead, bumps its generation, and appends it to the
// killed-list for later maintenance. Idempotent: killing an already-dead
// entity is a no-op (spec §8 property 2).
func (e *Entities) Kill(ent core.Entity) {
	i := int(ent.Index)
	if i < 0 || i >= e.capacity || !e.alive.Test(i) || e.generation[i] != ent.Generation {
		return
	}
	e.alive.Reset(i)
	e.generation[i]++
	e.killed = append(e.killed, ent)
	e.hasDeleted = true
}

// Killed returns the pending killed-list, valid until the next ClearKilled.
func (e *Entities) Killed() []core.Entity {
	return e.killed
}

// ClearKilled empties the killed-list. Called once per tick by
// World.Maintain after dropping component slots.
func (e *Entities) ClearKilled() {
	e.killed = e.killed[:0]
}

// AliveCount returns the number of currently live entities.
func (e *Entities) AliveCount() int {
	return e.alive.Count()
}

// AliveBitset exposes the alive-set for join construction.
func (e *Entities) AliveBitset() *bitset.Bitset {
	return e.alive
}

// EntityAt reconstructs the full (index, generation) Entity value for a
// live index, for use by join iterators that only carry an index through a
// combined bitset (spec §4.1 "An entity iterator pairs the joined bitset
// with the Entities alive-set").
func (e *Entities) EntityAt(index int) core.Entity {
	return core.Entity{Index: uint32(index), Generation: e.generation[index]}
}

// Capacity returns the fixed entity capacity this table was built with.
func (e *Entities) Capacity() int {
	return e.capacity
}

// Range calls fn for every live entity in ascending index order.
func (e *Entities) Range(fn func(core.Entity) bool) {
	e.alive.Range(func(i int) bool {
		return fn(core.Entity{Index: uint32(i), Generation: e.generation[i]})
	})
}

// Clone returns a deep, independent copy for use as a rollback snapshot.
func (e *Entities) Clone() *Entities {
	out := &Entities{
		capacity:   e.capacity,
		alive:      e.alive.Clone(),
		generation: append([]uint32(nil), e.generation...),
		killed:     append([]core.Entity(nil), e.killed...),
		nextFree:   e.nextFree,
		hasDeleted: e.hasDeleted,
	}
	return out
}

// Clear resets the table to empty, as if freshly constructed.
func (e *Entities) Clear() {
	e.alive.Clear()
	for i := range e.generation {
		e.generation[i] = 1
	}
	e.killed = e.killed[:0]
	e.nextFree = 0
	e.hasDeleted = false
}
