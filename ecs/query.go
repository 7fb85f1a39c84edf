// Joins build a combined bitset at the call site and iterate only indices
// present in the result, exactly as spec §4.1 describes: "build a combined
// bitset at the call site (AND of presence bitsets, optionally NOT-ed or
// OR-ed) and iterate only indices present in the result".
package ecs

import (
	"github.com/lixenwraith/driftwood/bitset"
	"github.com/lixenwraith/driftwood/core"
)

// With ANDs every set into a mask sized to capacity, starting from all-ones
// when no sets are given.
func With(capacity int, sets ...*bitset.Bitset) *bitset.Bitset {
	mask := bitset.New(capacity)
	if len(sets) == 0 {
		mask.Not(mask)
		return mask
	}
	mask.CopyFrom(sets[0])
	if len(sets) == 1 {
		return mask
	}
	tmp := bitset.New(capacity)
	for _, s := range sets[1:] {
		tmp.And(mask, s)
		mask.CopyFrom(tmp)
	}
	return mask
}

// Without AND-NOTs every set in exclude out of mask, in place, and returns
// mask for chaining.
func Without(mask *bitset.Bitset, exclude ...*bitset.Bitset) *bitset.Bitset {
	if len(exclude) == 0 {
		return mask
	}
	tmp := bitset.New(mask.Len())
	for _, s := range exclude {
		tmp.AndNot(mask, s)
		mask.CopyFrom(tmp)
	}
	return mask
}

// Or ORs every set into mask, in place, and returns mask for chaining.
func Or(mask *bitset.Bitset, sets ...*bitset.Bitset) *bitset.Bitset {
	tmp := bitset.New(mask.Len())
	for _, s := range sets {
		tmp.Or(mask, s)
		mask.CopyFrom(tmp)
	}
	return mask
}

// EachEntity iterates every index set in mask that is also alive in ents,
// calling fn with the reconstructed (index, generation) Entity in ascending
// index order (spec §4.1/§5 "Entity iteration: ascending index").
func EachEntity(ents *Entities, mask *bitset.Bitset, fn func(core.Entity)) {
	combined := bitset.New(mask.Len())
	combined.And(mask, ents.AliveBitset())
	combined.Range(func(i int) bool {
		fn(ents.EntityAt(i))
		return true
	})
}

// EachIndex iterates every index set in mask in ascending order without
// reconstructing an Entity, for hot paths (e.g. physics) that only need the
// index to address parallel component arrays.
func EachIndex(mask *bitset.Bitset, fn func(index int)) {
	mask.Range(func(i int) bool {
		fn(i)
		return true
	})
}
