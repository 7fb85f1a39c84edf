// Package core holds the value types shared across the simulation: the
// Entity identity, vector/rect helpers, and the deterministic RNG. It plays
// the same "small leaf package everything imports" role the teacher's core
// package plays for Kinetic, Area and Color.
package core

import "fmt"

// Entity is a generational index: Index addresses all component storage,
// Generation is bumped on kill so stale references are detectable (spec
// §3 "Entity").
type Entity struct {
	Index      uint32
	Generation uint32
}

// Nil is the zero-value Entity; never returned by Entities.Create.
var Nil = Entity{}

func (e Entity) String() string {
	return fmt.Sprintf("Entity(%d#%d)", e.Index, e.Generation)
}

// IsNil reports whether e is the zero Entity.
func (e Entity) IsNil() bool {
	return e == Nil
}
