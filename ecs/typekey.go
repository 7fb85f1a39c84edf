package ecs

import (
	"reflect"

	"github.com/segmentio/fasthash/fnv1a"
)

// typeKey hashes T's reflect.Type into a stable small int once, so the hot
// per-tick component/resource lookups in ComponentStores and Resources
// compare uint64s instead of repeatedly hashing/comparing reflect.Type
// values the way a plain map[reflect.Type]any would. Grounded on the
// teacher's use of fasthash/fnv1a-style registries over reflect.TypeOf
// lookups for anything touched every frame.
//
// Built from reflect.TypeOf((*T)(nil)).Elem() rather than a zero T value so
// it never has to special-case a nil interface zero value, and keyed on
// Type.String() rather than PkgPath()+Name() -- pointer, slice and map
// types are unnamed (Name() and PkgPath() both report "" for *spawner.
// Manager, *core.Rand, and every other pointer-typed resource this package
// stores), so PkgPath()+Name() would hash every pointer type to the same
// key. String() always renders a distinct, deterministic representation
// ("*spawner.Manager", "*core.Rand", ...) even for unnamed types.
func typeKey[T any]() uint64 {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return fnv1a.HashString64(t.String())
}
