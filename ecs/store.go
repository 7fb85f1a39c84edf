package ecs

import (
	"unsafe"

	"github.com/lixenwraith/driftwood/bitset"
)

// Store is the typed, T-safe façade over an UntypedComponentStore, the only
// place that constructs one (spec §9: "the wrapper memoizes T's layout and
// clone/drop thunks and is the sole caller of raw insert/get/remove").
//
// Named and shaped after the teacher's generic Store[T] (engine/store.go),
// but backed by bitset-indexed byte storage instead of a mutex-guarded map,
// since the simulation core runs single-threaded within a tick.
type Store[T any] struct {
	inner *UntypedComponentStore
}

func cloneValue[T any](dst, src unsafe.Pointer) {
	*(*T)(dst) = *(*T)(src)
}

func dropValue[T any](ptr unsafe.Pointer) {
	var zero T
	*(*T)(ptr) = zero
}

// NewStore creates a component store for type T with a fixed capacity.
func NewStore[T any](capacity int) *Store[T] {
	var zero T
	return &Store[T]{
		inner: newUntypedComponentStore(unsafe.Sizeof(zero), capacity, cloneValue[T], dropValue[T]),
	}
}

// Insert writes value at index, returning the previous value (if any) and
// whether the index already held a component of this type.
func (s *Store[T]) Insert(index int, value T) (previous T, hadPrevious bool) {
	ptr, had := s.inner.Insert(index)
	if had {
		previous = *(*T)(ptr)
	}
	*(*T)(ptr) = value
	return previous, had
}

// Get returns a pointer to the component at index, or nil if absent. The
// returned pointer aliases the store's backing buffer and is only valid
// until the next Insert grows or mutates that slot's neighbors -- callers
// should not retain it across ticks.
func (s *Store[T]) Get(index int) (*T, bool) {
	ptr, ok := s.inner.Get(index)
	if !ok {
		return nil, false
	}
	return (*T)(ptr), true
}

// Remove clears the component at index and returns its prior value.
func (s *Store[T]) Remove(index int) (T, bool) {
	ptr, ok := s.inner.Get(index)
	if !ok {
		var zero T
		return zero, false
	}
	val := *(*T)(ptr)
	s.inner.Remove(index)
	return val, true
}

// Has reports whether index holds a component of this type.
func (s *Store[T]) Has(index int) bool {
	return s.inner.Has(index)
}

// Bitset exposes the presence set for join construction (ecs.With).
func (s *Store[T]) Bitset() *bitset.Bitset {
	return s.inner.Presence()
}

// Range calls fn for every present index in ascending order, matching the
// iteration-order determinism requirement in spec §4.1/§5.
func (s *Store[T]) Range(fn func(index int, value *T) bool) {
	s.inner.presence.Range(func(i int) bool {
		return fn(i, (*T)(s.inner.ptrAt(i)))
	})
}

// Clone returns a deep copy of the store for snapshotting.
func (s *Store[T]) Clone() *Store[T] {
	return &Store[T]{inner: s.inner.Clone()}
}

func (s *Store[T]) dropAll() {
	s.inner.DropAll()
}

// untypedDropper lets ComponentStores drop components for a killed entity
// without knowing T, by storing stores behind this narrow interface.
type untypedDropper interface {
	removeIndex(index int) bool
	cloneSelf() untypedDropper
	clearAll()
}

func (s *Store[T]) removeIndex(index int) bool {
	return s.inner.Remove(index)
}

func (s *Store[T]) cloneSelf() untypedDropper {
	return s.Clone()
}

func (s *Store[T]) clearAll() {
	s.dropAll()
}
